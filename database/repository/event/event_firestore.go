package eventRepo

import (
	"context"
	"fmt"
	"time"

	"locali/database/repository"
	"locali/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreEventRepo keeps events in the events collection and attendees in events/{id}/attendees.
type FirestoreEventRepo struct {
	client *firestore.Client
}

func NewFirestoreEventRepo(client *firestore.Client) EventRepository {
	return &FirestoreEventRepo{client: client}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (r *FirestoreEventRepo) events() *firestore.CollectionRef {
	return r.client.Collection(repository.EventsCollection)
}

func (r *FirestoreEventRepo) attendees(eventID string) *firestore.CollectionRef {
	return r.events().Doc(eventID).Collection(repository.AttendeesCollection)
}

func (r *FirestoreEventRepo) Create(ctx context.Context, ev *models.Event) (string, error) {
	ref := r.events().NewDoc()
	now := time.Now()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if _, err := ref.Create(ctx, ev); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	ev.ID = ref.ID
	return ref.ID, nil
}

func (r *FirestoreEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	snap, err := r.events().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return decodeEvent(snap)
}

func (r *FirestoreEventRepo) List(ctx context.Context, q Query) ([]models.Event, error) {
	query := r.events().Query
	if q.Featured {
		query = query.Where("featured", "==", true)
	}
	if q.HostID != "" {
		query = query.Where("hostId", "==", q.HostID)
	}
	query = query.OrderBy("date", firestore.Asc)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	out := make([]models.Event, 0, len(snaps))
	for _, snap := range snaps {
		ev, err := decodeEvent(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, nil
}

func (r *FirestoreEventRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	if _, err := r.events().Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

// Delete removes the event and its attendee subcollection.
func (r *FirestoreEventRepo) Delete(ctx context.Context, id string) error {
	ref := r.events().Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	bw := r.client.BulkWriter(ctx)
	iter := r.attendees(id).DocumentRefs(ctx)
	for {
		attRef, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to list attendees of %s: %w", id, err)
		}
		if _, err := bw.Delete(attRef); err != nil {
			bw.End()
			return fmt.Errorf("failed to queue attendee delete: %w", err)
		}
	}
	if _, err := bw.Delete(ref); err != nil {
		bw.End()
		return fmt.Errorf("failed to queue event delete: %w", err)
	}
	bw.End()
	return nil
}

func (r *FirestoreEventRepo) AddAppliedSuggestion(ctx context.Context, id, suggestionID string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"appliedSuggestions": firestore.ArrayUnion(suggestionID),
	})
}

func (r *FirestoreEventRepo) AddAttendee(ctx context.Context, eventID string, a models.Attendee) error {
	evRef := r.events().Doc(eventID)
	attRef := r.attendees(eventID).Doc(a.UserID)
	userRef := r.client.Collection(repository.UsersCollection).Doc(a.UserID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		evSnap, err := tx.Get(evRef)
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Get(attRef); err == nil {
			return repository.ErrAlreadyAttending
		} else if !isNotFound(err) {
			return err
		}

		ev, err := decodeEvent(evSnap)
		if err != nil {
			return err
		}
		if ev.Capacity > 0 && ev.AttendeeCount >= ev.Capacity {
			return repository.ErrEventFull
		}

		if err := tx.Create(attRef, a); err != nil {
			return err
		}
		if err := tx.Update(evRef, []firestore.Update{{Path: "attendeeCount", Value: firestore.Increment(1)}}); err != nil {
			return err
		}
		return tx.Set(userRef, map[string]interface{}{
			"rsvpedEvents": firestore.ArrayUnion(eventID),
		}, firestore.MergeAll)
	})
}

func (r *FirestoreEventRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	evRef := r.events().Doc(eventID)
	attRef := r.attendees(eventID).Doc(userID)
	userRef := r.client.Collection(repository.UsersCollection).Doc(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(evRef); err != nil {
			if isNotFound(err) {
				return repository.ErrNotFound
			}
			return err
		}
		if _, err := tx.Get(attRef); err != nil {
			if isNotFound(err) {
				return repository.ErrNotAttending
			}
			return err
		}

		if err := tx.Delete(attRef); err != nil {
			return err
		}
		if err := tx.Update(evRef, []firestore.Update{{Path: "attendeeCount", Value: firestore.Increment(-1)}}); err != nil {
			return err
		}
		return tx.Set(userRef, map[string]interface{}{
			"rsvpedEvents": firestore.ArrayRemove(eventID),
		}, firestore.MergeAll)
	})
}

func (r *FirestoreEventRepo) GetAttendee(ctx context.Context, eventID, userID string) (*models.Attendee, error) {
	snap, err := r.attendees(eventID).Doc(userID).Get(ctx)
	if isNotFound(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendee: %w", err)
	}
	var a models.Attendee
	if err := snap.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to decode attendee: %w", err)
	}
	a.EventID = eventID
	return &a, nil
}

func (r *FirestoreEventRepo) ListAttendees(ctx context.Context, eventID string) ([]models.Attendee, error) {
	snaps, err := r.attendees(eventID).OrderBy("timestamp", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees of %s: %w", eventID, err)
	}
	out := make([]models.Attendee, 0, len(snaps))
	for _, snap := range snaps {
		var a models.Attendee
		if err := snap.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode attendee: %w", err)
		}
		a.EventID = eventID
		out = append(out, a)
	}
	return out, nil
}

func decodeEvent(snap *firestore.DocumentSnapshot) (*models.Event, error) {
	var ev models.Event
	if err := snap.DataTo(&ev); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", snap.Ref.ID, err)
	}
	ev.ID = snap.Ref.ID
	return &ev, nil
}
