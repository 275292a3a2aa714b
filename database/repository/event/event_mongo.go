package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"locali/database/repository"
	"locali/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoEventRepo implements EventRepository using MongoDB.
// Attendees live in their own collection keyed by (eventId, userId).
type MongoEventRepo struct {
	events    *mongo.Collection
	attendees *mongo.Collection
	users     *mongo.Collection
}

// NewMongoEventRepo creates a new instance of EventRepository using MongoDB.
func NewMongoEventRepo(db *mongo.Database, logger *zap.Logger) EventRepository {
	repo := &MongoEventRepo{
		events:    db.Collection(repository.EventsCollection),
		attendees: db.Collection(repository.AttendeesCollection),
		users:     db.Collection(repository.UsersCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create event indexes", zap.Error(err))
	}
	return repo
}

// withTimeout bounds a single store round trip.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoEventRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "hostId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	_, err = r.attendees.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create attendee indexes: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) Create(ctx context.Context, ev *models.Event) (string, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	ev.ID = uuid.NewString()
	now := time.Now()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if _, err := r.events.InsertOne(ctx, ev); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return ev.ID, nil
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var ev models.Event
	if err := r.events.FindOne(ctx, bson.M{"id": id}).Decode(&ev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event with id %s: %w", id, err)
	}
	return &ev, nil
}

func (r *MongoEventRepo) List(ctx context.Context, q Query) ([]models.Event, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Featured {
		filter["featured"] = true
	}
	if q.HostID != "" {
		filter["hostId"] = q.HostID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (r *MongoEventRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := r.events.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update event with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoEventRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.events.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	if _, err := r.attendees.DeleteMany(ctx, bson.M{"eventId": id}); err != nil {
		return fmt.Errorf("failed to delete attendees of %s: %w", id, err)
	}
	if _, err := r.users.UpdateMany(ctx, bson.M{"rsvpedEvents": id}, bson.M{"$pull": bson.M{"rsvpedEvents": id}}); err != nil {
		return fmt.Errorf("failed to unlink event %s from users: %w", id, err)
	}
	return nil
}

func (r *MongoEventRepo) AddAppliedSuggestion(ctx context.Context, id, suggestionID string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.events.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$addToSet": bson.M{"appliedSuggestions": suggestionID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to apply suggestion on %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddAttendee reserves a seat with a conditional increment before inserting the attendee,
// so capacity holds without a multi-document transaction.
func (r *MongoEventRepo) AddAttendee(ctx context.Context, eventID string, a models.Attendee) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.GetByID(ctx, eventID); err != nil {
		return err
	}

	seatFilter := bson.M{
		"id": eventID,
		"$or": bson.A{
			bson.M{"capacity": bson.M{"$exists": false}},
			bson.M{"capacity": bson.M{"$lte": 0}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$attendeeCount", "$capacity"}}},
		},
	}
	result, err := r.events.UpdateOne(ctx, seatFilter, bson.M{"$inc": bson.M{"attendeeCount": 1}})
	if err != nil {
		return fmt.Errorf("failed to reserve seat on %s: %w", eventID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrEventFull
	}

	a.EventID = eventID
	if _, err := r.attendees.InsertOne(ctx, a); err != nil {
		r.releaseSeat(ctx, eventID)
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyAttending
		}
		return fmt.Errorf("failed to add attendee: %w", err)
	}

	if _, err := r.users.UpdateOne(ctx, bson.M{"id": a.UserID}, bson.M{"$addToSet": bson.M{"rsvpedEvents": eventID}}); err != nil {
		return fmt.Errorf("failed to link event on user %s: %w", a.UserID, err)
	}
	return nil
}

func (r *MongoEventRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.GetByID(ctx, eventID); err != nil {
		return err
	}
	result, err := r.attendees.DeleteOne(ctx, bson.M{"eventId": eventID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to remove attendee: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotAttending
	}
	r.releaseSeat(ctx, eventID)

	if _, err := r.users.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$pull": bson.M{"rsvpedEvents": eventID}}); err != nil {
		return fmt.Errorf("failed to unlink event on user %s: %w", userID, err)
	}
	return nil
}

func (r *MongoEventRepo) releaseSeat(ctx context.Context, eventID string) {
	_, _ = r.events.UpdateOne(ctx,
		bson.M{"id": eventID, "attendeeCount": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"attendeeCount": -1}})
}

func (r *MongoEventRepo) GetAttendee(ctx context.Context, eventID, userID string) (*models.Attendee, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Attendee
	if err := r.attendees.FindOne(ctx, bson.M{"eventId": eventID, "userId": userID}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch attendee: %w", err)
	}
	return &a, nil
}

func (r *MongoEventRepo) ListAttendees(ctx context.Context, eventID string) ([]models.Attendee, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.attendees.Find(ctx, bson.M{"eventId": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees of %s: %w", eventID, err)
	}
	defer cursor.Close(ctx)

	out := []models.Attendee{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode attendees: %w", err)
	}
	return out, nil
}
