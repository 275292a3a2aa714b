package event

import (
	"context"
	"errors"

	"locali/database/repository"
	"locali/models"

	"go.uber.org/zap"
)

// RSVP registers userID for the event, notifies the host and queues a reminder.
func (s *DefaultEventService) RSVP(ctx context.Context, userID, eventID string) (*models.Event, error) {
	member, err := s.host(ctx, userID)
	if err != nil {
		return nil, err
	}
	attendee := models.Attendee{
		UserID:    member.ID,
		Name:      member.Name,
		Email:     member.Email,
		PhotoURL:  member.PhotoURL,
		Timestamp: s.now(),
	}
	if err := s.Repo.AddAttendee(ctx, eventID, attendee); err != nil {
		return nil, err
	}
	ev, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("rsvp recorded", zap.String("eventID", eventID), zap.String("userID", userID))

	if s.Notification != nil && ev.HostID != userID {
		body := member.Name + " is attending " + ev.Title
		data := map[string]string{"eventId": ev.ID, "type": "rsvp"}
		if err := s.Notification.SendUserPushNotification(ctx, ev.HostID, "New RSVP", body, data); err != nil {
			s.Logger.Warn("failed to notify host", zap.String("eventID", eventID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *ev, userID); err != nil {
			s.Logger.Warn("failed to schedule reminder", zap.String("eventID", eventID), zap.String("userID", userID), zap.Error(err))
		}
	}
	return ev, nil
}

// CancelRSVP withdraws userID from the event and drops any pending reminder.
func (s *DefaultEventService) CancelRSVP(ctx context.Context, userID, eventID string) (*models.Event, error) {
	if err := s.Repo.RemoveAttendee(ctx, eventID, userID); err != nil {
		return nil, err
	}
	if s.Reminders != nil {
		if err := s.Reminders.CancelReminder(ctx, eventID, userID); err != nil {
			s.Logger.Warn("failed to cancel reminder", zap.String("eventID", eventID), zap.String("userID", userID), zap.Error(err))
		}
	}
	s.Logger.Info("rsvp cancelled", zap.String("eventID", eventID), zap.String("userID", userID))
	return s.Repo.GetByID(ctx, eventID)
}

func (s *DefaultEventService) IsAttending(ctx context.Context, userID, eventID string) (bool, error) {
	_, err := s.Repo.GetAttendee(ctx, eventID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Attendees lists the event's attendees joined with their member profiles.
func (s *DefaultEventService) Attendees(ctx context.Context, eventID string) ([]models.AttendeeProfile, error) {
	if _, err := s.Repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.UserID)
	}
	profiles, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.AttendeeProfile, 0, len(list))
	for _, a := range list {
		p := models.AttendeeProfile{Attendee: a}
		if u, ok := profiles[a.UserID]; ok {
			p.FieldOfStudy = u.FieldOfStudy
			p.Interests = u.Interests
			p.AttendedEvents = len(u.AttendedEvents)
		}
		out = append(out, p)
	}
	return out, nil
}
