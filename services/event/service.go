package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"locali/database/repository"
	eventRepo "locali/database/repository/event"
	userRepo "locali/database/repository/user"
	"locali/models"
	"locali/services/dialogue"
	"locali/services/notification"
	"locali/services/recommend"
	"locali/services/storage"

	"go.uber.org/zap"
)

// DefaultFeaturedLimit is the number of featured events shown on the dashboard.
const DefaultFeaturedLimit = 4

// DefaultEventService implements EventService.
type DefaultEventService struct {
	Repo         eventRepo.EventRepository
	Users        userRepo.UserRepository
	Blobs        storage.BlobStore
	Notification notification.NotificationService
	Reminders    ReminderScheduler
	Logger       *zap.Logger
	Now          func() time.Time
}

func (s *DefaultEventService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultEventService) Create(ctx context.Context, hostID string, in models.EventInput) (*models.Event, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	host, err := s.host(ctx, hostID)
	if err != nil {
		return nil, err
	}

	ev := &models.Event{
		Title:                strings.TrimSpace(in.Title),
		Description:          strings.TrimSpace(in.Description),
		Date:                 strings.TrimSpace(in.Date),
		StartTime:            strings.TrimSpace(in.StartTime),
		EndTime:              strings.TrimSpace(in.EndTime),
		Location:             strings.TrimSpace(in.Location),
		Category:             strings.TrimSpace(in.Category),
		Tags:                 cleanTags(in.Tags),
		Capacity:             in.Capacity,
		IsPublic:             boolOr(in.IsPublic, true),
		RequiresRegistration: in.RequiresRegistration,
		AIOptimization:       boolOr(in.AIOptimization, true),
		HostID:               host.ID,
		HostName:             host.Name,
		HostPhotoURL:         host.PhotoURL,
		Source:               models.EventSourceForm,
	}
	ev.Time = ev.StartTime + " - " + ev.EndTime

	if _, err := s.Repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	s.Logger.Info("event created", zap.String("eventID", ev.ID), zap.String("hostID", hostID))
	return ev, nil
}

// CreateFromBooking turns a finalized dialogue booking into an event hosted by hostID.
func (s *DefaultEventService) CreateFromBooking(ctx context.Context, hostID string, rec models.BookingRecord) (string, error) {
	host, err := s.host(ctx, hostID)
	if err != nil {
		return "", err
	}
	start, end := SplitTimeSlot(rec.TimeSlot)
	ev := &models.Event{
		Title:          rec.EventName,
		Description:    rec.Agenda,
		Date:           rec.Date,
		Time:           rec.TimeSlot,
		StartTime:      start,
		EndTime:        end,
		Location:       rec.SelectedRoom + ", " + dialogue.BookedVenue,
		Room:           rec.SelectedRoom,
		Tags:           dialogue.TopicTags(rec.EventName),
		Capacity:       rec.Capacity,
		IsPublic:       true,
		AIOptimization: true,
		HostID:         host.ID,
		HostName:       host.Name,
		HostPhotoURL:   host.PhotoURL,
		Source:         models.EventSourceDialogue,
	}
	if ev.Tags == nil {
		ev.Tags = []string{}
	}
	id, err := s.Repo.Create(ctx, ev)
	if err != nil {
		return "", err
	}
	s.Logger.Info("event created from booking", zap.String("eventID", id), zap.String("hostID", hostID))
	return id, nil
}

func (s *DefaultEventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns events ordered by date after applying the filter. Scores are filled when
// interests are given, and the match threshold applies only then.
func (s *DefaultEventService) List(ctx context.Context, f models.EventFilter) ([]models.ScoredEvent, error) {
	events, err := s.Repo.List(ctx, eventRepo.Query{Featured: f.Featured})
	if err != nil {
		return nil, err
	}
	sortByDate(events)

	var windowEnd time.Time
	today := truncateDay(s.now())
	if f.UpcomingDays > 0 {
		windowEnd = today.AddDate(0, 0, f.UpcomingDays)
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := []models.ScoredEvent{}
	for _, ev := range events {
		if len(f.Tags) > 0 && !anyTag(ev.Tags, f.Tags) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ev.Title), search) &&
			!strings.Contains(strings.ToLower(ev.Description), search) {
			continue
		}
		if !windowEnd.IsZero() {
			day, ok := ParseDate(ev.Date)
			if !ok || day.Before(today) || day.After(windowEnd) {
				continue
			}
		}
		score := recommend.CalculateEventMatch(f.Interests, ev.Tags)
		if len(f.Interests) > 0 && f.MatchThreshold > 0 && score < f.MatchThreshold {
			continue
		}
		out = append(out, models.ScoredEvent{Event: ev, MatchScore: score})
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *DefaultEventService) Featured(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	events, err := s.Repo.List(ctx, eventRepo.Query{Featured: true})
	if err != nil {
		return nil, err
	}
	sortByDate(events)
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (s *DefaultEventService) Update(ctx context.Context, hostID, id string, in models.EventInput) (*models.Event, error) {
	if _, err := s.owned(ctx, hostID, id); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	start, end := strings.TrimSpace(in.StartTime), strings.TrimSpace(in.EndTime)
	fields := map[string]interface{}{
		"title":                strings.TrimSpace(in.Title),
		"description":          strings.TrimSpace(in.Description),
		"date":                 strings.TrimSpace(in.Date),
		"startTime":            start,
		"endTime":              end,
		"time":                 start + " - " + end,
		"location":             strings.TrimSpace(in.Location),
		"category":             strings.TrimSpace(in.Category),
		"tags":                 cleanTags(in.Tags),
		"capacity":             in.Capacity,
		"requiresRegistration": in.RequiresRegistration,
	}
	if in.IsPublic != nil {
		fields["isPublic"] = *in.IsPublic
	}
	if in.AIOptimization != nil {
		fields["aiOptimization"] = *in.AIOptimization
	}
	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultEventService) Delete(ctx context.Context, hostID, id string) error {
	ev, err := s.owned(ctx, hostID, id)
	if err != nil {
		return err
	}
	if ev.ImageURL != "" && s.Blobs != nil {
		if err := s.Blobs.Delete(ctx, storage.EventImagePath(id)); err != nil {
			s.Logger.Warn("failed to delete event image", zap.String("eventID", id), zap.Error(err))
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("event deleted", zap.String("eventID", id), zap.String("hostID", hostID))
	return nil
}

func (s *DefaultEventService) MarkSuggestionApplied(ctx context.Context, eventID, suggestionID string) error {
	return s.Repo.AddAppliedSuggestion(ctx, eventID, suggestionID)
}

// owned loads the event and checks hostID is its host.
func (s *DefaultEventService) owned(ctx context.Context, hostID, id string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.HostID != hostID {
		return nil, ErrNotHost
	}
	return ev, nil
}

func (s *DefaultEventService) host(ctx context.Context, hostID string) (*models.User, error) {
	host, err := s.Users.GetByID(ctx, hostID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return host, nil
}

func validateInput(in models.EventInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case strings.TrimSpace(in.Date) == "":
		return fmt.Errorf("%w: date is required", ErrInvalid)
	case strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "":
		return fmt.Errorf("%w: start and end time are required", ErrInvalid)
	case in.Capacity < 0:
		return fmt.Errorf("%w: capacity cannot be negative", ErrInvalid)
	}
	if _, ok := ParseDate(in.Date); !ok {
		return fmt.Errorf("%w: date must be YYYY-MM-DD or M/D/YYYY", ErrInvalid)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func sortByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return sortKey(events[i].Date).Before(sortKey(events[j].Date))
	})
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
