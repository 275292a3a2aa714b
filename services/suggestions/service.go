package suggestions

import (
	"context"
	"errors"

	"locali/models"
	"locali/services/event"

	"go.uber.org/zap"
)

var ErrUnknownSuggestion = errors.New("suggestion not found for this event")

// SuggestionService produces and tracks host optimization suggestions.
type SuggestionService interface {
	Generate(ctx context.Context, hostID, eventID string) ([]models.Suggestion, error)
	Apply(ctx context.Context, hostID, eventID, suggestionID string) (*models.Suggestion, error)
	Feedback(ctx context.Context, hostID, eventID, suggestionID string, helpful bool) error
}

type DefaultSuggestionService struct {
	Events event.EventService
	Logger *zap.Logger
}

func (s *DefaultSuggestionService) Generate(ctx context.Context, hostID, eventID string) ([]models.Suggestion, error) {
	ev, err := s.hosted(ctx, hostID, eventID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.Events.Attendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return Suggest(*ev, attendees), nil
}

func (s *DefaultSuggestionService) Apply(ctx context.Context, hostID, eventID, suggestionID string) (*models.Suggestion, error) {
	list, err := s.Generate(ctx, hostID, eventID)
	if err != nil {
		return nil, err
	}
	for _, sg := range list {
		if sg.ID != suggestionID {
			continue
		}
		if err := s.Events.MarkSuggestionApplied(ctx, eventID, suggestionID); err != nil {
			return nil, err
		}
		sg.Applied = true
		s.Logger.Info("suggestion applied", zap.String("eventID", eventID), zap.String("type", sg.Type))
		return &sg, nil
	}
	return nil, ErrUnknownSuggestion
}

// Feedback records whether the host found a suggestion useful.
func (s *DefaultSuggestionService) Feedback(ctx context.Context, hostID, eventID, suggestionID string, helpful bool) error {
	if _, err := s.hosted(ctx, hostID, eventID); err != nil {
		return err
	}
	s.Logger.Info("suggestion feedback",
		zap.String("eventID", eventID),
		zap.String("suggestionID", suggestionID),
		zap.Bool("helpful", helpful),
	)
	return nil
}

func (s *DefaultSuggestionService) hosted(ctx context.Context, hostID, eventID string) (*models.Event, error) {
	ev, err := s.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.HostID != hostID {
		return nil, event.ErrNotHost
	}
	return ev, nil
}
