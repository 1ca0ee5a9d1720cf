package rsvp

import (
	"context"
	"errors"

	"github.com/circle-umd/circleup-v2/internal/event"

	"gorm.io/gorm"
)

// RSVPService is the state machine over (user, event) pairs: no record,
// accepted (INTERESTED/GOING) or hidden. Transitions only upsert; a pair
// never returns to "no record".
type RSVPService interface {
	Accept(ctx context.Context, userID, eventID string) error
	Dismiss(ctx context.Context, userID, eventID string) error
	CheckStatus(ctx context.Context, userID, eventID string) (bool, error)
	ListAccepted(ctx context.Context, userID string) ([]event.EventResponse, error)
}

type rsvpService struct {
	repo RSVPRepository
}

func NewRSVPService(repo RSVPRepository) RSVPService {
	return &rsvpService{repo: repo}
}

// Accept marks the event as interested. Idempotent: repeated accepts
// overwrite the existing row.
func (s *rsvpService) Accept(ctx context.Context, userID, eventID string) error {
	return s.upsert(ctx, userID, eventID, StatusInterested)
}

// Dismiss hides the event from the user's feed.
func (s *rsvpService) Dismiss(ctx context.Context, userID, eventID string) error {
	return s.upsert(ctx, userID, eventID, StatusHidden)
}

func (s *rsvpService) upsert(ctx context.Context, userID, eventID string, status Status) error {
	return s.repo.Upsert(ctx, &EventRSVP{
		UserID:     userID,
		EventID:    eventID,
		Status:     status,
		Visibility: VisibilityFor(status),
	})
}

// CheckStatus reports whether the user already accepted the event,
// without mutating anything.
func (s *rsvpService) CheckStatus(ctx context.Context, userID, eventID string) (bool, error) {
	rec, err := s.repo.Find(ctx, userID, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return Accepted(rec.Status), nil
}

// ListAccepted returns the user's upcoming accepted events for the
// profile screen. Attendee summaries are intentionally omitted there.
func (s *rsvpService) ListAccepted(ctx context.Context, userID string) ([]event.EventResponse, error) {
	events, err := s.repo.FindAcceptedEvents(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, event.EventResponse{
			ID:            e.ID,
			Title:         e.Title,
			Description:   e.Description,
			Location:      e.Location,
			Time:          event.FormatEventTime(e.StartTime),
			Attendees:     []event.Attendee{},
			OrganizerName: e.OrganizerName,
			ExternalURL:   e.ExternalURL,
		})
	}
	return responses, nil
}
