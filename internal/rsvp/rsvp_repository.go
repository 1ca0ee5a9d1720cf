package rsvp

import (
	"context"

	"github.com/circle-umd/circleup-v2/internal/event"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RSVPRepository interface {
	// Upsert writes the RSVP, overwriting status and visibility when the
	// (user, event) pair already exists.
	Upsert(ctx context.Context, r *EventRSVP) error
	Find(ctx context.Context, userID, eventID string) (*EventRSVP, error)
	// FindAcceptedEvents lists upcoming events the user marked GOING or
	// INTERESTED, ascending by start time.
	FindAcceptedEvents(ctx context.Context, userID string) ([]event.Event, error)
}

type rsvpRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &rsvpRepository{db: db}
}

func (r *rsvpRepository) Upsert(ctx context.Context, rec *EventRSVP) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "visibility", "updated_at"}),
	}).Create(rec).Error
}

func (r *rsvpRepository) Find(ctx context.Context, userID, eventID string) (*EventRSVP, error) {
	var rec EventRSVP
	err := r.db.WithContext(ctx).
		First(&rec, "user_id = ? AND event_id = ?", userID, eventID).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *rsvpRepository) FindAcceptedEvents(ctx context.Context, userID string) ([]event.Event, error) {
	var events []event.Event
	err := r.db.WithContext(ctx).Raw(`
		SELECT e.*
		FROM events e
		JOIN event_rsvps r ON r.event_id = e.id
		WHERE r.user_id = ?
		  AND r.status IN ('GOING', 'INTERESTED')
		  AND e.start_time >= NOW()
		ORDER BY e.start_time ASC`,
		userID).Scan(&events).Error
	return events, err
}
