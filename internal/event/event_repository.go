package event

import (
	"context"

	"gorm.io/gorm"
)

type EventRepository interface {
	// FindUpcomingForUser returns the chronologically-next events the user
	// has not RSVP'd to yet ("for you" source).
	FindUpcomingForUser(ctx context.Context, userID string, limit, offset int) ([]Event, error)
	// FindPopularWithFriends returns upcoming events ranked by how many of
	// the user's accepted friends have a public accepted RSVP.
	FindPopularWithFriends(ctx context.Context, userID string, limit, offset int) ([]Event, error)
	// FindPopularIDs is the ID-only projection of FindPopularWithFriends,
	// used to deduplicate incremental pages.
	FindPopularIDs(ctx context.Context, userID string, limit int) ([]string, error)
	// FindAttendees loads public accepted-RSVP profiles per event.
	FindAttendees(ctx context.Context, eventIDs []string) (map[string][]Attendee, error)
	// FindProfileSummaries loads attendee-shaped summaries for profile IDs.
	FindProfileSummaries(ctx context.Context, ids []string) (map[string]Attendee, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindUpcomingForUser(ctx context.Context, userID string, limit, offset int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).Raw(`
		SELECT e.*
		FROM events e
		WHERE e.start_time >= NOW()
		  AND NOT EXISTS (
			SELECT 1 FROM event_rsvps r
			WHERE r.event_id = e.id AND r.user_id = ?
		  )
		ORDER BY e.start_time ASC
		LIMIT ? OFFSET ?`,
		userID, limit, offset).Scan(&events).Error
	return events, err
}

func (r *eventRepository) FindPopularWithFriends(ctx context.Context, userID string, limit, offset int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).Raw(`
		SELECT e.*
		FROM events e
		JOIN event_rsvps r
		  ON r.event_id = e.id
		 AND r.status IN ('INTERESTED', 'GOING')
		 AND r.visibility = 'PUBLIC'
		JOIN friendships f
		  ON f.friend_id = r.user_id
		 AND f.user_id = ?
		 AND f.status = 'ACCEPTED'
		WHERE e.start_time >= NOW()
		  AND NOT EXISTS (
			SELECT 1 FROM event_rsvps mine
			WHERE mine.event_id = e.id AND mine.user_id = ?
		  )
		GROUP BY e.id
		ORDER BY COUNT(DISTINCT r.user_id) DESC, e.start_time ASC
		LIMIT ? OFFSET ?`,
		userID, userID, limit, offset).Scan(&events).Error
	return events, err
}

func (r *eventRepository) FindPopularIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT e.id
		FROM events e
		JOIN event_rsvps r
		  ON r.event_id = e.id
		 AND r.status IN ('INTERESTED', 'GOING')
		 AND r.visibility = 'PUBLIC'
		JOIN friendships f
		  ON f.friend_id = r.user_id
		 AND f.user_id = ?
		 AND f.status = 'ACCEPTED'
		WHERE e.start_time >= NOW()
		  AND NOT EXISTS (
			SELECT 1 FROM event_rsvps mine
			WHERE mine.event_id = e.id AND mine.user_id = ?
		  )
		GROUP BY e.id
		ORDER BY COUNT(DISTINCT r.user_id) DESC, e.start_time ASC
		LIMIT ?`,
		userID, userID, limit).Scan(&ids).Error
	return ids, err
}

type attendeeRow struct {
	EventID   string
	ID        string
	Username  *string
	FirstName *string
	LastName  *string
	AvatarURL *string
}

func (r *eventRepository) FindAttendees(ctx context.Context, eventIDs []string) (map[string][]Attendee, error) {
	result := make(map[string][]Attendee)
	if len(eventIDs) == 0 {
		return result, nil
	}

	var rows []attendeeRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.event_id, p.id, p.username, p.first_name, p.last_name, p.avatar_url
		FROM event_rsvps r
		JOIN profiles p ON p.id = r.user_id
		WHERE r.event_id IN ?
		  AND r.status IN ('INTERESTED', 'GOING')
		  AND r.visibility = 'PUBLIC'
		ORDER BY r.created_at ASC`,
		eventIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.EventID] = append(result[row.EventID], toAttendee(row))
	}
	return result, nil
}

func (r *eventRepository) FindProfileSummaries(ctx context.Context, ids []string) (map[string]Attendee, error) {
	result := make(map[string]Attendee)
	if len(ids) == 0 {
		return result, nil
	}

	var rows []attendeeRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.username, p.first_name, p.last_name, p.avatar_url
		FROM profiles p
		WHERE p.id IN ?`,
		ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ID] = toAttendee(row)
	}
	return result, nil
}

func toAttendee(row attendeeRow) Attendee {
	name := ""
	switch {
	case row.FirstName != nil && row.LastName != nil:
		name = *row.FirstName + " " + *row.LastName
	case row.FirstName != nil:
		name = *row.FirstName
	case row.LastName != nil:
		name = *row.LastName
	case row.Username != nil:
		name = *row.Username
	}
	return Attendee{ID: row.ID, Name: name, AvatarURL: row.AvatarURL}
}
