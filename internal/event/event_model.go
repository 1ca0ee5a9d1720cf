package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */

// Event rows are authored outside this service and read-only here.
type Event struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `json:"location"`
	StartTime     time.Time `gorm:"not null" json:"start_time"`
	OrganizerID   *string   `gorm:"type:uuid" json:"organizer_id"`
	OrganizerName *string   `json:"organizer_name"`
	ExternalURL   *string   `json:"external_url"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// Attendee is the profile summary shown on an event card.
type Attendee struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

/** -------------------- DTOs -------------------- */

type EventResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	Time          string     `json:"time"`
	Attendees     []Attendee `json:"attendees"`
	Organizer     *Attendee  `json:"organizer,omitempty"`
	OrganizerName *string    `json:"organizerName,omitempty"`
	ExternalURL   *string    `json:"externalUrl,omitempty"`
}

// FeedResponse is the initial composed feed: popular-with-friends events
// first, then the personalized list, already deduplicated.
type FeedResponse struct {
	Popular    []EventResponse `json:"popular"`
	ForYou     []EventResponse `json:"forYou"`
	HasMore    bool            `json:"hasMore"`
	NextOffset int             `json:"nextOffset"`
}

// FeedPageResponse is one incremental "show more" page.
type FeedPageResponse struct {
	Events     []EventResponse `json:"events"`
	HasMore    bool            `json:"hasMore"`
	NextOffset int             `json:"nextOffset"`
}

// FormatEventTime renders an absolute, human-readable start time, e.g.
// "Monday, Dec 15, 2024 at 8:00 PM".
func FormatEventTime(t time.Time) string {
	return t.Format("Monday, Jan 2, 2006 at 3:04 PM")
}

func toResponse(e *Event, attendees []Attendee, organizer *Attendee) EventResponse {
	if attendees == nil {
		attendees = []Attendee{}
	}
	return EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		Time:          FormatEventTime(e.StartTime),
		Attendees:     attendees,
		Organizer:     organizer,
		OrganizerName: e.OrganizerName,
		ExternalURL:   e.ExternalURL,
	}
}
