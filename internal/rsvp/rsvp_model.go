package rsvp

import (
	"time"
)

/** --------------------ENTITIES-------------------- */

type Status string

const (
	StatusInterested Status = "INTERESTED"
	StatusGoing      Status = "GOING"
	StatusMaybe      Status = "MAYBE"
	StatusInvited    Status = "INVITED"
	StatusHidden     Status = "HIDDEN"
)

type Visibility string

const (
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilityFriendsOnly Visibility = "FRIENDS_ONLY"
	VisibilityPrivate     Visibility = "PRIVATE"
)

// EventRSVP records a user's disposition toward an event. At most one row
// exists per (user, event); writes overwrite, nothing deletes.
type EventRSVP struct {
	UserID     string     `gorm:"primaryKey;type:uuid" json:"user_id"`
	EventID    string     `gorm:"primaryKey;type:uuid" json:"event_id"`
	Status     Status     `gorm:"not null" json:"status"`
	Visibility Visibility `gorm:"not null" json:"visibility"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EventRSVP) TableName() string {
	return "event_rsvps"
}

// VisibilityFor derives visibility from status. Hidden RSVPs are private;
// every other disposition is visible to others.
func VisibilityFor(status Status) Visibility {
	if status == StatusHidden {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// Accepted reports whether a status counts as an accepted RSVP.
func Accepted(status Status) bool {
	return status == StatusInterested || status == StatusGoing
}
