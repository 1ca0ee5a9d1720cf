package friendship

import (
	"time"
)

/** --------------------ENTITIES-------------------- */

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
)

// Friendship is one directional row of the dual-row representation. An
// accepted friendship is two rows, both ACCEPTED; a pending request is a
// single row from requester to target. Every mutation touches both rows
// inside one transaction so the symmetry invariant holds.
type Friendship struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	FriendID  string    `gorm:"primaryKey;type:uuid" json:"friend_id"`
	Status    Status    `gorm:"not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Invite is a single-use sign-up code.
type Invite struct {
	Code      string     `gorm:"primaryKey" json:"code"`
	CreatedBy string     `gorm:"type:uuid;not null" json:"created_by"`
	UsedBy    *string    `gorm:"type:uuid" json:"used_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UsedAt    *time.Time `json:"used_at"`
}

func (Invite) TableName() string {
	return "invites"
}

// AnnotatedStatus is the friendship state relative to the current user.
type AnnotatedStatus string

const (
	AnnotationNone            AnnotatedStatus = "NONE"
	AnnotationPendingSent     AnnotatedStatus = "PENDING_SENT"
	AnnotationPendingReceived AnnotatedStatus = "PENDING_RECEIVED"
	AnnotationAccepted        AnnotatedStatus = "ACCEPTED"
)

/** -------------------- DTOs -------------------- */

// Request
type SendFriendRequest struct {
	TargetID string `json:"targetId" binding:"required,uuid"`
}

// Response
type FriendResponse struct {
	ID          string  `json:"id"`
	Username    *string `json:"username"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	AvatarURL   *string `json:"avatarUrl"`
	DisplayName string  `json:"displayName"`
	Status      Status  `json:"status"`
}

type SearchResult struct {
	ID               string          `json:"id"`
	Username         *string         `json:"username"`
	FirstName        *string         `json:"firstName"`
	LastName         *string         `json:"lastName"`
	AvatarURL        *string         `json:"avatarUrl"`
	DisplayName      string          `json:"displayName"`
	FriendshipStatus AnnotatedStatus `json:"friendshipStatus"`
}

type InviteResponse struct {
	InviteCode string `json:"inviteCode"`
	InviteURL  string `json:"inviteUrl"`
}

// displayName mirrors the profile fallback: full name, then username,
// then a literal label.
func displayName(username, first, last *string) string {
	f, l := strVal(first), strVal(last)
	switch {
	case f != "" && l != "":
		return f + " " + l
	case f != "":
		return f
	case l != "":
		return l
	case strVal(username) != "":
		return *username
	default:
		return "Not set"
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
