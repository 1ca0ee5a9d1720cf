package profile

import (
	"time"
)

/** --------------------ENTITIES-------------------- */

// Profile is the public-facing identity of a user. A user may exist
// without one: the row is created lazily on first edit.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  *string   `gorm:"uniqueIndex;size:30" json:"username"`
	FirstName *string   `gorm:"size:100" json:"first_name"`
	LastName  *string   `gorm:"size:100" json:"last_name"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `gorm:"size:500" json:"bio"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName resolves what to show for a profile: full name, then
// username, then a literal fallback.
func (p *Profile) DisplayName() string {
	first, last := deref(p.FirstName), deref(p.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	case deref(p.Username) != "":
		return *p.Username
	default:
		return "Not set"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

/** -------------------- DTOs -------------------- */

// Request
type UpdateProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// Response
type ProfileResponse struct {
	ID          string    `json:"id"`
	Username    *string   `json:"username"`
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	AvatarURL   *string   `json:"avatarUrl"`
	Bio         *string   `json:"bio"`
	DisplayName string    `json:"displayName"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:          p.ID,
		Username:    p.Username,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		DisplayName: p.DisplayName(),
		UpdatedAt:   p.UpdatedAt,
	}
}
