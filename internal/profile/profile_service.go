package profile

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Custom errors
var (
	ErrUsernameTaken = errors.New("this username is already taken")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidationErrors carries per-field validation messages. Checks run
// before any remote write.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// AvatarStore uploads an avatar image and returns its public URL.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*ProfileResponse, error)
	Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*ProfileResponse, error)
}

type profileService struct {
	repo  ProfileRepository
	store AvatarStore
}

func NewProfileService(repo ProfileRepository, store AvatarStore) ProfileService {
	return &profileService{repo: repo, store: store}
}

// Get returns the user's profile. A missing row is a valid state and
// comes back as an empty scaffold carrying only the ID.
func (s *profileService) Get(ctx context.Context, userID string) (*ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return toResponse(&Profile{ID: userID}), nil
	}
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if errs := ValidateProfile(req); len(errs) > 0 {
		return nil, errs
	}

	username := strings.TrimSpace(req.Username)
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrUsernameTaken
		}
	}

	p := &Profile{
		ID:        userID,
		Username:  optional(username),
		FirstName: optional(strings.TrimSpace(req.FirstName)),
		LastName:  optional(strings.TrimSpace(req.LastName)),
		Bio:       optional(strings.TrimSpace(req.Bio)),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	// Re-read the stored row: the upsert touches only the edited columns,
	// so avatar URL and updated-at live there, not in p.
	return s.Get(ctx, userID)
}

func (s *profileService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*ProfileResponse, error) {
	url, err := s.store.UploadAvatar(ctx, userID, file)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// ValidateProfile checks every field and reports all failures at once.
// An empty username means "unset" and is accepted.
func ValidateProfile(req *UpdateProfileRequest) ValidationErrors {
	errs := ValidationErrors{}

	if err := ValidateUsername(strings.TrimSpace(req.Username)); err != "" {
		errs["username"] = err
	}
	// Limits are in characters, not bytes: accented and CJK names must
	// not burn through the budget early.
	if utf8.RuneCountInString(strings.TrimSpace(req.FirstName)) > 100 {
		errs["firstName"] = "First name must be at most 100 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.LastName)) > 100 {
		errs["lastName"] = "Last name must be at most 100 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Bio)) > 500 {
		errs["bio"] = "Bio must be at most 500 characters"
	}
	return errs
}

// ValidateUsername returns an empty string when the username is valid.
func ValidateUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) < 3 {
		return "Username must be at least 3 characters"
	}
	if len(username) > 30 {
		return "Username must be at most 30 characters"
	}
	if !usernamePattern.MatchString(username) {
		return "Username can only contain letters, numbers, and underscores"
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
