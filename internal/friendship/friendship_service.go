package friendship

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Custom errors
var (
	ErrCannotFriendSelf = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("friend relationship already exists")
	ErrRequestExists    = errors.New("friend request already exists")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotFriends       = errors.New("friend relationship not found")
	ErrInviteInvalid    = errors.New("invite code is invalid or already used")
)

const searchLimit = 20

type FriendshipService interface {
	ListFriends(ctx context.Context, userID string) ([]FriendResponse, error)
	ListPendingReceived(ctx context.Context, userID string) ([]FriendResponse, error)
	CountFriends(ctx context.Context, userID string) (int64, error)
	Search(ctx context.Context, query, currentUserID string) ([]SearchResult, error)
	SendRequest(ctx context.Context, userID, targetID string) error
	AcceptRequest(ctx context.Context, userID, requesterID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	CreateInvite(ctx context.Context, userID string) (*InviteResponse, error)
	RedeemInvite(ctx context.Context, code, newUserID string) error
}

type friendshipService struct {
	repo    FriendshipRepository
	baseURL string
}

func NewFriendshipService(repo FriendshipRepository, baseURL string) FriendshipService {
	return &friendshipService{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *friendshipService) ListFriends(ctx context.Context, userID string) ([]FriendResponse, error) {
	rows, err := s.repo.FindFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFriendResponses(rows), nil
}

func (s *friendshipService) ListPendingReceived(ctx context.Context, userID string) ([]FriendResponse, error) {
	rows, err := s.repo.FindPendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFriendResponses(rows), nil
}

// CountFriends counts accepted rows keyed by user_id; under the dual-row
// invariant that equals the number of friendships.
func (s *friendshipService) CountFriends(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountFriends(ctx, userID)
}

// Search matches profiles by substring and annotates each hit with the
// friendship state relative to the current user.
func (s *friendshipService) Search(ctx context.Context, query, currentUserID string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	profiles, err := s.repo.SearchProfiles(ctx, query, currentUserID, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []SearchResult{}, nil
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	rows, err := s.repo.FindBetween(ctx, currentUserID, ids)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, SearchResult{
			ID:               p.ID,
			Username:         p.Username,
			FirstName:        p.FirstName,
			LastName:         p.LastName,
			AvatarURL:        p.AvatarURL,
			DisplayName:      displayName(p.Username, p.FirstName, p.LastName),
			FriendshipStatus: annotate(rows, currentUserID, p.ID),
		})
	}
	return results, nil
}

func (s *friendshipService) SendRequest(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return ErrCannotFriendSelf
	}

	existing, err := s.repo.FindBetween(ctx, userID, []string{targetID})
	if err != nil {
		return err
	}
	for _, f := range existing {
		if f.Status == StatusAccepted {
			return ErrAlreadyFriends
		}
		if f.Status == StatusPending {
			return ErrRequestExists
		}
	}

	return s.repo.CreateRequest(ctx, userID, targetID)
}

func (s *friendshipService) AcceptRequest(ctx context.Context, userID, requesterID string) error {
	return s.repo.AcceptRequest(ctx, requesterID, userID)
}

func (s *friendshipService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.repo.Remove(ctx, userID, friendID)
}

// CreateInvite issues a single-use sign-up code and the URL embedding it.
func (s *friendshipService) CreateInvite(ctx context.Context, userID string) (*InviteResponse, error) {
	code := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	inv := &Invite{Code: code, CreatedBy: userID}
	if err := s.repo.CreateInvite(ctx, inv); err != nil {
		return nil, err
	}
	return &InviteResponse{
		InviteCode: code,
		InviteURL:  fmt.Sprintf("%s/auth/sign-up?invite=%s", s.baseURL, code),
	}, nil
}

// RedeemInvite consumes the code and files a friend request from the new
// user to the inviter.
func (s *friendshipService) RedeemInvite(ctx context.Context, code, newUserID string) error {
	inv, err := s.repo.FindInvite(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInviteInvalid
	}
	if err != nil {
		return err
	}
	if inv.UsedBy != nil {
		return ErrInviteInvalid
	}

	if err := s.repo.MarkInviteUsed(ctx, code, newUserID); err != nil {
		return err
	}
	return s.SendRequest(ctx, newUserID, inv.CreatedBy)
}

func toFriendResponses(rows []profileRow) []FriendResponse {
	friends := make([]FriendResponse, 0, len(rows))
	for _, row := range rows {
		friends = append(friends, FriendResponse{
			ID:          row.ID,
			Username:    row.Username,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			AvatarURL:   row.AvatarURL,
			DisplayName: displayName(row.Username, row.FirstName, row.LastName),
			Status:      row.Status,
		})
	}
	return friends
}

// annotate derives the relative status from the directional rows linking
// the two users.
func annotate(rows []Friendship, currentUserID, otherID string) AnnotatedStatus {
	for _, f := range rows {
		sent := f.UserID == currentUserID && f.FriendID == otherID
		received := f.UserID == otherID && f.FriendID == currentUserID
		if !sent && !received {
			continue
		}
		if f.Status == StatusAccepted {
			return AnnotationAccepted
		}
		if f.Status == StatusPending {
			if sent {
				return AnnotationPendingSent
			}
			return AnnotationPendingReceived
		}
	}
	return AnnotationNone
}
