package friendship

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFriendshipRepo struct {
	friends   []profileRow
	pending   []profileRow
	searchHit []profileRow
	between   []Friendship
	invites   map[string]*Invite

	createdRequests [][2]string
	acceptedPairs   [][2]string
	removedPairs    [][2]string

	searchQuery string
	searchLimit int
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{invites: make(map[string]*Invite)}
}

func (f *fakeFriendshipRepo) FindFriends(ctx context.Context, userID string) ([]profileRow, error) {
	return f.friends, nil
}

func (f *fakeFriendshipRepo) FindPendingReceived(ctx context.Context, userID string) ([]profileRow, error) {
	return f.pending, nil
}

func (f *fakeFriendshipRepo) CountFriends(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.friends)), nil
}

func (f *fakeFriendshipRepo) SearchProfiles(ctx context.Context, query, excludeID string, limit int) ([]profileRow, error) {
	f.searchQuery = query
	f.searchLimit = limit
	out := make([]profileRow, 0, len(f.searchHit))
	for _, p := range f.searchHit {
		if p.ID == excludeID {
			continue
		}
		out = append(out, p)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFriendshipRepo) FindBetween(ctx context.Context, userID string, otherIDs []string) ([]Friendship, error) {
	wanted := make(map[string]struct{}, len(otherIDs))
	for _, id := range otherIDs {
		wanted[id] = struct{}{}
	}
	var out []Friendship
	for _, fr := range f.between {
		_, a := wanted[fr.UserID]
		_, b := wanted[fr.FriendID]
		if (fr.UserID == userID && b) || (fr.FriendID == userID && a) {
			out = append(out, fr)
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) CreateRequest(ctx context.Context, requesterID, targetID string) error {
	f.createdRequests = append(f.createdRequests, [2]string{requesterID, targetID})
	return nil
}

func (f *fakeFriendshipRepo) AcceptRequest(ctx context.Context, requesterID, targetID string) error {
	f.acceptedPairs = append(f.acceptedPairs, [2]string{requesterID, targetID})
	return nil
}

func (f *fakeFriendshipRepo) Remove(ctx context.Context, userID, friendID string) error {
	f.removedPairs = append(f.removedPairs, [2]string{userID, friendID})
	return nil
}

func (f *fakeFriendshipRepo) CreateInvite(ctx context.Context, inv *Invite) error {
	f.invites[inv.Code] = inv
	return nil
}

func (f *fakeFriendshipRepo) FindInvite(ctx context.Context, code string) (*Invite, error) {
	inv, ok := f.invites[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (f *fakeFriendshipRepo) MarkInviteUsed(ctx context.Context, code, usedBy string) error {
	inv, ok := f.invites[code]
	if !ok || inv.UsedBy != nil {
		return ErrInviteInvalid
	}
	now := time.Now()
	inv.UsedBy = &usedBy
	inv.UsedAt = &now
	return nil
}

func strp(s string) *string { return &s }

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyQueryReturnsEmptyList", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendshipRepo(), "http://localhost:3000")

		for _, q := range []string{"", "   ", "\t"} {
			results, err := svc.Search(ctx, q, "me")
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		}
	})

	t.Run("AnnotatesRelativeStatus", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		repo.searchHit = []profileRow{
			{ID: "friend", Username: strp("alice_w"), FirstName: strp("Alice")},
			{ID: "sent", Username: strp("albert")},
			{ID: "received", Username: strp("alfred")},
			{ID: "stranger", Username: strp("alma")},
		}
		repo.between = []Friendship{
			{UserID: "me", FriendID: "friend", Status: StatusAccepted},
			{UserID: "friend", FriendID: "me", Status: StatusAccepted},
			{UserID: "me", FriendID: "sent", Status: StatusPending},
			{UserID: "received", FriendID: "me", Status: StatusPending},
		}
		svc := NewFriendshipService(repo, "http://localhost:3000")

		results, err := svc.Search(ctx, "al", "me")
		require.NoError(t, err)
		require.Len(t, results, 4)

		byID := make(map[string]SearchResult, len(results))
		for _, r := range results {
			byID[r.ID] = r
		}
		assert.Equal(t, AnnotationAccepted, byID["friend"].FriendshipStatus)
		assert.Equal(t, AnnotationPendingSent, byID["sent"].FriendshipStatus)
		assert.Equal(t, AnnotationPendingReceived, byID["received"].FriendshipStatus)
		assert.Equal(t, AnnotationNone, byID["stranger"].FriendshipStatus)
	})

	t.Run("ExcludesSelf", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		repo.searchHit = []profileRow{
			{ID: "me", Username: strp("me_too")},
			{ID: "other", Username: strp("me_three")},
		}
		svc := NewFriendshipService(repo, "http://localhost:3000")

		results, err := svc.Search(ctx, "me", "me")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "other", results[0].ID)
	})

	t.Run("TrimsQueryAndCapsResults", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		for i := 0; i < 30; i++ {
			repo.searchHit = append(repo.searchHit, profileRow{ID: string(rune('a' + i))})
		}
		svc := NewFriendshipService(repo, "http://localhost:3000")

		results, err := svc.Search(ctx, "  anna  ", "me")
		require.NoError(t, err)
		assert.Equal(t, "anna", repo.searchQuery)
		assert.Equal(t, searchLimit, repo.searchLimit)
		assert.Len(t, results, searchLimit)
	})
}

func TestSendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsSelf", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendshipRepo(), "http://localhost:3000")
		assert.ErrorIs(t, svc.SendRequest(ctx, "me", "me"), ErrCannotFriendSelf)
	})

	t.Run("RejectsExistingFriendship", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		repo.between = []Friendship{
			{UserID: "me", FriendID: "them", Status: StatusAccepted},
			{UserID: "them", FriendID: "me", Status: StatusAccepted},
		}
		svc := NewFriendshipService(repo, "http://localhost:3000")
		assert.ErrorIs(t, svc.SendRequest(ctx, "me", "them"), ErrAlreadyFriends)
	})

	t.Run("RejectsDuplicateRequestEitherDirection", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		repo.between = []Friendship{
			{UserID: "them", FriendID: "me", Status: StatusPending},
		}
		svc := NewFriendshipService(repo, "http://localhost:3000")
		assert.ErrorIs(t, svc.SendRequest(ctx, "me", "them"), ErrRequestExists)
	})

	t.Run("CreatesDirectionalRequest", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		svc := NewFriendshipService(repo, "http://localhost:3000")

		require.NoError(t, svc.SendRequest(ctx, "me", "them"))
		require.Len(t, repo.createdRequests, 1)
		assert.Equal(t, [2]string{"me", "them"}, repo.createdRequests[0])
	})
}

func TestAcceptRequestFlipsDirection(t *testing.T) {
	repo := newFakeFriendshipRepo()
	svc := NewFriendshipService(repo, "http://localhost:3000")

	// The accepting user is the target; the stored row is requester->target.
	require.NoError(t, svc.AcceptRequest(context.Background(), "target", "requester"))
	require.Len(t, repo.acceptedPairs, 1)
	assert.Equal(t, [2]string{"requester", "target"}, repo.acceptedPairs[0])
}

func TestInvites(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateIssuesCodeAndURL", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		svc := NewFriendshipService(repo, "http://localhost:3000/")

		inv, err := svc.CreateInvite(ctx, "inviter")
		require.NoError(t, err)
		assert.Len(t, inv.InviteCode, 12)
		assert.Equal(t, "http://localhost:3000/auth/sign-up?invite="+inv.InviteCode, inv.InviteURL)
		assert.False(t, strings.Contains(inv.InviteCode, "-"))

		stored := repo.invites[inv.InviteCode]
		require.NotNil(t, stored)
		assert.Equal(t, "inviter", stored.CreatedBy)
	})

	t.Run("RedeemMarksUsedAndFilesRequest", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		svc := NewFriendshipService(repo, "http://localhost:3000")

		inv, err := svc.CreateInvite(ctx, "inviter")
		require.NoError(t, err)

		require.NoError(t, svc.RedeemInvite(ctx, inv.InviteCode, "newbie"))

		stored := repo.invites[inv.InviteCode]
		require.NotNil(t, stored.UsedBy)
		assert.Equal(t, "newbie", *stored.UsedBy)
		require.Len(t, repo.createdRequests, 1)
		assert.Equal(t, [2]string{"newbie", "inviter"}, repo.createdRequests[0])
	})

	t.Run("RedeemRejectsUnknownCode", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendshipRepo(), "http://localhost:3000")
		assert.ErrorIs(t, svc.RedeemInvite(ctx, "nope", "newbie"), ErrInviteInvalid)
	})

	t.Run("RedeemRejectsUsedCode", func(t *testing.T) {
		repo := newFakeFriendshipRepo()
		svc := NewFriendshipService(repo, "http://localhost:3000")

		inv, err := svc.CreateInvite(ctx, "inviter")
		require.NoError(t, err)
		require.NoError(t, svc.RedeemInvite(ctx, inv.InviteCode, "first"))

		assert.ErrorIs(t, svc.RedeemInvite(ctx, inv.InviteCode, "second"), ErrInviteInvalid)
	})
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice Walker", displayName(strp("alice_w"), strp("Alice"), strp("Walker")))
	assert.Equal(t, "Alice", displayName(strp("alice_w"), strp("Alice"), nil))
	assert.Equal(t, "alice_w", displayName(strp("alice_w"), nil, nil))
	assert.Equal(t, "Not set", displayName(nil, nil, nil))
}
