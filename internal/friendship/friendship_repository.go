package friendship

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRow is the profile projection joined onto friendship queries.
type profileRow struct {
	ID        string
	Username  *string
	FirstName *string
	LastName  *string
	AvatarURL *string
	Status    Status
}

type FriendshipRepository interface {
	FindFriends(ctx context.Context, userID string) ([]profileRow, error)
	FindPendingReceived(ctx context.Context, userID string) ([]profileRow, error)
	CountFriends(ctx context.Context, userID string) (int64, error)
	// SearchProfiles matches username/first/last case-insensitively,
	// excluding the given user, deduplicated by primary key.
	SearchProfiles(ctx context.Context, query, excludeID string, limit int) ([]profileRow, error)
	// FindBetween returns every directional row linking userID with any of
	// the other IDs, in both directions.
	FindBetween(ctx context.Context, userID string, otherIDs []string) ([]Friendship, error)
	CreateRequest(ctx context.Context, requesterID, targetID string) error
	AcceptRequest(ctx context.Context, requesterID, targetID string) error
	Remove(ctx context.Context, userID, friendID string) error
	CreateInvite(ctx context.Context, inv *Invite) error
	FindInvite(ctx context.Context, code string) (*Invite, error)
	MarkInviteUsed(ctx context.Context, code, usedBy string) error
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) FindFriends(ctx context.Context, userID string) ([]profileRow, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.username, p.first_name, p.last_name, p.avatar_url, f.status
		FROM friendships f
		JOIN profiles p ON p.id = f.friend_id
		WHERE f.user_id = ? AND f.status = 'ACCEPTED'
		ORDER BY f.created_at ASC`,
		userID).Scan(&rows).Error
	return rows, err
}

func (r *friendshipRepository) FindPendingReceived(ctx context.Context, userID string) ([]profileRow, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.username, p.first_name, p.last_name, p.avatar_url, f.status
		FROM friendships f
		JOIN profiles p ON p.id = f.user_id
		WHERE f.friend_id = ? AND f.status = 'PENDING'
		ORDER BY f.created_at ASC`,
		userID).Scan(&rows).Error
	return rows, err
}

func (r *friendshipRepository) CountFriends(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Friendship{}).
		Where("user_id = ? AND status = ?", userID, StatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *friendshipRepository) SearchProfiles(ctx context.Context, query, excludeID string, limit int) ([]profileRow, error) {
	var rows []profileRow
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.username, p.first_name, p.last_name, p.avatar_url
		FROM profiles p
		WHERE p.id <> ?
		  AND (p.username ILIKE ? OR p.first_name ILIKE ? OR p.last_name ILIKE ?)
		ORDER BY p.username ASC NULLS LAST
		LIMIT ?`,
		excludeID, pattern, pattern, pattern, limit).Scan(&rows).Error
	return rows, err
}

func (r *friendshipRepository) FindBetween(ctx context.Context, userID string, otherIDs []string) ([]Friendship, error) {
	if len(otherIDs) == 0 {
		return nil, nil
	}
	var rows []Friendship
	err := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id IN ?) OR (friend_id = ? AND user_id IN ?)",
			userID, otherIDs, userID, otherIDs).
		Find(&rows).Error
	return rows, err
}

// CreateRequest files a pending request as a single directional row. The
// advisory lock serialises concurrent requests over the same pair, so
// simultaneous A->B and B->A cannot both slip past the duplicate check.
func (r *friendshipRepository) CreateRequest(ctx context.Context, requesterID, targetID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, b := requesterID, targetID
		if b < a {
			a, b = b, a
		}
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(? || ':' || ?))", a, b).Error; err != nil {
			return err
		}

		var existing []Friendship
		err := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			requesterID, targetID, targetID, requesterID).
			Find(&existing).Error
		if err != nil {
			return err
		}
		for _, f := range existing {
			if f.Status == StatusAccepted {
				return ErrAlreadyFriends
			}
			return ErrRequestExists
		}

		return tx.Create(&Friendship{
			UserID:   requesterID,
			FriendID: targetID,
			Status:   StatusPending,
		}).Error
	})
}

// AcceptRequest flips the requester's row to ACCEPTED and materializes
// the reverse row in the same transaction.
func (r *friendshipRepository) AcceptRequest(ctx context.Context, requesterID, targetID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Friendship{}).
			Where("user_id = ? AND friend_id = ? AND status = ?", requesterID, targetID, StatusPending).
			Update("status", StatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&Friendship{
			UserID:   targetID,
			FriendID: requesterID,
			Status:   StatusAccepted,
		}).Error
	})
}

// Remove deletes both directional rows atomically.
func (r *friendshipRepository) Remove(ctx context.Context, userID, friendID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
			Delete(&Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFriends
		}
		return nil
	})
}

func (r *friendshipRepository) CreateInvite(ctx context.Context, inv *Invite) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *friendshipRepository) FindInvite(ctx context.Context, code string) (*Invite, error) {
	var inv Invite
	err := r.db.WithContext(ctx).First(&inv, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkInviteUsed consumes the code. The used_by IS NULL guard makes the
// consume atomic: a racing redemption finds zero rows and fails.
func (r *friendshipRepository) MarkInviteUsed(ctx context.Context, code, usedBy string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&Invite{}).
		Where("code = ? AND used_by IS NULL", code).
		Updates(map[string]interface{}{"used_by": usedBy, "used_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInviteInvalid
	}
	return nil
}
