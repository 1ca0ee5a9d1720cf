package profile

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByUsername(ctx context.Context, username string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "bio", "updated_at"}),
	}).Create(p).Error
}

func (r *profileRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"avatar_url", "updated_at"}),
	}).Create(&Profile{ID: id, AvatarURL: &avatarURL}).Error
}
