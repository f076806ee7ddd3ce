package repositories

import (
	"context"

	apperrors "propmarket/internal/errors"
	"propmarket/internal/models"
	"propmarket/internal/repositories/cache"
	keys "propmarket/internal/utils/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = apperrors.New(apperrors.KindNotFound, "PROFILE_NOT_FOUND", "user profile not found")

type profileRepository struct {
	db    *gorm.DB
	cache cache.Store
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB, store cache.Store) ProfileRepository {
	if store == nil {
		store = cache.Noop{}
	}
	return &profileRepository{
		db:    db,
		cache: store,
	}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	key := keys.GenerateKey(keys.EntityProfile, keys.KeyID, id)
	var profile models.Profile
	if found, err := r.cache.Get(ctx, key, &profile); err == nil && found {
		return &profile, nil
	}

	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get profile", ErrProfileNotFound)
	}
	_ = r.cache.Set(ctx, key, &profile)
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return translate(err, "upsert profile", nil)
	}
	_ = r.cache.Delete(ctx, keys.GenerateKey(keys.EntityProfile, keys.KeyID, profile.ID))
	return nil
}

func (r *profileRepository) SyncFromClaims(ctx context.Context, claims *models.UserClaims) error {
	if claims == nil || claims.UserID == "" {
		return nil
	}
	key := keys.GenerateKey(keys.EntityProfile, keys.KeyID, claims.UserID)
	var cached models.Profile
	if found, err := r.cache.Get(ctx, key, &cached); err == nil && found &&
		cached.Name == claims.Name && cached.Email == claims.Email && cached.Role == claims.Role {
		return nil
	}

	profile := &models.Profile{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}
	if err := r.Upsert(ctx, profile); err != nil {
		return err
	}
	_ = r.cache.Set(ctx, key, profile)
	return nil
}
