package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
)

// ReadConsistency declares the read guarantee a profile store makes after a
// write it performed itself.
type ReadConsistency int

const (
	// StrongRead stores return their own writes; no verification re-read is
	// needed after an update.
	StrongRead ReadConsistency = iota
	// EventualRead stores may serve stale rows; callers verify critical
	// writes with a follow-up read.
	EventualRead
)

// Repository exposes profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Consistency reports the store's read-after-write contract. Postgres behind
// a single connection pool returns its own writes.
func (r *Repository) Consistency() ReadConsistency {
	return StrongRead
}

// Create inserts a new profile and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateProfileDTO) (*models.Profile, error) {
	profile := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByID loads a profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByIDForUpdate loads a profile holding a FOR UPDATE row lock. Only
// meaningful inside a transaction; used by the hard-cap enrollment path.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail retrieves the profile matching the case-normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateDetails overwrites the mutable identity fields on a profile.
func (r *Repository) UpdateDetails(ctx context.Context, id uuid.UUID, update UpdateProfileDTO) error {
	fields := map[string]any{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if update.ExclusiveShopID != nil {
		fields["exclusive_shop_id"] = *update.ExclusiveShopID
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// IncrementLicenseCount bumps the owner's license counter by one.
func (r *Repository) IncrementLicenseCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("license_count", gorm.Expr("license_count + 1")).Error
}

// Delete removes the profile row. Used as a compensating action when a later
// enrollment step fails after identity provisioning.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error
}

// UpdateProfileDTO captures the fields UpdateDetails may overwrite.
type UpdateProfileDTO struct {
	Name            *string
	Phone           *string
	Role            *enums.ProfileRole
	ExclusiveShopID *uuid.UUID
}
