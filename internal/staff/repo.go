package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
)

// Repository exposes shop roster persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountActive returns how many active staff rows the shop currently has.
func (r *Repository) CountActive(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShopStaff{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Exists reports whether the user already holds a roster entry at the shop.
// Deactivated entries count too: there is at most one row per (shop_id, user_id).
func (r *Repository) Exists(ctx context.Context, shopID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShopStaff{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a roster entry with the provider defaults.
func (r *Repository) Create(ctx context.Context, shopID, userID uuid.UUID, role enums.StaffRole) (*models.ShopStaff, error) {
	entry := &models.ShopStaff{
		ID:          uuid.New(),
		ShopID:      shopID,
		UserID:      userID,
		Role:        role,
		IsActive:    true,
		IsAvailable: true,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes a roster entry. Used as a compensating action.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ShopStaff{}, "id = ?", id).Error
}
