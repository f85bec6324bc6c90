package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/enums"
)

// ShopStaff links a user with a shop's roster. Uniqueness of
// (shop_id, user_id) is enforced by the enrollment workflow's pre-check,
// not by a database constraint.
type ShopStaff struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID      uuid.UUID       `gorm:"column:shop_id;type:uuid;not null;index"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Role        enums.StaffRole `gorm:"column:role;type:staff_role;not null"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the roster table name.
func (ShopStaff) TableName() string {
	return "shop_staff"
}
