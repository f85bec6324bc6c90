package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/enums"
)

// Profile is the canonical identity record. Owners carry the license
// allotment; customers carry their exclusive shop link.
type Profile struct {
	ID                 uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email              string                   `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash       string                   `gorm:"column:password_hash;not null"`
	Name               string                   `gorm:"column:name;not null"`
	Phone              *string                  `gorm:"column:phone"`
	Role               enums.ProfileRole        `gorm:"column:role;type:profile_role;not null;default:'customer'"`
	EmailVerified      bool                     `gorm:"column:email_verified;not null;default:false"`
	MaxLicenses        int                      `gorm:"column:max_licenses;not null;default:0"`
	LicenseCount       int                      `gorm:"column:license_count;not null;default:0"`
	SubscriptionStatus enums.SubscriptionStatus `gorm:"column:subscription_status;type:subscription_status;not null;default:'inactive'"`
	ExclusiveShopID    *uuid.UUID               `gorm:"column:exclusive_shop_id;type:uuid"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
