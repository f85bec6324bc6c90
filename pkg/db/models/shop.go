package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/happyinline/inline-backend/pkg/enums"
)

// Shop represents a tenant business entity with an approval lifecycle.
type Shop struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	Status      enums.ShopStatus `gorm:"column:status;type:shop_status;not null;default:'pending'"`
	OwnerID     uuid.UUID        `gorm:"column:owner_id;type:uuid;not null"`
	Description *string          `gorm:"column:description"`
	Phone       *string          `gorm:"column:phone"`
	Email       *string          `gorm:"column:email"`
	Address     *string          `gorm:"column:address"`
	Services    pq.StringArray   `gorm:"column:services;type:text[]"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
