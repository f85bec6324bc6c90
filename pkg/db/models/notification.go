package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/enums"
)

// Notification records a transactional email dispatched for a user.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Kind      enums.NotificationKind `gorm:"column:kind;type:notification_kind;not null"`
	Recipient string                 `gorm:"column:recipient;not null"`
	Subject   string                 `gorm:"column:subject;not null"`
	Body      string                 `gorm:"column:body;not null"`
	SentAt    *time.Time             `gorm:"column:sent_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
