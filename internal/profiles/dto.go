package profiles

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
)

// ProfileDTO is the transport shape that omits the credential hash.
type ProfileDTO struct {
	ID                 uuid.UUID                `json:"id"`
	Email              string                   `json:"email"`
	Name               string                   `json:"name"`
	Phone              *string                  `json:"phone,omitempty"`
	Role               enums.ProfileRole        `json:"role"`
	EmailVerified      bool                     `json:"email_verified"`
	MaxLicenses        int                      `json:"max_licenses"`
	LicenseCount       int                      `json:"license_count"`
	SubscriptionStatus enums.SubscriptionStatus `json:"subscription_status"`
	ExclusiveShopID    *uuid.UUID               `json:"exclusive_shop_id,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// CreateProfileDTO holds the data required by the repo to persist a new profile.
type CreateProfileDTO struct {
	Email         string
	PasswordHash  string
	Name          string
	Phone         *string
	Role          enums.ProfileRole
	EmailVerified bool
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Phone:              p.Phone,
		Role:               p.Role,
		EmailVerified:      p.EmailVerified,
		MaxLicenses:        p.MaxLicenses,
		LicenseCount:       p.LicenseCount,
		SubscriptionStatus: p.SubscriptionStatus,
		ExclusiveShopID:    p.ExclusiveShopID,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (c CreateProfileDTO) ToModel() *models.Profile {
	role := c.Role
	if role == "" {
		role = enums.ProfileRoleCustomer
	}

	return &models.Profile{
		Email:              strings.ToLower(strings.TrimSpace(c.Email)),
		PasswordHash:       c.PasswordHash,
		Name:               c.Name,
		Phone:              c.Phone,
		Role:               role,
		EmailVerified:      c.EmailVerified,
		SubscriptionStatus: enums.SubscriptionStatusInactive,
	}
}
