package shops

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

// ShopDTO is the public transport shape of a shop.
type ShopDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Status      enums.ShopStatus `json:"status"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Description *string          `json:"description,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Services    []string         `json:"services"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateShopDTO holds the data required by the repo to persist a new shop.
type CreateShopDTO struct {
	Name        string
	OwnerID     uuid.UUID
	Status      enums.ShopStatus
	Description *string
	Phone       *string
	Email       *string
	Address     *string
	Services    []string
}

// ListShopsInput captures the inputs for the public discovery listing.
type ListShopsInput struct {
	Pagination pagination.Params
}

// ShopListResult is one page of approved shops plus the next cursor.
type ShopListResult struct {
	Shops      []ShopDTO `json:"shops"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func FromModel(s *models.Shop) *ShopDTO {
	if s == nil {
		return nil
	}

	return &ShopDTO{
		ID:          s.ID,
		Name:        s.Name,
		Status:      s.Status,
		OwnerID:     s.OwnerID,
		Description: s.Description,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Services:    append([]string(nil), []string(s.Services)...),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (c CreateShopDTO) ToModel() *models.Shop {
	status := c.Status
	if status == "" {
		status = enums.ShopStatusPending
	}

	var services pq.StringArray
	if c.Services != nil {
		services = make(pq.StringArray, len(c.Services))
		copy(services, c.Services)
	}

	return &models.Shop{
		Name:        c.Name,
		Status:      status,
		OwnerID:     c.OwnerID,
		Description: c.Description,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Services:    services,
	}
}
