package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

type shopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListApproved(ctx context.Context, params pagination.Params) ([]models.Shop, string, error)
}

// Service exposes the public shop discovery surface.
type Service interface {
	GetApproved(ctx context.Context, id uuid.UUID) (*ShopDTO, error)
	List(ctx context.Context, input ListShopsInput) (*ShopListResult, error)
}

type service struct {
	repo shopRepository
}

// NewService builds a shop discovery service with the provided repository.
func NewService(repo shopRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// GetApproved returns the shop only when its status is approved. Shops in any
// other lifecycle state are hidden from the public surface.
func (s *service) GetApproved(ctx context.Context, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop")
	}
	if shop.Status != enums.ShopStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return FromModel(shop), nil
}

func (s *service) List(ctx context.Context, input ListShopsInput) (*ShopListResult, error) {
	rows, nextCursor, err := s.repo.ListApproved(ctx, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shops")
	}

	dtos := make([]ShopDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}

	return &ShopListResult{
		Shops:      dtos,
		NextCursor: nextCursor,
	}, nil
}
