package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/internal/profiles"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
)

type profilesRepository interface {
	Consistency() profiles.ReadConsistency
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, update profiles.UpdateProfileDTO) error
}

type shopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// LinkShopInput is the payload for the customer self-service link.
type LinkShopInput struct {
	UserID uuid.UUID
	ShopID uuid.UUID
	Name   *string
	Phone  *string
}

// LinkShopResult mirrors the link-shop response contract.
type LinkShopResult struct {
	Message  string    `json:"message"`
	ShopID   uuid.UUID `json:"shopId"`
	ShopName string    `json:"shopName"`
}

// Service associates a customer with their exclusive shop.
type Service interface {
	LinkShop(ctx context.Context, input LinkShopInput) (*LinkShopResult, error)
}

type service struct {
	profiles profilesRepository
	shops    shopRepository
}

// NewService builds the shop-linking service with the provided repositories.
func NewService(profilesRepo profilesRepository, shopsRepo shopRepository) (Service, error) {
	if profilesRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if shopsRepo == nil {
		return nil, fmt.Errorf("shops repository required")
	}
	return &service{profiles: profilesRepo, shops: shopsRepo}, nil
}

// LinkShop points the customer at the shop. Re-linking to a different shop
// overwrites the previous link (last write wins). A verification re-read runs
// only when the profile store does not return its own writes.
func (s *service) LinkShop(ctx context.Context, input LinkShopInput) (*LinkShopResult, error) {
	shop, err := s.shops.FindByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop")
	}
	if shop.Status != enums.ShopStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shop is not approved")
	}

	if _, err := s.profiles.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user profile")
	}

	role := enums.ProfileRoleCustomer
	shopID := input.ShopID
	update := profiles.UpdateProfileDTO{
		Role:            &role,
		ExclusiveShopID: &shopID,
	}
	if input.Name != nil {
		update.Name = input.Name
	}
	if input.Phone != nil {
		update.Phone = input.Phone
	}
	if err := s.profiles.UpdateDetails(ctx, input.UserID, update); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link shop to profile")
	}

	if s.profiles.Consistency() == profiles.EventualRead {
		if err := s.verifyLink(ctx, input.UserID, input.ShopID); err != nil {
			return nil, err
		}
	}

	return &LinkShopResult{
		Message:  fmt.Sprintf("Linked to %s", shop.Name),
		ShopID:   shop.ID,
		ShopName: shop.Name,
	}, nil
}

func (s *service) verifyLink(ctx context.Context, userID, shopID uuid.UUID) error {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "re-read profile")
	}
	if profile.ExclusiveShopID == nil || *profile.ExclusiveShopID != shopID {
		return pkgerrors.New(pkgerrors.CodeInternal, "shop link verification failed")
	}
	return nil
}
