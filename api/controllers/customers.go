package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/api/responses"
	"github.com/happyinline/inline-backend/api/validators"
	"github.com/happyinline/inline-backend/internal/customers"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/logger"
)

type linkShopRequest struct {
	UserID string  `json:"userId" validate:"required"`
	ShopID string  `json:"shopId" validate:"required"`
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
}

func (r linkShopRequest) toInput() (customers.LinkShopInput, error) {
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return customers.LinkShopInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	shopID, err := uuid.Parse(r.ShopID)
	if err != nil {
		return customers.LinkShopInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id")
	}
	name := r.Name
	if name != nil {
		clean := validators.SanitizeString(*name, 120)
		name = &clean
	}
	return customers.LinkShopInput{
		UserID: userID,
		ShopID: shopID,
		Name:   name,
		Phone:  r.Phone,
	}, nil
}

// LinkShop pins a customer profile to an approved shop.
func LinkShop(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload linkShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.LinkShop(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessFlat(w, result)
	}
}
