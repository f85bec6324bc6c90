package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/api/responses"
	"github.com/happyinline/inline-backend/api/validators"
	"github.com/happyinline/inline-backend/internal/enrollment"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/logger"
)

type createProviderRequest struct {
	ShopID  string  `json:"shopId" validate:"required"`
	OwnerID string  `json:"ownerId" validate:"required"`
	Name    string  `json:"name" validate:"required,min=1"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
}

func (r createProviderRequest) toInput() (enrollment.EnrollInput, error) {
	shopID, err := uuid.Parse(r.ShopID)
	if err != nil {
		return enrollment.EnrollInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id")
	}
	ownerID, err := uuid.Parse(r.OwnerID)
	if err != nil {
		return enrollment.EnrollInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid owner id")
	}
	return enrollment.EnrollInput{
		ShopID:  shopID,
		OwnerID: ownerID,
		Name:    validators.SanitizeString(r.Name, 120),
		Email:   validators.SanitizeString(r.Email, 254),
		Phone:   r.Phone,
	}, nil
}

// CreateProvider enrolls a provider onto a shop's roster under the license cap.
func CreateProvider(svc enrollment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enrollment service unavailable"))
			return
		}

		var payload createProviderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Enroll(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessFlat(w, result)
	}
}
