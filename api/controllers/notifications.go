package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/api/middleware"
	"github.com/happyinline/inline-backend/api/responses"
	"github.com/happyinline/inline-backend/api/validators"
	"github.com/happyinline/inline-backend/internal/notifications"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/logger"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

// SendBookingEmail accepts a booking payload and dispatches the confirmation email.
func SendBookingEmail(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		var payload notifications.BookingEmailInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.UserID == uuid.Nil {
			if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
				if uid, err := uuid.Parse(raw); err == nil {
					payload.UserID = uid
				}
			}
		}

		if err := svc.SendBookingConfirmation(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "Booking confirmation sent"})
	}
}

// ListNotifications returns the caller's notification audit trail, newest first.
func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.List(r.Context(), uid, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
