package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/api/middleware"
	"github.com/happyinline/inline-backend/internal/notifications"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

type testNotificationsService struct {
	sendFn func(ctx context.Context, input notifications.BookingEmailInput) error
	listFn func(ctx context.Context, userID uuid.UUID, params pagination.Params) (*notifications.ListResult, error)
}

func (s *testNotificationsService) SendBookingConfirmation(ctx context.Context, input notifications.BookingEmailInput) error {
	if s.sendFn != nil {
		return s.sendFn(ctx, input)
	}
	return nil
}

func (s *testNotificationsService) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, params)
	}
	return nil, nil
}

func TestSendBookingEmailSuccess(t *testing.T) {
	userID := uuid.New()
	var got notifications.BookingEmailInput

	svc := &testNotificationsService{
		sendFn: func(ctx context.Context, input notifications.BookingEmailInput) error {
			got = input
			return nil
		},
	}

	body := `{
		"userId": "` + userID.String() + `",
		"shopName": "Fade Factory",
		"customer": {"name": "Jamie", "email": "jamie@example.com"},
		"owner": {"name": "Sam", "email": "sam@example.com"},
		"provider": {"name": "Pat", "email": "pat@example.com"},
		"services": [{"name": "Haircut", "price": "30"}],
		"appointmentAt": "2026-09-14T15:30:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/booking", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SendBookingEmail(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.UserID != userID {
		t.Fatalf("unexpected user %s", got.UserID)
	}
	if got.ShopName != "Fade Factory" {
		t.Fatalf("unexpected shop name %q", got.ShopName)
	}
	if len(got.Services) != 1 || got.Services[0].Name != "Haircut" {
		t.Fatal("expected service line forwarded")
	}
}

func TestSendBookingEmailFillsUserFromContext(t *testing.T) {
	userID := uuid.New()
	var got notifications.BookingEmailInput

	svc := &testNotificationsService{
		sendFn: func(ctx context.Context, input notifications.BookingEmailInput) error {
			got = input
			return nil
		},
	}

	body := `{
		"shopName": "Fade Factory",
		"customer": {"name": "Jamie", "email": "jamie@example.com"},
		"owner": {"name": "Sam", "email": "sam@example.com"},
		"provider": {"name": "Pat", "email": "pat@example.com"},
		"services": [{"name": "Haircut", "price": "30"}],
		"appointmentAt": "2026-09-14T15:30:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/booking", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	SendBookingEmail(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got.UserID != userID {
		t.Fatalf("expected user from context, got %s", got.UserID)
	}
}

func TestListNotificationsRequiresUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	resp := httptest.NewRecorder()
	ListNotifications(&testNotificationsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestListNotificationsForwardsParams(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, uid uuid.UUID, params pagination.Params) (*notifications.ListResult, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if params.Limit != 10 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			if params.Cursor != "abc" {
				t.Fatalf("unexpected cursor %q", params.Cursor)
			}
			return &notifications.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notifications?limit=10&cursor=abc", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
