package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/internal/auth"
	"github.com/happyinline/inline-backend/internal/customers"
	"github.com/happyinline/inline-backend/internal/enrollment"
	"github.com/happyinline/inline-backend/internal/notifications"
	"github.com/happyinline/inline-backend/internal/shops"
	pkgAuth "github.com/happyinline/inline-backend/pkg/auth"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/enums"
	"github.com/happyinline/inline-backend/pkg/logger"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

type stubShopsService struct{}

func (stubShopsService) GetApproved(ctx context.Context, id uuid.UUID) (*shops.ShopDTO, error) {
	return &shops.ShopDTO{ID: id}, nil
}

func (stubShopsService) List(ctx context.Context, input shops.ListShopsInput) (*shops.ShopListResult, error) {
	return &shops.ShopListResult{}, nil
}

type stubEnrollmentService struct{}

func (stubEnrollmentService) Enroll(ctx context.Context, input enrollment.EnrollInput) (*enrollment.EnrollResult, error) {
	return &enrollment.EnrollResult{UserID: input.OwnerID}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) LinkShop(ctx context.Context, input customers.LinkShopInput) (*customers.LinkShopResult, error) {
	return &customers.LinkShopResult{ShopID: input.ShopID}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) SendBookingConfirmation(ctx context.Context, input notifications.BookingEmailInput) error {
	return nil
}

func (stubNotificationsService) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "inline-test", ExpirationMinutes: 15},
	}
}

func newTestRouter() http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(
		testRouterConfig(),
		logg,
		stubPinger{},
		nil,
		nil,
		nil,
		stubAuthService{},
		stubShopsService{},
		stubEnrollmentService{},
		stubCustomersService{},
		stubNotificationsService{},
	)
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", path, resp.Code)
		}
	}
}

func TestRouterPublicShopsDoNotRequireAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/shops", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/providers/create"},
		{http.MethodPost, "/api/customer/link-shop"},
		{http.MethodPost, "/api/notifications/booking"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/ping"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestRouterAcceptsValidToken(t *testing.T) {
	router := newTestRouter()
	cfg := testRouterConfig()

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.ProfileRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
