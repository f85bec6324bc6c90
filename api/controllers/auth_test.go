package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/internal/auth"
	"github.com/happyinline/inline-backend/internal/profiles"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
)

type testAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
}

func (s *testAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return nil, nil
}

func (s *testAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return nil, nil
}

func TestAuthRegisterSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &testAuthService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
			if req.Email != "new@example.com" {
				t.Fatalf("unexpected email %s", req.Email)
			}
			return &auth.RegisterResponse{
				AccessToken: "token",
				User:        &profiles.ProfileDTO{ID: userID, Email: req.Email},
			}, nil
		},
	}

	body := `{"email":"new@example.com","password":"longenough","name":"Jamie"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data auth.RegisterResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.AccessToken != "token" {
		t.Fatal("expected access token in response")
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != userID {
		t.Fatal("expected user in response")
	}
}

func TestAuthRegisterShortPassword(t *testing.T) {
	body := `{"email":"new@example.com","password":"short","name":"Jamie"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(&testAuthService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return &auth.LoginResponse{AccessToken: "token", User: &profiles.ProfileDTO{Email: req.Email}}, nil
		},
	}

	body := `{"email":"user@example.com","password":"secretpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	body := `{"email":"user@example.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}
