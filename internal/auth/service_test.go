package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/internal/profiles"
	pkgAuth "github.com/happyinline/inline-backend/pkg/auth"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "inline-test",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestNewServiceRequiresProfilesRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error creating service without profiles repo")
	}
}

func TestRegisterCreatesCustomerAndMintsToken(t *testing.T) {
	repo := &stubAuthProfilesRepo{findEmailErr: gorm.ErrRecordNotFound}
	svc := mustAuthService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "hunter2hunter2",
		Name:     "Casey Customer",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if repo.created == nil {
		t.Fatal("expected profile to be created")
	}
	if repo.created.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if repo.created.Role != enums.ProfileRoleCustomer {
		t.Fatalf("expected customer role, got %s", repo.created.Role)
	}
	if repo.created.PasswordHash == "hunter2hunter2" {
		t.Fatal("expected password to be hashed")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Role != enums.ProfileRoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	repo := &stubAuthProfilesRepo{existing: &models.Profile{ID: uuid.New(), Email: "new@example.com"}}
	svc := mustAuthService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "hunter2hunter2",
		Name:     "Casey",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := security.HashPassword("correct-horse", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	shopID := uuid.New()
	profile := &models.Profile{
		ID:              uuid.New(),
		Email:           "casey@example.com",
		PasswordHash:    hash,
		Role:            enums.ProfileRoleCustomer,
		ExclusiveShopID: &shopID,
	}
	svc := mustAuthService(t, &stubAuthProfilesRepo{existing: profile})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Casey@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != profile.ID {
		t.Fatalf("expected user id claim %s got %s", profile.ID, claims.UserID)
	}
	if claims.ExclusiveShopID == nil || *claims.ExclusiveShopID != shopID {
		t.Fatalf("expected exclusive shop claim, got %v", claims.ExclusiveShopID)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	hash, err := security.HashPassword("correct-horse", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	profile := &models.Profile{ID: uuid.New(), Email: "casey@example.com", PasswordHash: hash, Role: enums.ProfileRoleCustomer}
	svc := mustAuthService(t, &stubAuthProfilesRepo{existing: profile})

	_, gotErr := svc.Login(context.Background(), LoginRequest{Email: "casey@example.com", Password: "wrong"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", gotErr)
	}
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	svc := mustAuthService(t, &stubAuthProfilesRepo{findEmailErr: gorm.ErrRecordNotFound})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func mustAuthService(t *testing.T, repo *stubAuthProfilesRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Profiles:    repo,
		JWTConfig:   testJWTConfig(),
		PasswordCfg: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubAuthProfilesRepo struct {
	existing     *models.Profile
	findEmailErr error
	created      *models.Profile
	createErr    error
}

func (s *stubAuthProfilesRepo) Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	profile := dto.ToModel()
	profile.ID = uuid.New()
	s.created = profile
	return profile, nil
}

func (s *stubAuthProfilesRepo) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if s.findEmailErr != nil {
		return nil, s.findEmailErr
	}
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubAuthProfilesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}
