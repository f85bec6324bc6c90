package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/internal/profiles"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/security"
)

func testCfgs() (config.PasswordConfig, config.EnrollmentConfig) {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}, config.EnrollmentConfig{TempPasswordLn: 12}
}

func TestNewProvisionerRequiresRepo(t *testing.T) {
	pwCfg, enrollCfg := testCfgs()
	if _, err := NewProvisioner(nil, pwCfg, enrollCfg); err == nil {
		t.Fatal("expected error creating provisioner without repo")
	}
}

func TestProvisionCreatesVerifiedProviderAccount(t *testing.T) {
	repo := &stubProvisionRepo{}
	prov := mustProvisioner(t, repo)

	phone := "405-555-0101"
	result, err := prov.Provision(context.Background(), ProvisionInput{
		Email: "Pat@Example.com",
		Name:  "Pat Provider",
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if len(result.TempPassword) != 12 {
		t.Fatalf("expected 12-char temp password, got %d chars", len(result.TempPassword))
	}
	if repo.created == nil {
		t.Fatal("expected profile to be created")
	}
	if repo.created.Email != "pat@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if !repo.created.EmailVerified {
		t.Fatal("expected email pre-verified")
	}
	if repo.created.Role != enums.ProfileRoleProvider {
		t.Fatalf("expected provider role, got %s", repo.created.Role)
	}

	ok, err := security.VerifyPassword(result.TempPassword, repo.created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected temp password to verify against stored hash (ok=%v err=%v)", ok, err)
	}

	if repo.lastUpdate.Name == nil || *repo.lastUpdate.Name != "Pat Provider" {
		t.Fatalf("expected metadata update with name, got %v", repo.lastUpdate.Name)
	}
	if repo.lastUpdate.Phone == nil || *repo.lastUpdate.Phone != phone {
		t.Fatalf("expected metadata update with phone, got %v", repo.lastUpdate.Phone)
	}
}

func TestProvisionRejectsInvalidEmail(t *testing.T) {
	prov := mustProvisioner(t, &stubProvisionRepo{})

	_, err := prov.Provision(context.Background(), ProvisionInput{Email: "not-an-email", Name: "X"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestProvisionRollsBackOnMetadataFailure(t *testing.T) {
	repo := &stubProvisionRepo{updateErr: errors.New("metadata write failed")}
	prov := mustProvisioner(t, repo)

	_, err := prov.Provision(context.Background(), ProvisionInput{Email: "pat@example.com", Name: "Pat"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected created account to be deleted, got %v", repo.deleted)
	}
	if repo.created == nil || repo.deleted[0] != repo.created.ID {
		t.Fatal("expected rollback to target the created account")
	}
}

func TestRemoveDeletesAccount(t *testing.T) {
	repo := &stubProvisionRepo{}
	prov := mustProvisioner(t, repo)

	id := uuid.New()
	if err := prov.Remove(context.Background(), id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != id {
		t.Fatalf("expected delete of %s, got %v", id, repo.deleted)
	}
}

func mustProvisioner(t *testing.T, repo *stubProvisionRepo) Provisioner {
	t.Helper()
	pwCfg, enrollCfg := testCfgs()
	prov, err := NewProvisioner(repo, pwCfg, enrollCfg)
	if err != nil {
		t.Fatalf("new provisioner: %v", err)
	}
	return prov
}

type stubProvisionRepo struct {
	created    *models.Profile
	createErr  error
	updateErr  error
	lastUpdate profiles.UpdateProfileDTO
	deleted    []uuid.UUID
}

func (s *stubProvisionRepo) Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	profile := dto.ToModel()
	profile.ID = uuid.New()
	s.created = profile
	return profile, nil
}

func (s *stubProvisionRepo) UpdateDetails(ctx context.Context, id uuid.UUID, update profiles.UpdateProfileDTO) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUpdate = update
	return nil
}

func (s *stubProvisionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}
