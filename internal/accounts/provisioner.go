package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/happyinline/inline-backend/internal/profiles"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/security"
)

type profilesRepository interface {
	Create(ctx context.Context, dto profiles.CreateProfileDTO) (*models.Profile, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, update profiles.UpdateProfileDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProvisionInput is the identity data for a brand-new provider account.
type ProvisionInput struct {
	Email string
	Name  string
	Phone *string
}

// ProvisionResult carries the new identity and its one-time credential.
type ProvisionResult struct {
	UserID       uuid.UUID
	TempPassword string
}

// Provisioner creates and removes provider identities.
type Provisioner interface {
	Provision(ctx context.Context, input ProvisionInput) (*ProvisionResult, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

type provisioner struct {
	profiles      profilesRepository
	passwordCfg   config.PasswordConfig
	enrollmentCfg config.EnrollmentConfig
}

// NewProvisioner builds an account provisioner with the provided repository.
func NewProvisioner(profilesRepo profilesRepository, passwordCfg config.PasswordConfig, enrollmentCfg config.EnrollmentConfig) (Provisioner, error) {
	if profilesRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &provisioner{
		profiles:      profilesRepo,
		passwordCfg:   passwordCfg,
		enrollmentCfg: enrollmentCfg,
	}, nil
}

// Provision creates a credential record with a generated one-time password and
// email pre-verified, then applies the identity metadata. If the metadata
// update fails the credential is deleted before the error surfaces; the two
// writes have no shared transaction.
func (p *provisioner) Provision(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	length := p.enrollmentCfg.TempPasswordLn
	if length <= 0 {
		length = 16
	}
	tempPassword, err := security.GenerateTempPassword(length)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, p.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	profile, err := p.profiles.Create(ctx, profiles.CreateProfileDTO{
		Email:         email,
		PasswordHash:  hash,
		Name:          input.Name,
		Phone:         input.Phone,
		Role:          enums.ProfileRoleProvider,
		EmailVerified: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	role := enums.ProfileRoleProvider
	update := profiles.UpdateProfileDTO{
		Name: &input.Name,
		Role: &role,
	}
	if input.Phone != nil {
		update.Phone = input.Phone
	}
	if err := p.profiles.UpdateDetails(ctx, profile.ID, update); err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply profile metadata")
		if delErr := p.profiles.Delete(ctx, profile.ID); delErr != nil {
			return nil, multierr.Append(wrapped, fmt.Errorf("rollback account %s: %w", profile.ID, delErr))
		}
		return nil, wrapped
	}

	return &ProvisionResult{
		UserID:       profile.ID,
		TempPassword: tempPassword,
	}, nil
}

// Remove deletes the identity. Exposed for compensating actions.
func (p *provisioner) Remove(ctx context.Context, userID uuid.UUID) error {
	if err := p.profiles.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	return nil
}
