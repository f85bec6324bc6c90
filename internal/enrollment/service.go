package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/internal/accounts"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/logger"
)

type ownerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	IncrementLicenseCount(ctx context.Context, id uuid.UUID) error
}

type staffRepository interface {
	CountActive(ctx context.Context, shopID uuid.UUID) (int64, error)
	Exists(ctx context.Context, shopID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, shopID, userID uuid.UUID, role enums.StaffRole) (*models.ShopStaff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cappedStaffCreator interface {
	CreateUnderCap(ctx context.Context, ownerID, shopID, userID uuid.UUID, role enums.StaffRole) (*models.ShopStaff, error)
}

type accountProvisioner interface {
	Provision(ctx context.Context, input accounts.ProvisionInput) (*accounts.ProvisionResult, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

// EnrollInput is the payload for staffing a provider onto a shop.
type EnrollInput struct {
	ShopID  uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Email   string
	Phone   *string
}

// EnrollResult mirrors the provider-create response contract.
type EnrollResult struct {
	UserID            uuid.UUID `json:"userId"`
	GeneratedPassword *string   `json:"generatedPassword"`
	IsNewUser         bool      `json:"isNewUser"`
	Message           string    `json:"message"`
}

// Service runs the license-gated enrollment workflow.
type Service interface {
	Enroll(ctx context.Context, input EnrollInput) (*EnrollResult, error)
}

// ServiceParams bundles the dependencies for the enrollment service.
type ServiceParams struct {
	Profiles    ownerRepository
	Staff       staffRepository
	CappedStaff cappedStaffCreator
	Provisioner accountProvisioner
	Logger      *logger.Logger
	Config      config.EnrollmentConfig
}

type service struct {
	profiles    ownerRepository
	staff       staffRepository
	cappedStaff cappedStaffCreator
	provisioner accountProvisioner
	logg        *logger.Logger
	cfg         config.EnrollmentConfig
}

// NewService constructs the enrollment workflow with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if params.Staff == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	if params.Provisioner == nil {
		return nil, fmt.Errorf("account provisioner required")
	}
	if params.Config.HardCap && params.CappedStaff == nil {
		return nil, fmt.Errorf("capped staff creator required when hard cap is enabled")
	}
	return &service{
		profiles:    params.Profiles,
		staff:       params.Staff,
		cappedStaff: params.CappedStaff,
		provisioner: params.Provisioner,
		logg:        params.Logger,
		cfg:         params.Config,
	}, nil
}

// Enroll staffs a provider onto the shop without exceeding the owner's
// license allotment and without duplicating roster entries. Mutating steps
// register compensating actions; any later failure unwinds them in reverse
// before the error surfaces. The license counter update is best-effort.
func (s *service) Enroll(ctx context.Context, input EnrollInput) (*EnrollResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	owner, err := s.profiles.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load owner profile")
	}

	if owner.SubscriptionStatus != enums.SubscriptionStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "subscription is not active")
	}

	count, err := s.staff.CountActive(ctx, input.ShopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active staff")
	}
	if count >= int64(owner.MaxLicenses) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("License limit reached (%d)", owner.MaxLicenses))
	}

	sg := &saga{}

	userID, tempPassword, isNewUser, err := s.resolveIdentity(ctx, sg, input, email)
	if err != nil {
		return nil, s.failWith(ctx, sg, err)
	}

	if err := s.insertStaff(ctx, sg, owner, input.ShopID, userID); err != nil {
		return nil, s.failWith(ctx, sg, err)
	}

	// Best-effort counter refresh: a failure here leaves the roster intact.
	if err := s.profiles.IncrementLicenseCount(ctx, input.OwnerID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("license count increment failed for owner %s: %v", input.OwnerID, err))
	}

	result := &EnrollResult{
		UserID:    userID,
		IsNewUser: isNewUser,
		Message:   "Provider enrolled",
	}
	if isNewUser {
		result.GeneratedPassword = &tempPassword
		result.Message = "Provider account created and enrolled"
	}
	return result, nil
}

// resolveIdentity reuses an existing account when the email is known,
// rejecting duplicates on the same roster, and provisions a new identity
// otherwise.
func (s *service) resolveIdentity(ctx context.Context, sg *saga, input EnrollInput, email string) (uuid.UUID, string, bool, error) {
	existing, err := s.profiles.FindByEmail(ctx, email)
	if err == nil {
		already, err := s.staff.Exists(ctx, input.ShopID, existing.ID)
		if err != nil {
			return uuid.Nil, "", false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check staff membership")
		}
		if already {
			return uuid.Nil, "", false, pkgerrors.New(pkgerrors.CodeConflict, "user is already staff at this shop")
		}
		return existing.ID, "", false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, "", false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account by email")
	}

	provisioned, err := s.provisioner.Provision(ctx, accounts.ProvisionInput{
		Email: email,
		Name:  input.Name,
		Phone: input.Phone,
	})
	if err != nil {
		return uuid.Nil, "", false, err
	}

	newUserID := provisioned.UserID
	sg.register("provision account", func(ctx context.Context) error {
		return s.provisioner.Remove(ctx, newUserID)
	})

	return provisioned.UserID, provisioned.TempPassword, true, nil
}

func (s *service) insertStaff(ctx context.Context, sg *saga, owner *models.Profile, shopID, userID uuid.UUID) error {
	var entry *models.ShopStaff
	var err error

	if s.cfg.HardCap {
		entry, err = s.cappedStaff.CreateUnderCap(ctx, owner.ID, shopID, userID, enums.StaffRoleProvider)
	} else {
		entry, err = s.staff.Create(ctx, shopID, userID, enums.StaffRoleProvider)
		if err != nil {
			err = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create staff entry")
		}
	}
	if err != nil {
		return err
	}

	entryID := entry.ID
	sg.register("insert staff entry", func(ctx context.Context) error {
		return s.staff.Delete(ctx, entryID)
	})
	return nil
}

// failWith unwinds the saga and returns the step error. Compensation
// failures are logged and attached to the cause chain.
func (s *service) failWith(ctx context.Context, sg *saga, stepErr error) error {
	if compErr := sg.compensate(ctx, s.logg); compErr != nil {
		if typed := pkgerrors.As(stepErr); typed != nil {
			return pkgerrors.Wrap(typed.Code(), multierr.Append(stepErr, compErr), typed.Message())
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, multierr.Append(stepErr, compErr), "enrollment failed")
	}
	return stepErr
}
