package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
	"github.com/happyinline/inline-backend/pkg/logger"
	"github.com/happyinline/inline-backend/pkg/mailer"
	"github.com/happyinline/inline-backend/pkg/pagination"
)

// Service dispatches transactional booking email and reads the audit trail.
type Service interface {
	SendBookingConfirmation(ctx context.Context, input BookingEmailInput) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error)
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor,omitempty"`
}

type service struct {
	repo   Repository
	sender mailer.Sender
	logg   *logger.Logger
}

// NewService wires notification dependencies.
func NewService(repo Repository, sender mailer.Sender, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifications repository required")
	}
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail sender required")
	}
	return &service{repo: repo, sender: sender, logg: logg}, nil
}

// SendBookingConfirmation emails the customer and the shop contact, then
// records an audit row per delivered message. The customer copy is required;
// the shop copy is skipped when no owner address is present.
func (s *service) SendBookingConfirmation(ctx context.Context, input BookingEmailInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "userId is required")
	}
	if strings.TrimSpace(input.Customer.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if strings.TrimSpace(input.ShopName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopName is required")
	}
	if len(input.Services) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one service line is required")
	}

	subject := bookingSubject(input.ShopName)

	if err := s.deliver(ctx, input.UserID, input.Customer.Email, subject, bookingBody(input)); err != nil {
		return err
	}

	if owner := strings.TrimSpace(input.Owner.Email); owner != "" {
		if err := s.deliver(ctx, input.UserID, owner, subject, bookingShopBody(input)); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) deliver(ctx context.Context, userID uuid.UUID, recipient, subject, body string) error {
	err := s.sender.Send(ctx, mailer.Message{
		To:      recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send booking email")
	}

	now := time.Now().UTC()
	record := &models.Notification{
		UserID:    userID,
		Kind:      enums.NotificationKindBookingConfirmation,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		SentAt:    &now,
	}
	if err := s.repo.Create(ctx, record); err != nil && s.logg != nil {
		// The email is already out; a missing audit row is not a failure.
		s.logg.Warn(ctx, "failed to record notification: "+err.Error())
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	rows, next, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	return &ListResult{Items: rows, Cursor: next}, nil
}
