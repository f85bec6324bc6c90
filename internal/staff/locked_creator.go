package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/happyinline/inline-backend/internal/profiles"
	"github.com/happyinline/inline-backend/pkg/db"
	"github.com/happyinline/inline-backend/pkg/db/models"
	"github.com/happyinline/inline-backend/pkg/enums"
	pkgerrors "github.com/happyinline/inline-backend/pkg/errors"
)

// LockedCreator inserts roster entries under a strict license cap. The count
// check and the insert run in one transaction holding a FOR UPDATE lock on
// the owner profile row, so concurrent enrollments serialize on the owner.
type LockedCreator struct {
	db *db.Client
}

// NewLockedCreator binds the creator to the shared DB client.
func NewLockedCreator(client *db.Client) (*LockedCreator, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &LockedCreator{db: client}, nil
}

// CreateUnderCap re-checks the license cap while holding the owner row lock
// and inserts the roster entry in the same transaction.
func (l *LockedCreator) CreateUnderCap(ctx context.Context, ownerID, shopID, userID uuid.UUID, role enums.StaffRole) (*models.ShopStaff, error) {
	var entry *models.ShopStaff

	err := l.db.WithTx(ctx, func(tx *gorm.DB) error {
		owner, err := profiles.NewRepository(tx).FindByIDForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "owner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock owner profile")
		}

		txStaff := NewRepository(tx)
		count, err := txStaff.CountActive(ctx, shopID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active staff")
		}
		if count >= int64(owner.MaxLicenses) {
			return pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("License limit reached (%d)", owner.MaxLicenses))
		}

		entry, err = txStaff.Create(ctx, shopID, userID, role)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create staff entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
