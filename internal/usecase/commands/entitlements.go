package commands

import (
	"context"
	"log/slog"
	"time"

	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/domain/order"
	"course-checkout/internal/pkg/errs"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// EntitlementManager owns the (user, course) access rows.
type EntitlementManager struct {
	logger *slog.Logger
}

func NewEntitlementManager(logger *slog.Logger) *EntitlementManager {
	return &EntitlementManager{logger: logger}
}

// Assign upserts access for one course. A repurchase overwrites the existing
// row's window, order number and status instead of adding a second row.
func (m *EntitlementManager) Assign(
	ctx context.Context,
	tx shared.Tx,
	userID, courseID uuid.UUID,
	orderNumber string,
	purchaseDate, expiresAt time.Time,
) error {
	e, err := entitlement.NewEntitlement(userID, courseID, orderNumber, purchaseDate, expiresAt)
	if err != nil {
		return errs.Wrapf(err, "entitlement for course %s", courseID)
	}
	created, err := tx.Entitlements().Upsert(ctx, tx.DB(), e)
	if err != nil {
		return errs.Wrapf(err, "upsert entitlement for course %s", courseID)
	}
	m.logger.Info("entitlement assigned",
		"order_number", orderNumber,
		"user_id", userID,
		"course_id", courseID,
		"renewed", !created,
		"expires_at", expiresAt)
	return nil
}

// GrantOnlineAccess assigns every course of a paid online order.
func (m *EntitlementManager) GrantOnlineAccess(ctx context.Context, tx shared.Tx, o *order.Order) error {
	if o.PaidAt() == nil || o.ExpiresAt() == nil {
		return errs.Newf("order %s has no paid window", o.Number())
	}
	for _, courseID := range o.CourseIDs() {
		if err := m.Assign(ctx, tx, o.UserID(), courseID, o.Number(), *o.PaidAt(), *o.ExpiresAt()); err != nil {
			return err
		}
	}
	return nil
}
