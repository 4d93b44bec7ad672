package repository

import (
	"context"
	"time"

	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EntitlementQueries interface {
	UpsertEntitlement(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertEntitlementParams) (sqlc.UpsertEntitlementRow, error)
	GetEntitlement(ctx context.Context, db sqlc.DBTX, arg sqlc.GetEntitlementParams) (sqlc.Entitlement, error)
	ExpireEntitlements(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.ExpireEntitlementsRow, error)
	ListEntitlementsExpiringBetween(ctx context.Context, db sqlc.DBTX, arg sqlc.ListEntitlementsExpiringBetweenParams) ([]sqlc.ListEntitlementsExpiringBetweenRow, error)
}

type EntitlementRepository struct {
	queries EntitlementQueries
}

func NewEntitlementRepository(queries EntitlementQueries) *EntitlementRepository {
	return &EntitlementRepository{queries: queries}
}

func (r *EntitlementRepository) Upsert(ctx context.Context, db sqlc.DBTX, e *entitlement.Entitlement) (bool, error) {
	row, err := r.queries.UpsertEntitlement(ctx, db, converter.EntitlementToUpsertParams(e))
	if err != nil {
		return false, infra.WrapRepoErr("failed to upsert entitlement", err)
	}
	return row.Inserted, nil
}

func (r *EntitlementRepository) Find(ctx context.Context, db sqlc.DBTX, userID, courseID uuid.UUID) (*entitlement.Entitlement, error) {
	row, err := r.queries.GetEntitlement(ctx, db, sqlc.GetEntitlementParams{UserID: userID, CourseID: courseID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("entitlement not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find entitlement", err)
	}
	return converter.EntitlementFromRow(row), nil
}

func (r *EntitlementRepository) ExpireDue(ctx context.Context, db sqlc.DBTX, now time.Time) ([]shared.ExpiredEntitlement, error) {
	rows, err := r.queries.ExpireEntitlements(ctx, db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire entitlements", err)
	}
	out := make([]shared.ExpiredEntitlement, 0, len(rows))
	for _, row := range rows {
		out = append(out, shared.ExpiredEntitlement{
			UserID:      row.UserID,
			CourseID:    row.CourseID,
			OrderNumber: row.OrderNumber,
		})
	}
	return out, nil
}

func (r *EntitlementRepository) ListExpiringBetween(ctx context.Context, db sqlc.DBTX, from, to time.Time) ([]shared.ExpiryReminder, error) {
	rows, err := r.queries.ListEntitlementsExpiringBetween(ctx, db, sqlc.ListEntitlementsExpiringBetweenParams{
		WindowStart: pgconv.TimeToPgtype(from),
		WindowEnd:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expiring entitlements", err)
	}
	out := make([]shared.ExpiryReminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, shared.ExpiryReminder{
			UserID:      row.UserID,
			Email:       row.Email,
			FirstName:   row.FirstName,
			CourseID:    row.CourseID,
			CourseTitle: row.CourseTitle,
			OrderNumber: row.OrderNumber,
			ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
		})
	}
	return out, nil
}
