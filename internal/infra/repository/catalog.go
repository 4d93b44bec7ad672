package repository

import (
	"context"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/pricing"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	GetCourseByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Course, error)
	GetOfferingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PracticalOffering, error)
	ListOfferingDates(ctx context.Context, db sqlc.DBTX, offeringID uuid.UUID) ([]sqlc.OfferingDate, error)
}

// CatalogRepository reads courses and practical offerings. Inactive rows
// are returned as-is; callers decide whether they are purchasable.
type CatalogRepository struct {
	queries         CatalogQueries
	plasticCardName string
}

func NewCatalogRepository(queries CatalogQueries, plasticCardName string) *CatalogRepository {
	return &CatalogRepository{queries: queries, plasticCardName: plasticCardName}
}

func (r *CatalogRepository) CourseByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*shared.CourseSnapshot, error) {
	row, err := r.queries.GetCourseByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("course not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find course", err)
	}

	price, err := pricing.NewMoney(row.PriceNetCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored course price is invalid", err, infra.KindCorruptRow)
	}

	return &shared.CourseSnapshot{
		ID:       row.ID,
		Slug:     row.Slug,
		Title:    row.Title,
		NetPrice: price,
		IsActive: row.IsActive,
	}, nil
}

func (r *CatalogRepository) OfferingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*booking.Offering, error) {
	row, err := r.queries.GetOfferingByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offering not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offering", err)
	}
	if !row.IsActive {
		return nil, infra.WrapRepoErr("offering is not active", nil, infra.KindNotFound)
	}

	dates, err := r.queries.ListOfferingDates(ctx, db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offering dates", err)
	}

	offering, err := converter.OfferingFromRows(row, dates)
	if err != nil {
		return nil, infra.WrapRepoErr("stored offering is invalid", err, infra.KindCorruptRow)
	}
	offering.PlasticCardName = r.plasticCardName
	return offering, nil
}
