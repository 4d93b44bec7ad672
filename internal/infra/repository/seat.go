package repository

import (
	"context"

	"course-checkout/internal/infra"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type SeatQueries interface {
	DecrementAvailableSpots(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementAvailableSpotsParams) (int64, error)
	IncrementAvailableSpots(ctx context.Context, db sqlc.DBTX, arg sqlc.IncrementAvailableSpotsParams) (int64, error)
	GetOfferingDate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetOfferingDateParams) (sqlc.OfferingDate, error)
}

// SeatRepository moves the available_spots counter with single guarded
// UPDATE statements, so concurrent bookings never push it below zero.
type SeatRepository struct {
	queries SeatQueries
}

func NewSeatRepository(queries SeatQueries) *SeatRepository {
	return &SeatRepository{queries: queries}
}

func (r *SeatRepository) Decrement(ctx context.Context, db sqlc.DBTX, offeringID, dateID uuid.UUID) (shared.SeatChange, error) {
	n, err := r.queries.DecrementAvailableSpots(ctx, db, sqlc.DecrementAvailableSpotsParams{ID: dateID, OfferingID: offeringID})
	if err != nil {
		return "", infra.WrapRepoErr("failed to decrement available spots", err)
	}
	if n == 1 {
		return shared.SeatChanged, nil
	}
	return r.explainNoop(ctx, db, offeringID, dateID)
}

func (r *SeatRepository) Increment(ctx context.Context, db sqlc.DBTX, offeringID, dateID uuid.UUID) (shared.SeatChange, error) {
	n, err := r.queries.IncrementAvailableSpots(ctx, db, sqlc.IncrementAvailableSpotsParams{ID: dateID, OfferingID: offeringID})
	if err != nil {
		return "", infra.WrapRepoErr("failed to increment available spots", err)
	}
	if n == 0 {
		return shared.SeatSlotMissing, nil
	}
	return shared.SeatChanged, nil
}

// An UPDATE that matched nothing is either a slot at zero or a slot that
// does not exist.
func (r *SeatRepository) explainNoop(ctx context.Context, db sqlc.DBTX, offeringID, dateID uuid.UUID) (shared.SeatChange, error) {
	_, err := r.queries.GetOfferingDate(ctx, db, sqlc.GetOfferingDateParams{ID: dateID, OfferingID: offeringID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return shared.SeatSlotMissing, nil
		}
		return "", infra.WrapRepoErr("failed to read offering date", err)
	}
	return shared.SeatAtFloor, nil
}
