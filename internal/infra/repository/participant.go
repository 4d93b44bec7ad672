package repository

import (
	"context"
	"time"

	"course-checkout/internal/domain/booking"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
	"course-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type ParticipantQueries interface {
	InsertParticipant(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertParticipantParams) (int64, error)
	GetParticipantByOrderID(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) (sqlc.Participant, error)
	GetParticipantByOrderNumber(ctx context.Context, db sqlc.DBTX, orderNumber string) (sqlc.Participant, error)
	CancelParticipant(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelParticipantParams) (int64, error)
	ListParticipantsStartingBetween(ctx context.Context, db sqlc.DBTX, arg sqlc.ListParticipantsStartingBetweenParams) ([]sqlc.ListParticipantsStartingBetweenRow, error)
}

type ParticipantRepository struct {
	queries ParticipantQueries
}

func NewParticipantRepository(queries ParticipantQueries) *ParticipantRepository {
	return &ParticipantRepository{queries: queries}
}

func (r *ParticipantRepository) Insert(ctx context.Context, db sqlc.DBTX, p *booking.Participant) (bool, error) {
	n, err := r.queries.InsertParticipant(ctx, db, converter.ParticipantToInsertParams(p))
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return false, infra.WrapRepoErr("participant references unknown rows", err, infra.KindForeignKeyViolated)
		}
		return false, infra.WrapRepoErr("failed to insert participant", err)
	}
	return n == 1, nil
}

func (r *ParticipantRepository) FindByOrderID(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) (*booking.Participant, error) {
	row, err := r.queries.GetParticipantByOrderID(ctx, db, orderID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("participant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find participant by order", err)
	}
	return converter.ParticipantFromRow(row), nil
}

func (r *ParticipantRepository) FindByOrderNumber(ctx context.Context, db sqlc.DBTX, orderNumber string) (*booking.Participant, error) {
	row, err := r.queries.GetParticipantByOrderNumber(ctx, db, orderNumber)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("participant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find participant by order number", err)
	}
	return converter.ParticipantFromRow(row), nil
}

func (r *ParticipantRepository) SaveCancellation(ctx context.Context, db sqlc.DBTX, p *booking.Participant) (bool, error) {
	n, err := r.queries.CancelParticipant(ctx, db, sqlc.CancelParticipantParams{
		ID:          p.ID(),
		CancelledAt: pgconv.TimePtrToPgtype(p.CancelledAt()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel participant", err)
	}
	return n == 1, nil
}

func (r *ParticipantRepository) ListStartingBetween(ctx context.Context, db sqlc.DBTX, from, to time.Time) ([]shared.PracticalReminder, error) {
	rows, err := r.queries.ListParticipantsStartingBetween(ctx, db, sqlc.ListParticipantsStartingBetweenParams{
		WindowStart: pgconv.TimeToPgtype(from),
		WindowEnd:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming participants", err)
	}
	out := make([]shared.PracticalReminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, shared.PracticalReminder{
			OrderNumber:   row.OrderNumber,
			Email:         row.Email,
			FirstName:     row.FirstName,
			OfferingTitle: row.OfferingTitle,
			LocationName:  row.LocationName,
			Street:        row.Street,
			City:          row.City,
			StartsAt:      pgconv.TimeFromPgtype(row.StartsAt),
		})
	}
	return out, nil
}
