package converter

import (
	"course-checkout/internal/domain/booking"
	"course-checkout/internal/domain/entitlement"
	"course-checkout/internal/domain/pricing"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
)

func OfferingFromRows(row sqlc.PracticalOffering, dates []sqlc.OfferingDate) (*booking.Offering, error) {
	seat, err := pricing.NewMoney(row.SeatPriceNetCents)
	if err != nil {
		return nil, err
	}
	card, err := pricing.NewMoney(row.PlasticCardNetCents)
	if err != nil {
		return nil, err
	}

	slots := make([]booking.DateSlot, 0, len(dates))
	for _, d := range dates {
		slots = append(slots, booking.DateSlot{
			ID:             d.ID,
			StartsAt:       pgconv.TimeFromPgtype(d.StartsAt),
			EndsAt:         pgconv.TimeFromPgtype(d.EndsAt),
			AvailableSpots: int(d.AvailableSpots),
		})
	}

	return &booking.Offering{
		ID:       row.ID,
		CourseID: row.CourseID,
		Title:    row.Title,
		Location: booking.Location{
			Name:   row.LocationName,
			Street: row.Street,
			City:   row.City,
		},
		SeatPrice:      seat,
		PlasticCardNet: card,
		Dates:          slots,
	}, nil
}

func ParticipantToInsertParams(p *booking.Participant) sqlc.InsertParticipantParams {
	return sqlc.InsertParticipantParams{
		ID:              p.ID(),
		OrderID:         p.OrderID(),
		OrderNumber:     p.OrderNumber(),
		UserID:          p.UserID(),
		OfferingID:      p.OfferingID(),
		DateID:          p.DateID(),
		WithPlasticCard: p.WithPlasticCard(),
		Status:          string(p.Status()),
		CreatedAt:       pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func ParticipantFromRow(row sqlc.Participant) *booking.Participant {
	return booking.ReconstructParticipant(
		row.ID,
		row.OrderID,
		row.OrderNumber,
		row.UserID,
		row.OfferingID,
		row.DateID,
		row.WithPlasticCard,
		booking.ParticipantStatus(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
	)
}

func EntitlementToUpsertParams(e *entitlement.Entitlement) sqlc.UpsertEntitlementParams {
	return sqlc.UpsertEntitlementParams{
		ID:           e.ID(),
		UserID:       e.UserID(),
		CourseID:     e.CourseID(),
		OrderNumber:  e.OrderNumber(),
		PurchaseDate: pgconv.TimeToPgtype(e.PurchaseDate()),
		ExpiresAt:    pgconv.TimeToPgtype(e.ExpiresAt()),
		Now:          pgconv.TimeToPgtype(e.PurchaseDate()),
	}
}

func EntitlementFromRow(row sqlc.Entitlement) *entitlement.Entitlement {
	return entitlement.Reconstruct(
		row.ID,
		row.UserID,
		row.CourseID,
		row.OrderNumber,
		pgconv.TimeFromPgtype(row.PurchaseDate),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		entitlement.Status(row.Status),
	)
}
