package converter

import (
	"course-checkout/internal/domain/user"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"
)

func UserToCreateParams(u *user.User) sqlc.CreateUserParams {
	c := u.Contact()
	return sqlc.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        pgconv.StringToPgtype(c.Phone),
		Company:      pgconv.StringToPgtype(c.Company),
		Street:       pgconv.StringToPgtype(c.Street),
		PostalCode:   pgconv.StringToPgtype(c.PostalCode),
		City:         pgconv.StringToPgtype(c.City),
		Country:      pgconv.StringToPgtype(c.Country),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}

func UserToContactParams(u *user.User) sqlc.UpdateUserContactParams {
	c := u.Contact()
	return sqlc.UpdateUserContactParams{
		ID:         u.ID(),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      pgconv.StringToPgtype(c.Phone),
		Company:    pgconv.StringToPgtype(c.Company),
		Street:     pgconv.StringToPgtype(c.Street),
		PostalCode: pgconv.StringToPgtype(c.PostalCode),
		City:       pgconv.StringToPgtype(c.City),
		Country:    pgconv.StringToPgtype(c.Country),
		UpdatedAt:  pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}

func UserFromRow(row sqlc.User) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, err
	}
	contact := user.Contact{
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Phone:      pgconv.StringFromPgtype(row.Phone),
		Company:    pgconv.StringFromPgtype(row.Company),
		Street:     pgconv.StringFromPgtype(row.Street),
		PostalCode: pgconv.StringFromPgtype(row.PostalCode),
		City:       pgconv.StringFromPgtype(row.City),
		Country:    pgconv.StringFromPgtype(row.Country),
	}
	return user.ReconstructUser(
		row.ID,
		email,
		row.PasswordHash,
		role,
		contact,
		row.IsActive,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
