package builder

import (
	"testing"
	"time"

	"course-checkout/internal/domain/user"

	"github.com/stretchr/testify/require"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Role         string
	Contact      user.Contact
	Now          time.Time
}

func NewUserBuilder() *UserBuilder {
	b := DefaultBuyer()
	return &UserBuilder{
		Email:        b.Email,
		PasswordHash: "hashed_password",
		Role:         "customer",
		Contact: user.Contact{
			FirstName:  b.FirstName,
			LastName:   b.LastName,
			Street:     b.Street,
			PostalCode: b.PostalCode,
			City:       b.City,
			Country:    b.Country,
		},
		Now: BaseTime,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, u.PasswordHash, role, u.Contact, u.Now), nil
}

func (u *UserBuilder) MustBuild(t testing.TB) *user.User {
	t.Helper()
	usr, err := u.BuildDomain()
	require.NoError(t, err)
	return usr
}
