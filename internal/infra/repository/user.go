package repository

import (
	"context"

	"course-checkout/internal/domain/user"
	"course-checkout/internal/infra"
	"course-checkout/internal/infra/repository/converter"
	sqlc "course-checkout/internal/infra/sqlc/generated"
	"course-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.User, error)
	GetUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.User, error)
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) error
	UpdateUserContact(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserContactParams) error
}

type UserRepository struct {
	queries UserQueries
}

func NewUserRepository(queries UserQueries) *UserRepository {
	return &UserRepository{queries: queries}
}

func (r *UserRepository) FindByEmail(ctx context.Context, db sqlc.DBTX, email user.Email) (*user.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, db, email.Value())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return toUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.GetUserByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUser(row)
}

func (r *UserRepository) Create(ctx context.Context, db sqlc.DBTX, u *user.User) error {
	if err := r.queries.CreateUser(ctx, db, converter.UserToCreateParams(u)); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("user email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateContact(ctx context.Context, db sqlc.DBTX, u *user.User) error {
	if err := r.queries.UpdateUserContact(ctx, db, converter.UserToContactParams(u)); err != nil {
		return infra.WrapRepoErr("failed to update user contact", err)
	}
	return nil
}

func toUser(row sqlc.User) (*user.User, error) {
	u, err := converter.UserFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user is invalid", err, infra.KindCorruptRow)
	}
	return u, nil
}
