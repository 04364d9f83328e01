package repo

import (
	"context"

	"github.com/shopline-platform/auth-service/internal/auth/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	// CreateUser persists u and returns its id. Fails with ErrAlreadyExists
	// when the email is taken; uniqueness is enforced by the store, not by a
	// prior lookup.
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
}
