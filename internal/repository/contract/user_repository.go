package contract

import (
	"context"
	"errors"

	"notestack-be/internal/entity"
	"notestack-be/internal/repository/specification"
)

// ErrEmailTaken is returned by Create when another account holds the email.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
