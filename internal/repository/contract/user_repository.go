package contract

import (
	"context"

	"swipenotes/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByID returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
