package unitofwork

import (
	"context"

	"swipenotes/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RemoteNoteRepository() contract.RemoteNoteRepository
}
