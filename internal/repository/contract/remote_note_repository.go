package contract

import (
	"context"

	"swipenotes/internal/entity"
	"swipenotes/internal/repository/specification"
)

// RemoteNoteRepository is the adapter over the server-side notes table. The
// caller owns the entity↔row mapping; only id/user scoping happens here.
type RemoteNoteRepository interface {
	// Upsert inserts the note row or replaces an existing row with the
	// same id. updated_at is touched by the store on replace.
	Upsert(ctx context.Context, note *entity.Note, userId string) error
	// FindByIDAndUser returns (nil, nil) when no row matches.
	FindByIDAndUser(ctx context.Context, id, userId string) (*entity.Note, error)
	// ListByUser returns all rows for the user, newest created first.
	ListByUser(ctx context.Context, userId string) ([]*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserIdUnscoped(ctx context.Context, userId string) error
}
