package party

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Q      string
	Kind   *Kind
	Limit  int
	Offset int
}

// Repository has no Delete: parties deactivate instead, because historical
// associations may still reference them.
type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Party, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Party, error)
	Create(ctx context.Context, p Party) (Party, error)
	Update(ctx context.Context, p Party) (Party, error)
}
