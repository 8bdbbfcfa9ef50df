package contact

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Contact, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contact, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	Update(ctx context.Context, c Contact) (Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
