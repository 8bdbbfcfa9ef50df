package organization

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
	GetPaginated(ctx context.Context, params *FindParams) ([]Organization, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, o Organization) (Organization, error)
	Update(ctx context.Context, o Organization) (Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ChildrenOf returns the direct children of id ordered by creation.
	ChildrenOf(ctx context.Context, id uuid.UUID) ([]Organization, error)

	// LockParentOf locks the organization row and returns its current
	// parent reference. Used by the hierarchy walk so concurrent
	// reparenting serializes on the walked rows.
	LockParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error)
}
