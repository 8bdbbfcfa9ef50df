package association

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Association, error)
	GetByPair(ctx context.Context, organizationID, contactID uuid.UUID) (Association, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, activeOnly bool) ([]Association, error)
	Create(ctx context.Context, a Association) (Association, error)
	Update(ctx context.Context, a Association) (Association, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// LockByID reads an association row FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (Association, error)

	// LockReportsToOf locks the association row and returns its current
	// superior, serializing the reporting-chain walk against concurrent
	// edge writers.
	LockReportsToOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error)

	// LockByOrganization locks every association row of the organization,
	// serializing read-modify-write cycles such as primary reassignment.
	LockByOrganization(ctx context.Context, organizationID uuid.UUID) ([]Association, error)
}
