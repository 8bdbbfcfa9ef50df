package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/association"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
)

// QueryService is the read-only facade over the relationship graph. All
// methods run in a single transaction for a consistent snapshot but take
// no row locks.
type QueryService struct {
	orgs     organization.Repository
	assocs   association.Repository
	maxDepth int
}

func NewQueryService(orgs organization.Repository, assocs association.Repository, maxDepth int) *QueryService {
	return &QueryService{orgs: orgs, assocs: assocs, maxDepth: maxDepth}
}

// Subtree returns every descendant of the organization in root-first
// order. The organization itself is not included; a leaf yields an empty
// slice.
func (s *QueryService) Subtree(ctx context.Context, organizationID uuid.UUID) ([]organization.Organization, error) {
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]organization.Organization, error) {
		exists, err := s.orgs.Exists(txCtx, organizationID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errNotFound("organization")
		}

		out := make([]organization.Organization, 0, 8)
		queue := []uuid.UUID{organizationID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			children, err := s.orgs.ChildrenOf(txCtx, current)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				out = append(out, child)
				queue = append(queue, child.ID())
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// ReportingChain walks the reports_to edges upward from the association
// and returns the chain nearest-first, starting with the association
// itself. A root association yields a single-element chain. The walk is
// capped at the hierarchy depth limit as a defense against corrupt data.
func (s *QueryService) ReportingChain(ctx context.Context, associationID uuid.UUID) ([]association.Association, error) {
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]association.Association, error) {
		chain := make([]association.Association, 0, 4)
		currentID := associationID
		for i := 0; i < s.maxDepth; i++ {
			a, err := s.assocs.GetByID(txCtx, currentID)
			if errors.Is(err, persistence.ErrAssociationNotFound) {
				if len(chain) == 0 {
					return nil, errNotFound("association")
				}
				// Broken edge mid-chain; stop at what resolved.
				return chain, nil
			}
			if err != nil {
				return nil, err
			}
			chain = append(chain, a)
			if a.ReportsToID() == nil {
				return chain, nil
			}
			currentID = *a.ReportsToID()
		}
		return chain, nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// ActiveAssociations lists the organization's is_active rows.
func (s *QueryService) ActiveAssociations(ctx context.Context, organizationID uuid.UUID) ([]association.Association, error) {
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]association.Association, error) {
		exists, err := s.orgs.Exists(txCtx, organizationID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errNotFound("organization")
		}
		return s.assocs.ListByOrganization(txCtx, organizationID, true)
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}
