package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/domain/events"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
	"github.com/iota-uz/relations/pkg/eventbus"
	"github.com/iota-uz/relations/pkg/sid"
)

type OrganizationService struct {
	repo      organization.Repository
	publisher eventbus.EventBus
	maxDepth  int
}

func NewOrganizationService(repo organization.Repository, publisher eventbus.EventBus, maxDepth int) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		publisher: publisher,
		maxDepth:  maxDepth,
	}
}

func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, persistence.ErrOrganizationNotFound) {
		return organization.Organization{}, errNotFound("organization")
	}
	if err != nil {
		return organization.Organization{}, mapPgError(err)
	}
	return o, nil
}

func (s *OrganizationService) GetPaginated(ctx context.Context, params *organization.FindParams) ([]organization.Organization, int64, error) {
	items, total, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	return items, total, nil
}

func (s *OrganizationService) Create(ctx context.Context, dto *organization.CreateDTO) (organization.Organization, error) {
	if fields, ok := dto.Ok(); !ok {
		return organization.Organization{}, errValidationFields(fields)
	}

	id := sid.New()
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (organization.Organization, error) {
		if dto.ParentID != nil {
			// New node cannot close a cycle, but the chain above the
			// parent still has to exist and fit under the depth cap.
			if err := validateEdge(txCtx, id, *dto.ParentID, s.maxDepth, s.repo.LockParentOf); err != nil {
				return organization.Organization{}, err
			}
		}
		return s.repo.Create(txCtx, dto.ToEntity(id))
	})
	if err != nil {
		return organization.Organization{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("created", events.EntityOrganization, created.ID()))
	return created, nil
}

func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, dto *organization.UpdateDTO) (organization.Organization, error) {
	if fields, ok := dto.Ok(); !ok {
		return organization.Organization{}, errValidationFields(fields)
	}

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (organization.Organization, error) {
		// Lock the row first so a concurrent reparent of this node
		// serializes with ours.
		if _, exists, err := s.repo.LockParentOf(txCtx, id); err != nil {
			return organization.Organization{}, err
		} else if !exists {
			return organization.Organization{}, errNotFound("organization")
		}

		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return organization.Organization{}, err
		}

		if dto.ParentID != nil && *dto.ParentID != nil {
			if err := validateEdge(txCtx, id, **dto.ParentID, s.maxDepth, s.repo.LockParentOf); err != nil {
				return organization.Organization{}, err
			}
		}
		return s.repo.Update(txCtx, dto.Apply(current))
	})
	if errors.Is(err, persistence.ErrOrganizationNotFound) {
		return organization.Organization{}, errNotFound("organization")
	}
	if err != nil {
		return organization.Organization{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("updated", events.EntityOrganization, updated.ID()))
	return updated, nil
}

// Delete removes the organization and its whole subtree in one
// transaction. Rows are locked root-first before any delete so a
// concurrent reparent cannot move a descendant out from under the
// cascade; association rows go with their organization via the store's
// cascade action.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	var removed []uuid.UUID
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		subtree, err := s.collectSubtree(txCtx, id, true)
		if err != nil {
			return err
		}
		removed = append(removed, id)
		for _, o := range subtree {
			removed = append(removed, o.ID())
		}
		// Leaf-first, so no child row ever outlives a deleted parent
		// mid-transaction.
		for i := len(removed) - 1; i >= 0; i-- {
			if err := s.repo.Delete(txCtx, removed[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, persistence.ErrOrganizationNotFound) {
		return errNotFound("organization")
	}
	if err != nil {
		return mapPgError(err)
	}

	for _, rid := range removed {
		s.publisher.Publish(events.New("deleted", events.EntityOrganization, rid))
	}
	return nil
}

// Subtree returns every descendant of id in root-first order. The node
// itself is not part of its own subtree.
func (s *OrganizationService) Subtree(ctx context.Context, id uuid.UUID) ([]organization.Organization, error) {
	out, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]organization.Organization, error) {
		return s.collectSubtree(txCtx, id, false)
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// collectSubtree walks the parent index breadth-first from id and
// returns the descendants root-first. With lock set, every visited row
// is locked via LockParentOf before its children are expanded.
func (s *OrganizationService) collectSubtree(ctx context.Context, id uuid.UUID, lock bool) ([]organization.Organization, error) {
	if lock {
		if _, exists, err := s.repo.LockParentOf(ctx, id); err != nil {
			return nil, err
		} else if !exists {
			return nil, errNotFound("organization")
		}
	} else {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errNotFound("organization")
		}
	}

	var out []organization.Organization
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.repo.ChildrenOf(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if lock {
				if _, _, err := s.repo.LockParentOf(ctx, child.ID()); err != nil {
					return nil, err
				}
			}
			out = append(out, child)
			queue = append(queue, child.ID())
		}
	}
	return out, nil
}
