package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/association"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/contact"
	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/modules/relations/domain/events"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
	"github.com/iota-uz/relations/pkg/eventbus"
	"github.com/iota-uz/relations/pkg/sid"
)

type AssociationService struct {
	repo      association.Repository
	orgs      organization.Repository
	contacts  contact.Repository
	publisher eventbus.EventBus
	maxDepth  int
}

func NewAssociationService(
	repo association.Repository,
	orgs organization.Repository,
	contacts contact.Repository,
	publisher eventbus.EventBus,
	maxDepth int,
) *AssociationService {
	return &AssociationService{
		repo:      repo,
		orgs:      orgs,
		contacts:  contacts,
		publisher: publisher,
		maxDepth:  maxDepth,
	}
}

func (s *AssociationService) GetByID(ctx context.Context, id uuid.UUID) (association.Association, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, persistence.ErrAssociationNotFound) {
		return association.Association{}, errNotFound("association")
	}
	if err != nil {
		return association.Association{}, mapPgError(err)
	}
	return a, nil
}

// Link attaches a contact to an organization. The (organization, contact)
// pair is unique; linking an already-linked pair fails with DUPLICATE and
// leaves the existing row untouched.
func (s *AssociationService) Link(ctx context.Context, organizationID, contactID uuid.UUID, dto *association.LinkDTO) (association.Association, error) {
	if fields, ok := dto.Ok(); !ok {
		return association.Association{}, errValidationFields(fields)
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (association.Association, error) {
		if exists, err := s.orgs.Exists(txCtx, organizationID); err != nil {
			return association.Association{}, err
		} else if !exists {
			return association.Association{}, errNotFound("organization")
		}
		if exists, err := s.contacts.Exists(txCtx, contactID); err != nil {
			return association.Association{}, err
		} else if !exists {
			return association.Association{}, errNotFound("contact")
		}

		// Pre-check gives a clean error; the unique constraint on the
		// pair is the backstop against a concurrent insert.
		if _, err := s.repo.GetByPair(txCtx, organizationID, contactID); err == nil {
			return association.Association{}, errDuplicate("contact is already linked to this organization")
		} else if !errors.Is(err, persistence.ErrAssociationNotFound) {
			return association.Association{}, err
		}

		if dto.IsPrimary {
			if err := s.clearPrimaries(txCtx, organizationID, uuid.Nil); err != nil {
				return association.Association{}, err
			}
		}
		return s.repo.Create(txCtx, dto.ToEntity(sid.New(), organizationID, contactID))
	})
	if err != nil {
		return association.Association{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("linked", events.EntityAssociation, created.ID()))
	return created, nil
}

// SetReportsTo rewires the reporting edge. A nil target always clears the
// edge; a non-nil target must belong to the same organization and must
// not create a cycle. The validation walk and the write share one
// transaction and lock every visited row.
func (s *AssociationService) SetReportsTo(ctx context.Context, id uuid.UUID, targetID *uuid.UUID) (association.Association, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (association.Association, error) {
		current, err := s.repo.LockByID(txCtx, id)
		if errors.Is(err, persistence.ErrAssociationNotFound) {
			return association.Association{}, errNotFound("association")
		}
		if err != nil {
			return association.Association{}, err
		}

		if targetID != nil {
			target, err := s.repo.LockByID(txCtx, *targetID)
			if errors.Is(err, persistence.ErrAssociationNotFound) {
				return association.Association{}, errNotFound("reports_to target")
			}
			if err != nil {
				return association.Association{}, err
			}
			if target.OrganizationID() != current.OrganizationID() {
				return association.Association{}, errValidation("reports_to target must belong to the same organization")
			}
			if err := validateEdge(txCtx, id, *targetID, s.maxDepth, s.repo.LockReportsToOf); err != nil {
				return association.Association{}, err
			}
		}
		return s.repo.Update(txCtx, current.WithReportsTo(targetID))
	})
	if err != nil {
		return association.Association{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("reports_to_set", events.EntityAssociation, updated.ID()))
	return updated, nil
}

// SetPrimary makes id the organization's single primary association. All
// the org's rows are locked up front, so two concurrent calls serialize
// and the later one wins.
func (s *AssociationService) SetPrimary(ctx context.Context, id uuid.UUID) (association.Association, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (association.Association, error) {
		current, err := s.repo.LockByID(txCtx, id)
		if errors.Is(err, persistence.ErrAssociationNotFound) {
			return association.Association{}, errNotFound("association")
		}
		if err != nil {
			return association.Association{}, err
		}

		if err := s.clearPrimaries(txCtx, current.OrganizationID(), id); err != nil {
			return association.Association{}, err
		}
		if current.IsPrimary() {
			return current, nil
		}
		return s.repo.Update(txCtx, current.WithPrimary(true))
	})
	if err != nil {
		return association.Association{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("primary_set", events.EntityAssociation, updated.ID()))
	return updated, nil
}

// Unlink deletes the association. Rows that reported to it have their
// reports_to cleared by the store's SET NULL action inside the same
// transaction, so dependents survive with a dangling-free reference.
func (s *AssociationService) Unlink(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if errors.Is(err, persistence.ErrAssociationNotFound) {
		return errNotFound("association")
	}
	if err != nil {
		return mapPgError(err)
	}

	s.publisher.Publish(events.New("unlinked", events.EntityAssociation, id))
	return nil
}

// Update patches role metadata in place. A role change mutates the
// existing row; it never creates a second association for the pair.
func (s *AssociationService) Update(ctx context.Context, id uuid.UUID, dto *association.UpdateDTO) (association.Association, error) {
	if fields, ok := dto.Ok(); !ok {
		return association.Association{}, errValidationFields(fields)
	}

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (association.Association, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return association.Association{}, err
		}
		return s.repo.Update(txCtx, dto.Apply(current))
	})
	if errors.Is(err, persistence.ErrAssociationNotFound) {
		return association.Association{}, errNotFound("association")
	}
	if err != nil {
		return association.Association{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("updated", events.EntityAssociation, updated.ID()))
	return updated, nil
}

func (s *AssociationService) Deactivate(ctx context.Context, id uuid.UUID) (association.Association, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (association.Association, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return association.Association{}, err
		}
		return s.repo.Update(txCtx, current.Deactivate())
	})
	if errors.Is(err, persistence.ErrAssociationNotFound) {
		return association.Association{}, errNotFound("association")
	}
	if err != nil {
		return association.Association{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("deactivated", events.EntityAssociation, updated.ID()))
	return updated, nil
}

// clearPrimaries locks every association row of the organization and
// drops the primary flag from all rows except keep.
func (s *AssociationService) clearPrimaries(ctx context.Context, organizationID, keep uuid.UUID) error {
	rows, err := s.repo.LockByOrganization(ctx, organizationID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.ID() == keep || !row.IsPrimary() {
			continue
		}
		if _, err := s.repo.Update(ctx, row.WithPrimary(false)); err != nil {
			return err
		}
	}
	return nil
}
