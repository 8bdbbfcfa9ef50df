package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/contact"
	"github.com/iota-uz/relations/modules/relations/domain/events"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
	"github.com/iota-uz/relations/pkg/eventbus"
	"github.com/iota-uz/relations/pkg/sid"
)

type ContactService struct {
	repo      contact.Repository
	publisher eventbus.EventBus
}

func NewContactService(repo contact.Repository, publisher eventbus.EventBus) *ContactService {
	return &ContactService{repo: repo, publisher: publisher}
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, persistence.ErrContactNotFound) {
		return contact.Contact{}, errNotFound("contact")
	}
	if err != nil {
		return contact.Contact{}, mapPgError(err)
	}
	return c, nil
}

func (s *ContactService) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	items, total, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	return items, total, nil
}

func (s *ContactService) Create(ctx context.Context, dto *contact.CreateDTO) (contact.Contact, error) {
	if fields, ok := dto.Ok(); !ok {
		return contact.Contact{}, errValidationFields(fields)
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		return s.repo.Create(txCtx, dto.ToEntity(sid.New()))
	})
	if err != nil {
		return contact.Contact{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("created", events.EntityContact, created.ID()))
	return created, nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, dto *contact.UpdateDTO) (contact.Contact, error) {
	if fields, ok := dto.Ok(); !ok {
		return contact.Contact{}, errValidationFields(fields)
	}

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (contact.Contact, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return contact.Contact{}, err
		}
		return s.repo.Update(txCtx, dto.Apply(current))
	})
	if errors.Is(err, persistence.ErrContactNotFound) {
		return contact.Contact{}, errNotFound("contact")
	}
	if err != nil {
		return contact.Contact{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("updated", events.EntityContact, updated.ID()))
	return updated, nil
}

// Delete removes the contact; association rows referencing it go with it
// via the store's cascade action.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if errors.Is(err, persistence.ErrContactNotFound) {
		return errNotFound("contact")
	}
	if err != nil {
		return mapPgError(err)
	}

	s.publisher.Publish(events.New("deleted", events.EntityContact, id))
	return nil
}
