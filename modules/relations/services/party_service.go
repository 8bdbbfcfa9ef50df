package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/party"
	"github.com/iota-uz/relations/modules/relations/domain/events"
	"github.com/iota-uz/relations/modules/relations/infrastructure/persistence"
	"github.com/iota-uz/relations/pkg/composables"
	"github.com/iota-uz/relations/pkg/eventbus"
	"github.com/iota-uz/relations/pkg/sid"
)

type PartyService struct {
	repo      party.Repository
	publisher eventbus.EventBus
}

func NewPartyService(repo party.Repository, publisher eventbus.EventBus) *PartyService {
	return &PartyService{repo: repo, publisher: publisher}
}

func (s *PartyService) GetByID(ctx context.Context, id uuid.UUID) (party.Party, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, persistence.ErrPartyNotFound) {
		return party.Party{}, errNotFound("party")
	}
	if err != nil {
		return party.Party{}, mapPgError(err)
	}
	return p, nil
}

func (s *PartyService) GetPaginated(ctx context.Context, params *party.FindParams) ([]party.Party, int64, error) {
	items, total, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	return items, total, nil
}

func (s *PartyService) Create(ctx context.Context, dto *party.CreateDTO) (party.Party, error) {
	if fields, ok := dto.Ok(); !ok {
		return party.Party{}, errValidationFields(fields)
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (party.Party, error) {
		return s.repo.Create(txCtx, dto.ToEntity(sid.New()))
	})
	if err != nil {
		return party.Party{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("created", events.EntityParty, created.ID()))
	return created, nil
}

// Update patches the party. Kind is immutable; company-only fields are
// rejected against the stored kind, not a caller-supplied one.
func (s *PartyService) Update(ctx context.Context, id uuid.UUID, dto *party.UpdateDTO) (party.Party, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (party.Party, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return party.Party{}, err
		}
		if fields, ok := dto.Ok(current.Kind()); !ok {
			return party.Party{}, errValidationFields(fields)
		}
		return s.repo.Update(txCtx, dto.Apply(current))
	})
	if errors.Is(err, persistence.ErrPartyNotFound) {
		return party.Party{}, errNotFound("party")
	}
	if err != nil {
		return party.Party{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("updated", events.EntityParty, updated.ID()))
	return updated, nil
}

// Deactivate is the party lifecycle end state. Rows are never deleted so
// historical references stay resolvable.
func (s *PartyService) Deactivate(ctx context.Context, id uuid.UUID) (party.Party, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (party.Party, error) {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return party.Party{}, err
		}
		return s.repo.Update(txCtx, current.Deactivate())
	})
	if errors.Is(err, persistence.ErrPartyNotFound) {
		return party.Party{}, errNotFound("party")
	}
	if err != nil {
		return party.Party{}, mapPgError(err)
	}

	s.publisher.Publish(events.New("deactivated", events.EntityParty, updated.ID()))
	return updated, nil
}
