package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/party"
	"github.com/iota-uz/relations/pkg/composables"
)

var ErrPartyNotFound = errors.New("party not found")

const partyColumns = `
	id,
	kind,
	display_name,
	legal_name,
	tin,
	registration_number,
	is_active,
	created_at,
	updated_at`

type PartyRepository struct{}

func NewPartyRepository() party.Repository {
	return &PartyRepository{}
}

func (r *PartyRepository) GetPaginated(ctx context.Context, params *party.FindParams) ([]party.Party, int64, error) {
	if params == nil {
		params = &party.FindParams{}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	kind := ""
	if params.Kind != nil {
		kind = string(*params.Kind)
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+partyColumns+`
FROM parties
WHERE ($1 = '' OR display_name ILIKE '%' || $1 || '%' OR legal_name ILIKE '%' || $1 || '%')
	AND ($2 = '' OR kind = $2)
ORDER BY id
OFFSET $3 LIMIT $4
`, params.Q, kind, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]party.Party, 0, limit)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM parties
WHERE ($1 = '' OR display_name ILIKE '%' || $1 || '%' OR legal_name ILIKE '%' || $1 || '%')
	AND ($2 = '' OR kind = $2)
`, params.Q, kind).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PartyRepository) GetByID(ctx context.Context, id uuid.UUID) (party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return party.Party{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+partyColumns+`
FROM parties
WHERE id=$1
`, pgUUID(id))
	p, err := scanParty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return party.Party{}, ErrPartyNotFound
	}
	if err != nil {
		return party.Party{}, gerrors.Wrap(err, "get party")
	}
	return p, nil
}

func (r *PartyRepository) Create(ctx context.Context, p party.Party) (party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return party.Party{}, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO parties (id, kind, display_name, legal_name, tin, registration_number, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		pgUUID(p.ID()),
		string(p.Kind()),
		p.DisplayName(),
		pgNullableText(p.LegalName()),
		pgNullableText(p.Tin()),
		pgNullableText(p.RegistrationNumber()),
		p.IsActive(),
		p.CreatedAt(),
		p.UpdatedAt(),
	)
	if err != nil {
		return party.Party{}, err
	}
	return p, nil
}

func (r *PartyRepository) Update(ctx context.Context, p party.Party) (party.Party, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return party.Party{}, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE parties SET
	display_name=$2,
	legal_name=$3,
	tin=$4,
	registration_number=$5,
	is_active=$6,
	updated_at=$7
WHERE id=$1
`,
		pgUUID(p.ID()),
		p.DisplayName(),
		pgNullableText(p.LegalName()),
		pgNullableText(p.Tin()),
		pgNullableText(p.RegistrationNumber()),
		p.IsActive(),
		p.UpdatedAt(),
	)
	if err != nil {
		return party.Party{}, err
	}
	if tag.RowsAffected() == 0 {
		return party.Party{}, ErrPartyNotFound
	}
	return p, nil
}

func scanParty(row pgx.Row) (party.Party, error) {
	var (
		id                            uuid.UUID
		kind, displayName             string
		legalName, tin, registration  pgtype.Text
		isActive                      bool
		createdAt, updatedAt          pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&kind,
		&displayName,
		&legalName,
		&tin,
		&registration,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return party.Party{}, err
	}

	return party.Hydrate(
		id,
		party.Kind(kind),
		displayName,
		nullableText(legalName),
		nullableText(tin),
		nullableText(registration),
		isActive,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
