package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/contact"
	"github.com/iota-uz/relations/pkg/composables"
)

var ErrContactNotFound = errors.New("contact not found")

const contactColumns = `
	id,
	first_name,
	last_name,
	email,
	phone,
	mobile,
	is_active,
	created_at,
	updated_at`

type ContactRepository struct{}

func NewContactRepository() contact.Repository {
	return &ContactRepository{}
}

func (r *ContactRepository) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	if params == nil {
		params = &contact.FindParams{}
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

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+contactColumns+`
FROM contacts
WHERE $1 = ''
	OR first_name ILIKE '%' || $1 || '%'
	OR last_name ILIKE '%' || $1 || '%'
	OR email ILIKE '%' || $1 || '%'
ORDER BY id
OFFSET $2 LIMIT $3
`, params.Q, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]contact.Contact, 0, limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM contacts
WHERE $1 = ''
	OR first_name ILIKE '%' || $1 || '%'
	OR last_name ILIKE '%' || $1 || '%'
	OR email ILIKE '%' || $1 || '%'
`, params.Q).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+contactColumns+`
FROM contacts
WHERE id=$1
`, pgUUID(id))
	c, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contact.Contact{}, ErrContactNotFound
	}
	if err != nil {
		return contact.Contact{}, gerrors.Wrap(err, "get contact")
	}
	return c, nil
}

func (r *ContactRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM contacts WHERE id=$1)`, pgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO contacts (id, first_name, last_name, email, phone, mobile, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
		pgUUID(c.ID()),
		c.FirstName(),
		c.LastName(),
		pgNullableText(c.Email()),
		pgNullableText(c.Phone()),
		pgNullableText(c.Mobile()),
		c.IsActive(),
		c.CreatedAt(),
		c.UpdatedAt(),
	)
	if err != nil {
		return contact.Contact{}, err
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return contact.Contact{}, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE contacts SET
	first_name=$2,
	last_name=$3,
	email=$4,
	phone=$5,
	mobile=$6,
	is_active=$7,
	updated_at=$8
WHERE id=$1
`,
		pgUUID(c.ID()),
		c.FirstName(),
		c.LastName(),
		pgNullableText(c.Email()),
		pgNullableText(c.Phone()),
		pgNullableText(c.Mobile()),
		c.IsActive(),
		c.UpdatedAt(),
	)
	if err != nil {
		return contact.Contact{}, err
	}
	if tag.RowsAffected() == 0 {
		return contact.Contact{}, ErrContactNotFound
	}
	return c, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (contact.Contact, error) {
	var (
		id                   uuid.UUID
		firstName, lastName  string
		email, phone, mobile pgtype.Text
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&firstName,
		&lastName,
		&email,
		&phone,
		&mobile,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return contact.Contact{}, err
	}

	return contact.Hydrate(
		id,
		firstName,
		lastName,
		nullableText(email),
		nullableText(phone),
		nullableText(mobile),
		isActive,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
