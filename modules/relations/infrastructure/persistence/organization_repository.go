package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/organization"
	"github.com/iota-uz/relations/pkg/composables"
)

var ErrOrganizationNotFound = errors.New("organization not found")

const organizationColumns = `
	id,
	code,
	name,
	email,
	phone,
	website,
	industry,
	address,
	city,
	state,
	postal_code,
	country_code,
	timezone,
	currency,
	parent_id,
	is_active,
	created_at,
	updated_at`

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) GetPaginated(ctx context.Context, params *organization.FindParams) ([]organization.Organization, int64, error) {
	if params == nil {
		params = &organization.FindParams{}
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
SELECT `+organizationColumns+`
FROM organizations
WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
ORDER BY id
OFFSET $2 LIMIT $3
`, params.Q, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]organization.Organization, 0, limit)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM organizations
WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
`, params.Q).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+organizationColumns+`
FROM organizations
WHERE id=$1
`, pgUUID(id))
	o, err := scanOrganization(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return organization.Organization{}, ErrOrganizationNotFound
	}
	if err != nil {
		return organization.Organization{}, gerrors.Wrap(err, "get organization")
	}
	return o, nil
}

func (r *OrganizationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id=$1)`, pgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO organizations (
	id, code, name, email, phone, website, industry, address, city, state,
	postal_code, country_code, timezone, currency, parent_id, is_active,
	created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
`,
		pgUUID(o.ID()),
		pgNullableText(o.Code()),
		o.Name(),
		pgNullableText(o.Email()),
		pgNullableText(o.Phone()),
		pgNullableText(o.Website()),
		pgNullableText(o.Industry()),
		pgNullableText(o.Address()),
		pgNullableText(o.City()),
		pgNullableText(o.State()),
		pgNullableText(o.PostalCode()),
		pgNullableText(o.CountryCode()),
		pgNullableText(o.Timezone()),
		pgNullableText(o.Currency()),
		pgNullableUUID(o.ParentID()),
		o.IsActive(),
		o.CreatedAt(),
		o.UpdatedAt(),
	)
	if err != nil {
		return organization.Organization{}, err
	}
	return o, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE organizations SET
	code=$2,
	name=$3,
	email=$4,
	phone=$5,
	website=$6,
	industry=$7,
	address=$8,
	city=$9,
	state=$10,
	postal_code=$11,
	country_code=$12,
	timezone=$13,
	currency=$14,
	parent_id=$15,
	is_active=$16,
	updated_at=$17
WHERE id=$1
`,
		pgUUID(o.ID()),
		pgNullableText(o.Code()),
		o.Name(),
		pgNullableText(o.Email()),
		pgNullableText(o.Phone()),
		pgNullableText(o.Website()),
		pgNullableText(o.Industry()),
		pgNullableText(o.Address()),
		pgNullableText(o.City()),
		pgNullableText(o.State()),
		pgNullableText(o.PostalCode()),
		pgNullableText(o.CountryCode()),
		pgNullableText(o.Timezone()),
		pgNullableText(o.Currency()),
		pgNullableUUID(o.ParentID()),
		o.IsActive(),
		o.UpdatedAt(),
	)
	if err != nil {
		return organization.Organization{}, err
	}
	if tag.RowsAffected() == 0 {
		return organization.Organization{}, ErrOrganizationNotFound
	}
	return o, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM organizations WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

func (r *OrganizationRepository) ChildrenOf(ctx context.Context, id uuid.UUID) ([]organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+organizationColumns+`
FROM organizations
WHERE parent_id=$1
ORDER BY id
`, pgUUID(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]organization.Organization, 0, 8)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrganizationRepository) LockParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, false, err
	}

	var parent pgtype.UUID
	err = tx.QueryRow(ctx, `
SELECT parent_id
FROM organizations
WHERE id=$1
FOR UPDATE
`, pgUUID(id)).Scan(&parent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return nullableUUID(parent), true, nil
}

func scanOrganization(row pgx.Row) (organization.Organization, error) {
	var (
		id                                        uuid.UUID
		name                                      string
		code, email, phone, website, industry     pgtype.Text
		address, city, state, postalCode          pgtype.Text
		countryCode, timezone, currency           pgtype.Text
		parentID                                  pgtype.UUID
		isActive                                  bool
		createdAt, updatedAt                      pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&code,
		&name,
		&email,
		&phone,
		&website,
		&industry,
		&address,
		&city,
		&state,
		&postalCode,
		&countryCode,
		&timezone,
		&currency,
		&parentID,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return organization.Organization{}, err
	}

	return organization.Hydrate(
		id,
		nullableText(code),
		name,
		nullableText(email),
		nullableText(phone),
		nullableText(website),
		nullableText(industry),
		nullableText(address),
		nullableText(city),
		nullableText(state),
		nullableText(postalCode),
		nullableText(countryCode),
		nullableText(timezone),
		nullableText(currency),
		nullableUUID(parentID),
		isActive,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
