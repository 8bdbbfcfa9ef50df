package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/relations/modules/relations/domain/aggregates/association"
	"github.com/iota-uz/relations/pkg/composables"
)

var ErrAssociationNotFound = errors.New("association not found")

const associationColumns = `
	id,
	organization_id,
	contact_id,
	job_title,
	department,
	role,
	reports_to_id,
	is_primary,
	is_active,
	created_at,
	updated_at`

type AssociationRepository struct{}

func NewAssociationRepository() association.Repository {
	return &AssociationRepository{}
}

func (r *AssociationRepository) GetByID(ctx context.Context, id uuid.UUID) (association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return association.Association{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+associationColumns+`
FROM organization_contacts
WHERE id=$1
`, pgUUID(id))
	a, err := scanAssociation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return association.Association{}, ErrAssociationNotFound
	}
	if err != nil {
		return association.Association{}, gerrors.Wrap(err, "get association")
	}
	return a, nil
}

func (r *AssociationRepository) GetByPair(ctx context.Context, organizationID, contactID uuid.UUID) (association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return association.Association{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+associationColumns+`
FROM organization_contacts
WHERE organization_id=$1 AND contact_id=$2
`, pgUUID(organizationID), pgUUID(contactID))
	a, err := scanAssociation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return association.Association{}, ErrAssociationNotFound
	}
	if err != nil {
		return association.Association{}, gerrors.Wrap(err, "get association by pair")
	}
	return a, nil
}

func (r *AssociationRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, activeOnly bool) ([]association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+associationColumns+`
FROM organization_contacts
WHERE organization_id=$1 AND (NOT $2 OR is_active)
ORDER BY id
`, pgUUID(organizationID), activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]association.Association, 0, 16)
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssociationRepository) Create(ctx context.Context, a association.Association) (association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return association.Association{}, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO organization_contacts (
	id, organization_id, contact_id, job_title, department, role,
	reports_to_id, is_primary, is_active, created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		pgUUID(a.ID()),
		pgUUID(a.OrganizationID()),
		pgUUID(a.ContactID()),
		pgNullableText(a.JobTitle()),
		pgNullableText(a.Department()),
		pgNullableText(a.Role()),
		pgNullableUUID(a.ReportsToID()),
		a.IsPrimary(),
		a.IsActive(),
		a.CreatedAt(),
		a.UpdatedAt(),
	)
	if err != nil {
		return association.Association{}, err
	}
	return a, nil
}

func (r *AssociationRepository) Update(ctx context.Context, a association.Association) (association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return association.Association{}, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE organization_contacts SET
	job_title=$2,
	department=$3,
	role=$4,
	reports_to_id=$5,
	is_primary=$6,
	is_active=$7,
	updated_at=$8
WHERE id=$1
`,
		pgUUID(a.ID()),
		pgNullableText(a.JobTitle()),
		pgNullableText(a.Department()),
		pgNullableText(a.Role()),
		pgNullableUUID(a.ReportsToID()),
		a.IsPrimary(),
		a.IsActive(),
		a.UpdatedAt(),
	)
	if err != nil {
		return association.Association{}, err
	}
	if tag.RowsAffected() == 0 {
		return association.Association{}, ErrAssociationNotFound
	}
	return a, nil
}

func (r *AssociationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM organization_contacts WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

func (r *AssociationRepository) LockByID(ctx context.Context, id uuid.UUID) (association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return association.Association{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+associationColumns+`
FROM organization_contacts
WHERE id=$1
FOR UPDATE
`, pgUUID(id))
	a, err := scanAssociation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return association.Association{}, ErrAssociationNotFound
	}
	if err != nil {
		return association.Association{}, gerrors.Wrap(err, "lock association")
	}
	return a, nil
}

func (r *AssociationRepository) LockReportsToOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, false, err
	}

	var reportsTo pgtype.UUID
	err = tx.QueryRow(ctx, `
SELECT reports_to_id
FROM organization_contacts
WHERE id=$1
FOR UPDATE
`, pgUUID(id)).Scan(&reportsTo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return nullableUUID(reportsTo), true, nil
}

func (r *AssociationRepository) LockByOrganization(ctx context.Context, organizationID uuid.UUID) ([]association.Association, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+associationColumns+`
FROM organization_contacts
WHERE organization_id=$1
ORDER BY id
FOR UPDATE
`, pgUUID(organizationID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]association.Association, 0, 16)
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssociation(row pgx.Row) (association.Association, error) {
	var (
		id, organizationID, contactID uuid.UUID
		jobTitle, department, role    pgtype.Text
		reportsTo                     pgtype.UUID
		isPrimary, isActive           bool
		createdAt, updatedAt          pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&organizationID,
		&contactID,
		&jobTitle,
		&department,
		&role,
		&reportsTo,
		&isPrimary,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return association.Association{}, err
	}

	return association.Hydrate(
		id,
		organizationID,
		contactID,
		nullableText(jobTitle),
		nullableText(department),
		nullableText(role),
		nullableUUID(reportsTo),
		isPrimary,
		isActive,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
