package services

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes we translate into the service taxonomy.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgExclusionViolation   = "23P01"
	pgIntegrityViolation   = "23000"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgLockNotAvailable     = "55P03"
)

// Constraint names from the schema, used to produce a message the caller
// can act on instead of a generic duplicate error.
const (
	constraintOrgContactPair = "organization_contacts_org_contact_key"
	constraintOrgCode        = "organizations_code_key"
)

// mapPgError converts low-level pgx failures into ServiceErrors. Errors
// that are already ServiceErrors pass through untouched so repository
// sentinels mapped earlier keep their classification.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := AsServiceError(err); ok {
		return se
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errNotFound("record")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return errInternal(err)
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintOrgContactPair:
			return errDuplicate("contact is already linked to this organization")
		case constraintOrgCode:
			return errDuplicate("organization code is already in use")
		default:
			return errDuplicate("record already exists")
		}
	case pgForeignKeyViolation:
		return newServiceError(http.StatusUnprocessableEntity, CodeInvalidBody, "referenced record does not exist", pgErr)
	case pgExclusionViolation, pgIntegrityViolation:
		return errConflict("operation violates a storage constraint", pgErr)
	case pgDeadlockDetected, pgSerializationFailure, pgLockNotAvailable:
		recordWriteConflict(pgErr.Code)
		return errConflict("concurrent modification, retry the operation", pgErr)
	default:
		return errInternal(pgErr)
	}
}
