package association

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iota-uz/relations/pkg/constants"
	"github.com/iota-uz/relations/pkg/serrors"
)

type LinkDTO struct {
	JobTitle   *string `json:"job_title" validate:"omitempty,max=255"`
	Department *string `json:"department" validate:"omitempty,max=255"`
	Role       *string `json:"role" validate:"omitempty,max=100"`
	IsPrimary  bool    `json:"is_primary"`
}

func (d *LinkDTO) Normalize() {
	d.JobTitle = trimPtr(d.JobTitle)
	d.Department = trimPtr(d.Department)
	d.Role = trimPtr(d.Role)
}

func (d *LinkDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *LinkDTO) ToEntity(id, organizationID, contactID uuid.UUID) Association {
	now := time.Now().UTC()
	return Association{
		id:             id,
		organizationID: organizationID,
		contactID:      contactID,
		jobTitle:       d.JobTitle,
		department:     d.Department,
		role:           d.Role,
		isPrimary:      d.IsPrimary,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}
}

type UpdateDTO struct {
	JobTitle   **string `json:"job_title"`
	Department **string `json:"department"`
	Role       **string `json:"role"`
	IsActive   *bool    `json:"is_active"`
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	out := serrors.ValidationErrors{}
	check := func(field string, v **string, max int) {
		if v == nil || *v == nil {
			return
		}
		if len(strings.TrimSpace(**v)) > max {
			out[field] = serrors.NewError("VALIDATION_max", "value is too long", "")
		}
	}
	check("JobTitle", d.JobTitle, 255)
	check("Department", d.Department, 255)
	check("Role", d.Role, 100)
	return out, len(out) == 0
}

func (d *UpdateDTO) Apply(a Association) Association {
	if d.JobTitle != nil {
		a.jobTitle = *d.JobTitle
	}
	if d.Department != nil {
		a.department = *d.Department
	}
	if d.Role != nil {
		a.role = *d.Role
	}
	if d.IsActive != nil {
		a.isActive = *d.IsActive
	}
	a.updatedAt = time.Now().UTC()
	return a
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
