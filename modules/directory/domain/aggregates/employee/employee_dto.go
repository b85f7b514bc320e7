package employee

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

type CreateDTO struct {
	Name            string `json:"name" validate:"required"`
	Designation     string `json:"designation"`
	Role            string `json:"role" validate:"required"`
	ReportsTo       *int64 `json:"reportsTo"`
	ManagerID       *int64 `json:"managerId"`
	ApplicationName string `json:"applicationName"`
}

type UpdateDTO struct {
	Name            string `json:"name" validate:"required"`
	Designation     string `json:"designation"`
	Role            string `json:"role" validate:"required"`
	ReportsTo       *int64 `json:"reportsTo"`
	ManagerID       *int64 `json:"managerId"`
	ApplicationName string `json:"applicationName"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (d *CreateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	return validateDTO(d, d.Role)
}

func (d *UpdateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	return validateDTO(d, d.Role)
}

func validateDTO(dto any, rawRole string) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(dto); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for field, ferr := range serrors.ProcessValidatorErrors(fieldErrs, nil) {
				errs[field] = ferr
			}
		}
	}
	if rawRole != "" {
		if _, ok := ParseRole(rawRole); !ok {
			errs["Role"] = serrors.Errorf("VALIDATION_FAILED", "Directory.Fields.role", "unknown role %q", rawRole)
		}
	}
	return errs, len(errs) == 0
}

func (d *CreateDTO) ToEntity() (Employee, error) {
	role, ok := ParseRole(d.Role)
	if !ok {
		return Employee{}, serrors.Errorf("VALIDATION_FAILED", "Directory.Fields.role", "unknown role %q", d.Role)
	}
	return New(d.Name, d.Designation, role, d.ReportsTo, d.ManagerID, d.ApplicationName), nil
}

func (d *UpdateDTO) ToEntity(id int64) (Employee, error) {
	role, ok := ParseRole(d.Role)
	if !ok {
		return Employee{}, serrors.Errorf("VALIDATION_FAILED", "Directory.Fields.role", "unknown role %q", d.Role)
	}
	e := New(d.Name, d.Designation, role, d.ReportsTo, d.ManagerID, d.ApplicationName)
	e.id = id
	return e, nil
}
