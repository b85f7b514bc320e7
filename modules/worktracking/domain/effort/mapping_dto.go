package effort

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

type CreateMappingDTO struct {
	ComponentType string             `json:"componentType" validate:"required"`
	Hours         map[string]float64 `json:"hours" validate:"required,dive,gte=0"`
}

type UpdateMappingDTO struct {
	ComponentType string             `json:"componentType"`
	Hours         map[string]float64 `json:"hours" validate:"omitempty,dive,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (d *CreateMappingDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = serrors.ProcessValidatorErrors(fieldErrs, nil)
		}
	}
	return errs, len(errs) == 0
}

func (d *UpdateMappingDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = serrors.ProcessValidatorErrors(fieldErrs, nil)
		}
	}
	return errs, len(errs) == 0
}

func (d *CreateMappingDTO) ToEntity() Mapping {
	return NewMapping(d.ComponentType, d.Hours)
}
