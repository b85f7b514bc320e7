package project

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseworks/worktrack/pkg/serrors"
)

type CreateDTO struct {
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	Platform       string     `json:"platform"`
	StartDate      *time.Time `json:"startDate"`
	PlannedEndDate *time.Time `json:"plannedEndDate"`
}

type UpdateDTO struct {
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	Platform       string     `json:"platform"`
	Stage          string     `json:"stage"`
	StartDate      *time.Time `json:"startDate"`
	PlannedEndDate *time.Time `json:"plannedEndDate"`
	// Remarks, when present on a stage change, is recorded as its own
	// ledger row next to the stage transition.
	Remarks string `json:"remarks"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (d *CreateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = serrors.ProcessValidatorErrors(fieldErrs, nil)
		}
	}
	return errs, len(errs) == 0
}

func (d *UpdateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(d); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = serrors.ProcessValidatorErrors(fieldErrs, nil)
		}
	}
	if d.Stage != "" {
		if _, ok := ParseStage(d.Stage); !ok {
			errs["Stage"] = serrors.Errorf("VALIDATION_FAILED", "Projects.Fields.stage", "unknown stage %q", d.Stage)
		}
	}
	return errs, len(errs) == 0
}

func (d *CreateDTO) ToEntity() Project {
	return New(d.Name, d.Description, d.Priority, d.Platform, d.StartDate, d.PlannedEndDate)
}
