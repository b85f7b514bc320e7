package workitem

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
	"github.com/pulseworks/worktrack/pkg/serrors"
)

type ComponentDTO struct {
	Type         string `json:"type" validate:"required"`
	Complexity   string `json:"complexity" validate:"required"`
	Count        int    `json:"count" validate:"omitempty,gte=1"`
	FileRequired bool   `json:"fileRequired"`
	FileType     string `json:"fileType"`
}

type CreateDTO struct {
	AssignedEmployeeID int64      `json:"assignedEmployeeId" validate:"required"`
	Title              string     `json:"title" validate:"required"`
	Description        string     `json:"description"`
	Priority           string     `json:"priority"`
	// Status, when present, seeds the parent status instead of the Pending
	// default; a Completed-family value stamps completedAt.
	Status     string         `json:"status"`
	DueDate    *time.Time     `json:"dueDate"`
	Components []ComponentDTO `json:"components" validate:"dive"`
	// Notes are attached to the item at creation, authored by the caller.
	Notes []string `json:"notes"`
}

type AddNoteDTO struct {
	Body string `json:"body" validate:"required"`
}

type UpdateDTO struct {
	AssignedEmployeeID int64           `json:"assignedEmployeeId" validate:"required"`
	Title              string          `json:"title" validate:"required"`
	Description        string          `json:"description"`
	Priority           string          `json:"priority"`
	DueDate            *time.Time      `json:"dueDate"`
	// Components nil means "leave the component set alone"; an empty slice
	// clears it.
	Components *[]ComponentDTO `json:"components" validate:"omitempty,dive"`
}

type RecordWorklogDTO struct {
	EmployeeID int64      `json:"employeeId" validate:"required"`
	Hours      float64    `json:"hours" validate:"required"`
	Date       *time.Time `json:"date" validate:"required"`
	Notes      string     `json:"notes"`
}

type EditWorklogDTO struct {
	Hours float64    `json:"hours" validate:"required"`
	Date  *time.Time `json:"date" validate:"required"`
	Notes string     `json:"notes"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func runValidate(dto any) (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := validate.Struct(dto); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = serrors.ProcessValidatorErrors(fieldErrs, nil)
		}
	}
	return errs, len(errs) == 0
}

func (d *CreateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) {
	errs, ok := runValidate(d)
	if d.Status != "" {
		if _, known := ParseStatus(d.Status); !known {
			errs["Status"] = serrors.Errorf("VALIDATION_FAILED", "WorkItems.Fields.status", "unknown status %q", d.Status)
			ok = false
		}
	}
	return errs, ok
}

func (d *UpdateDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool)        { return runValidate(d) }
func (d *AddNoteDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool)       { return runValidate(d) }
func (d *RecordWorklogDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool) { return runValidate(d) }
func (d *EditWorklogDTO) Ok(ctx context.Context) (serrors.ValidationErrors, bool)   { return runValidate(d) }

// Specs converts the requested components into pricing input.
func Specs(dtos []ComponentDTO) []effort.ComponentSpec {
	specs := make([]effort.ComponentSpec, 0, len(dtos))
	for _, d := range dtos {
		specs = append(specs, effort.ComponentSpec{
			Type:         d.Type,
			Complexity:   d.Complexity,
			Count:        d.Count,
			FileRequired: d.FileRequired,
			FileType:     d.FileType,
		})
	}
	return specs
}

func (d *CreateDTO) ToEntity(kind Kind) WorkItem {
	return New(kind, d.AssignedEmployeeID, d.Title, d.Description, d.Priority, d.DueDate)
}
