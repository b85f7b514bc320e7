package services

import (
	"context"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/eventbus"
)

type EmployeeService struct {
	repo      employee.Repository
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *EmployeeService) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetPaginated(txCtx, params)
	})
}

func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		entity, err := data.ToEntity()
		if err != nil {
			return employee.Employee{}, err
		}
		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return employee.Employee{}, err
		}
		s.publisher.Publish(employee.NewCreatedEvent(created))
		return created, nil
	})
}

func (s *EmployeeService) Update(ctx context.Context, id int64, data *employee.UpdateDTO) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		entity, err := data.ToEntity(id)
		if err != nil {
			return employee.Employee{}, err
		}
		if err := s.repo.Update(txCtx, entity); err != nil {
			return employee.Employee{}, err
		}
		updated, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return employee.Employee{}, err
		}
		s.publisher.Publish(employee.NewUpdatedEvent(updated))
		return updated, nil
	})
}

// Delete removes the employee and detaches the reporting edges pointing at
// them. Subordinates survive with a nil reportsTo.
func (s *EmployeeService) Delete(ctx context.Context, id int64) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return employee.Employee{}, err
		}
		if err := s.repo.DetachReports(txCtx, id); err != nil {
			return employee.Employee{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return employee.Employee{}, err
		}
		s.publisher.Publish(employee.NewDeletedEvent(entity))
		return entity, nil
	})
}
