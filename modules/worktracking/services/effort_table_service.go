package services

import (
	"context"
	"errors"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
	"github.com/pulseworks/worktrack/pkg/composables"
)

// EffortTableService manages the configured pricing mappings and hands out
// read-only Table snapshots for pricing inside a transaction.
type EffortTableService struct {
	repo effort.Repository
}

func NewEffortTableService(repo effort.Repository) *EffortTableService {
	return &EffortTableService{repo: repo}
}

func (s *EffortTableService) GetAll(ctx context.Context) ([]effort.Mapping, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]effort.Mapping, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *EffortTableService) GetByType(ctx context.Context, componentType string) (effort.Mapping, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (effort.Mapping, error) {
		return s.repo.GetByType(txCtx, componentType)
	})
}

// Snapshot loads the whole table once. Callers inside a transaction see a
// consistent pricing view for the duration of that transaction.
func (s *EffortTableService) Snapshot(ctx context.Context) (effort.Table, error) {
	mappings, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return effort.BuildTable(mappings), nil
}

func (s *EffortTableService) Create(ctx context.Context, data *effort.CreateMappingDTO) (effort.Mapping, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (effort.Mapping, error) {
		_, err := s.repo.GetByType(txCtx, data.ComponentType)
		if err == nil {
			return effort.Mapping{}, effort.ErrTypeExists
		}
		if !errors.Is(err, effort.ErrTypeNotFound) {
			return effort.Mapping{}, err
		}
		return s.repo.Create(txCtx, data.ToEntity())
	})
}

func (s *EffortTableService) Update(ctx context.Context, componentType string, data *effort.UpdateMappingDTO) (effort.Mapping, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (effort.Mapping, error) {
		existing, err := s.repo.GetByType(txCtx, componentType)
		if err != nil {
			return effort.Mapping{}, err
		}
		if data.ComponentType != "" && data.ComponentType != componentType {
			if _, err := s.repo.GetByType(txCtx, data.ComponentType); err == nil {
				return effort.Mapping{}, effort.ErrTypeExists
			} else if !errors.Is(err, effort.ErrTypeNotFound) {
				return effort.Mapping{}, err
			}
			existing = existing.WithComponentType(data.ComponentType)
		}
		if data.Hours != nil {
			existing = existing.WithHours(data.Hours)
		}
		if err := s.repo.Update(txCtx, existing); err != nil {
			return effort.Mapping{}, err
		}
		return s.repo.GetByType(txCtx, existing.ComponentType())
	})
}

func (s *EffortTableService) Delete(ctx context.Context, componentType string) (effort.Mapping, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (effort.Mapping, error) {
		existing, err := s.repo.GetByType(txCtx, componentType)
		if err != nil {
			return effort.Mapping{}, err
		}
		if err := s.repo.Delete(txCtx, existing.ID()); err != nil {
			return effort.Mapping{}, err
		}
		return existing, nil
	})
}
