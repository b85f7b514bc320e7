package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
)

func TestEffortTableService_CreateRejectsDuplicateType(t *testing.T) {
	svc := NewEffortTableService(newMemEffortRepo(effort.Table{
		"Feature": {"Simple": 2},
	}))

	_, err := svc.Create(ctx(), &effort.CreateMappingDTO{
		ComponentType: "Feature",
		Hours:         map[string]float64{"Simple": 3},
	})
	require.True(t, errors.Is(err, effort.ErrTypeExists))

	created, err := svc.Create(ctx(), &effort.CreateMappingDTO{
		ComponentType: "Report",
		Hours:         map[string]float64{"Simple": 1},
	})
	require.NoError(t, err)
	require.Equal(t, "Report", created.ComponentType())
}

func TestEffortTableService_UpdateRenameCollision(t *testing.T) {
	svc := NewEffortTableService(newMemEffortRepo(effort.Table{
		"Feature": {"Simple": 2},
		"Report":  {"Simple": 1},
	}))

	_, err := svc.Update(ctx(), "Report", &effort.UpdateMappingDTO{ComponentType: "Feature"})
	require.True(t, errors.Is(err, effort.ErrTypeExists))

	updated, err := svc.Update(ctx(), "Report", &effort.UpdateMappingDTO{
		Hours: map[string]float64{"Simple": 4, "Medium": 8},
	})
	require.NoError(t, err)
	require.Equal(t, float64(8), updated.Hours()["Medium"])
}

func TestEffortTableService_DeleteUnknownType(t *testing.T) {
	svc := NewEffortTableService(newMemEffortRepo(effort.Table{}))

	_, err := svc.Delete(ctx(), "Ghost")
	require.True(t, errors.Is(err, effort.ErrTypeNotFound))
}

func TestEffortTableService_SnapshotBuildsTable(t *testing.T) {
	svc := NewEffortTableService(newMemEffortRepo(effort.Table{
		"Feature": {"Simple": 2, "Medium": 5},
	}))

	tbl, err := svc.Snapshot(ctx())
	require.NoError(t, err)
	require.Equal(t, float64(5), tbl["Feature"]["Medium"])
}
