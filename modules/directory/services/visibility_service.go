package services

import (
	"context"
	"strings"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	"github.com/pulseworks/worktrack/modules/directory/domain/orggraph"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/metrics"
	"github.com/pulseworks/worktrack/pkg/serrors"
)

var ErrNotAuthorized = serrors.NewError(
	"AUTHZ_FORBIDDEN",
	"you are not authorized to act on this employee",
	"Authorization.PermissionDenied",
)

// Scope carries the optional narrowing filters a caller may supply. Each
// subtree filter contributes an independent "must be under X" clause; clauses
// only ever shrink the visible set.
type Scope struct {
	LTID            *int64
	ALTID           *int64
	ManagerID       *int64
	TLID            *int64
	ApplicationName string
}

// VisibilityService answers which employees a caller may see or act on.
// It never mutates state.
type VisibilityService struct {
	repo employee.Repository
}

func NewVisibilityService(repo employee.Repository) *VisibilityService {
	return &VisibilityService{repo: repo}
}

type snapshot struct {
	graph *orggraph.Graph
	byID  map[int64]employee.Employee
}

type strategyFunc func(snap *snapshot, callerID int64, scope Scope) orggraph.IDSet

// One pure strategy per role; adding a role means adding an entry, not
// growing a conditional.
var roleStrategies = map[employee.Role]strategyFunc{
	employee.RoleHeadLT: subtreeOfSelf,
	employee.RoleLT:     subtreeOfSelf,
	employee.RoleALT:    subtreeOfSelf,
	employee.RoleManager: func(snap *snapshot, callerID int64, scope Scope) orggraph.IDSet {
		if scope.TLID != nil {
			return teamLeadWithReports(snap, *scope.TLID)
		}
		out := orggraph.IDSet{}
		for id, e := range snap.byID {
			if e.ManagerID() != nil && *e.ManagerID() == callerID {
				out.Add(id)
			}
		}
		return out
	},
	employee.RoleAdmin: func(snap *snapshot, callerID int64, scope Scope) orggraph.IDSet {
		root := callerID
		if scope.TLID != nil {
			root = *scope.TLID
		}
		return snap.graph.Subtree(root)
	},
	employee.RoleEmployee: selfOnly,
}

func subtreeOfSelf(snap *snapshot, callerID int64, _ Scope) orggraph.IDSet {
	set := snap.graph.Subtree(callerID)
	// The caller is part of their own subtree even when the directory
	// snapshot is missing their row.
	set.Add(callerID)
	return set
}

func selfOnly(_ *snapshot, callerID int64, _ Scope) orggraph.IDSet {
	return orggraph.NewIDSet(callerID)
}

func teamLeadWithReports(snap *snapshot, tlID int64) orggraph.IDSet {
	out := orggraph.NewIDSet(tlID)
	for _, id := range snap.graph.DirectReports(tlID) {
		out.Add(id)
	}
	return out
}

// ResolveVisibleSet computes the set of employee ids the caller may see,
// given their role and the optional scope filters.
func (s *VisibilityService) ResolveVisibleSet(ctx context.Context, caller composables.Caller, scope Scope) (orggraph.IDSet, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (orggraph.IDSet, error) {
		snap, err := s.loadSnapshot(txCtx)
		if err != nil {
			return nil, err
		}
		return resolve(snap, caller, scope), nil
	})
}

// Authorize rejects callers acting on employees outside their visible set.
// Acting on one's own identity is always permitted.
func (s *VisibilityService) Authorize(ctx context.Context, caller composables.Caller, targetID int64, scope Scope) error {
	if caller.ID == targetID {
		return nil
	}
	set, err := s.ResolveVisibleSet(ctx, caller, scope)
	if err != nil {
		return err
	}
	if !set.Contains(targetID) {
		metrics.VisibilityDenials.Inc()
		return ErrNotAuthorized
	}
	return nil
}

func (s *VisibilityService) loadSnapshot(ctx context.Context) (*snapshot, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]orggraph.Node, 0, len(all))
	byID := make(map[int64]employee.Employee, len(all))
	for _, e := range all {
		nodes = append(nodes, orggraph.Node{ID: e.ID(), ReportsTo: e.ReportsTo()})
		byID[e.ID()] = e
	}
	return &snapshot{graph: orggraph.Build(nodes), byID: byID}, nil
}

func resolve(snap *snapshot, caller composables.Caller, scope Scope) orggraph.IDSet {
	role := callerRole(snap, caller)
	strategy, ok := roleStrategies[role]
	if !ok {
		// Unknown roles are treated like plain employees rather than
		// falling open.
		strategy = selfOnly
	}
	set := strategy(snap, caller.ID, scope)

	for _, filter := range []*int64{scope.LTID, scope.ALTID, scope.ManagerID, scope.TLID} {
		if filter == nil {
			continue
		}
		set = set.Intersect(snap.graph.Subtree(*filter))
	}

	if app := strings.TrimSpace(scope.ApplicationName); app != "" {
		filtered := orggraph.IDSet{}
		for id := range set {
			if e, ok := snap.byID[id]; ok && strings.EqualFold(e.ApplicationName(), app) {
				filtered.Add(id)
			}
		}
		set = filtered
	}
	return set
}

func callerRole(snap *snapshot, caller composables.Caller) employee.Role {
	if e, ok := snap.byID[caller.ID]; ok {
		return e.Role()
	}
	if role, ok := employee.ParseRole(caller.Role); ok {
		return role
	}
	return employee.RoleEmployee
}
