package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
)

// memStore backs the in-memory repository pair used by the service tests.
type memStore struct {
	items  map[string]workitem.WorkItem
	comps  map[int64]workitem.Component
	logs   map[int64]workitem.WorkLog
	notes  map[int64]workitem.Note
	lastID int64
}

func newMemStore() *memStore {
	return &memStore{
		items: map[string]workitem.WorkItem{},
		comps: map[int64]workitem.Component{},
		logs:  map[int64]workitem.WorkLog{},
		notes: map[int64]workitem.Note{},
	}
}

func (s *memStore) next() int64 {
	s.lastID++
	return s.lastID
}

func itemKey(kind workitem.Kind, id int64) string {
	return fmt.Sprintf("%s/%d", kind, id)
}

type memItemRepo struct {
	store *memStore
}

func (r *memItemRepo) Count(ctx context.Context, kind workitem.Kind) (int64, error) {
	var n int64
	for _, item := range r.store.items {
		if item.Kind() == kind {
			n++
		}
	}
	return n, nil
}

func (r *memItemRepo) GetPaginated(ctx context.Context, kind workitem.Kind, params *workitem.FindParams) ([]workitem.WorkItem, error) {
	allowed := map[int64]struct{}{}
	for _, id := range params.AssigneeIDs {
		allowed[id] = struct{}{}
	}
	out := []workitem.WorkItem{}
	for _, item := range r.store.items {
		if item.Kind() != kind {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[item.AssignedEmployeeID()]; !ok {
				continue
			}
		}
		if params.Status != "" && item.Status() != params.Status {
			continue
		}
		comps, _ := r.ComponentsOf(ctx, kind, item.ID())
		out = append(out, item.WithComponents(comps))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memItemRepo) GetByID(ctx context.Context, kind workitem.Kind, id int64) (workitem.WorkItem, error) {
	item, ok := r.store.items[itemKey(kind, id)]
	if !ok {
		return workitem.WorkItem{}, workitem.ErrNotFound
	}
	comps, _ := r.ComponentsOf(ctx, kind, id)
	return item.WithComponents(comps), nil
}

func (r *memItemRepo) Create(ctx context.Context, data workitem.WorkItem) (workitem.WorkItem, error) {
	id := r.store.next()
	now := time.Now()
	item := workitem.Hydrate(
		id, data.Kind(), data.AssignedEmployeeID(), data.ManagerID(), data.Title(), data.Description(),
		data.Priority(), data.Status(), data.WorkloadHours(), data.DueDate(),
		data.CompletedAt(), now, now,
	)
	r.store.items[itemKey(data.Kind(), id)] = item
	comps, _ := r.ReplaceComponents(ctx, data.Kind(), id, data.Components())
	return item.WithComponents(comps), nil
}

func (r *memItemRepo) Update(ctx context.Context, data workitem.WorkItem) error {
	key := itemKey(data.Kind(), data.ID())
	existing, ok := r.store.items[key]
	if !ok {
		return workitem.ErrNotFound
	}
	updated := existing.
		WithAssignee(data.AssignedEmployeeID(), data.ManagerID()).
		WithDetails(data.Title(), data.Description(), data.Priority(), data.DueDate())
	r.store.items[key] = updated
	return nil
}

func (r *memItemRepo) UpdateStatus(ctx context.Context, kind workitem.Kind, id int64, status workitem.Status, workloadHours float64, completedAt *time.Time) error {
	key := itemKey(kind, id)
	existing, ok := r.store.items[key]
	if !ok {
		return workitem.ErrNotFound
	}
	r.store.items[key] = existing.WithStatus(status, completedAt).WithWorkloadHours(workloadHours)
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, kind workitem.Kind, id int64) error {
	key := itemKey(kind, id)
	if _, ok := r.store.items[key]; !ok {
		return workitem.ErrNotFound
	}
	delete(r.store.items, key)
	for cid, c := range r.store.comps {
		if c.Kind() == kind && c.WorkItemID() == id {
			delete(r.store.comps, cid)
			for lid, l := range r.store.logs {
				if l.ComponentID() == cid {
					delete(r.store.logs, lid)
				}
			}
		}
	}
	for nid, n := range r.store.notes {
		if n.Kind() == kind && n.WorkItemID() == id {
			delete(r.store.notes, nid)
		}
	}
	return nil
}

func (r *memItemRepo) ReplaceComponents(ctx context.Context, kind workitem.Kind, workItemID int64, components []workitem.Component) ([]workitem.Component, error) {
	for cid, c := range r.store.comps {
		if c.Kind() == kind && c.WorkItemID() == workItemID {
			delete(r.store.comps, cid)
			for lid, l := range r.store.logs {
				if l.ComponentID() == cid {
					delete(r.store.logs, lid)
				}
			}
		}
	}
	now := time.Now()
	out := make([]workitem.Component, 0, len(components))
	for _, c := range components {
		cid := r.store.next()
		hydrated := workitem.HydrateComponent(
			cid, workItemID, kind, c.ComponentType(), c.Complexity(), c.Count(),
			c.HoursPerItem(), c.TotalHours(), c.Status(), c.CompletedAt(),
			c.FileRequired(), c.FileType(), now, now,
		)
		r.store.comps[cid] = hydrated
		out = append(out, hydrated)
	}
	return out, nil
}

func (r *memItemRepo) GetComponent(ctx context.Context, componentID int64) (workitem.Component, error) {
	return r.GetComponentForUpdate(ctx, componentID)
}

func (r *memItemRepo) GetComponentForUpdate(ctx context.Context, componentID int64) (workitem.Component, error) {
	c, ok := r.store.comps[componentID]
	if !ok {
		return workitem.Component{}, workitem.ErrComponentNotFound
	}
	return c, nil
}

func (r *memItemRepo) UpdateComponent(ctx context.Context, data workitem.Component) error {
	if _, ok := r.store.comps[data.ID()]; !ok {
		return workitem.ErrComponentNotFound
	}
	r.store.comps[data.ID()] = data
	return nil
}

func (r *memItemRepo) ComponentsOf(ctx context.Context, kind workitem.Kind, workItemID int64) ([]workitem.Component, error) {
	out := []workitem.Component{}
	for _, c := range r.store.comps {
		if c.Kind() == kind && c.WorkItemID() == workItemID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

type memNoteRepo struct {
	store *memStore
}

func (r *memNoteRepo) ListByWorkItem(ctx context.Context, kind workitem.Kind, workItemID int64) ([]workitem.Note, error) {
	out := []workitem.Note{}
	for _, n := range r.store.notes {
		if n.Kind() == kind && n.WorkItemID() == workItemID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memNoteRepo) Create(ctx context.Context, data workitem.Note) (workitem.Note, error) {
	id := r.store.next()
	note := workitem.HydrateNote(id, data.Kind(), data.WorkItemID(), data.AuthorID(), data.Body(), time.Now())
	r.store.notes[id] = note
	return note, nil
}

type memLogRepo struct {
	store *memStore
}

func (r *memLogRepo) GetByID(ctx context.Context, id int64) (workitem.WorkLog, error) {
	l, ok := r.store.logs[id]
	if !ok {
		return workitem.WorkLog{}, workitem.ErrWorklogNotFound
	}
	return l, nil
}

func (r *memLogRepo) ListByComponent(ctx context.Context, componentID int64) ([]workitem.WorkLog, error) {
	out := []workitem.WorkLog{}
	for _, l := range r.store.logs {
		if l.ComponentID() == componentID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memLogRepo) SumByComponent(ctx context.Context, componentID int64) (float64, error) {
	var sum float64
	for _, l := range r.store.logs {
		if l.ComponentID() == componentID {
			sum += l.Hours()
		}
	}
	return sum, nil
}

func (r *memLogRepo) Create(ctx context.Context, data workitem.WorkLog) (workitem.WorkLog, error) {
	id := r.store.next()
	l := workitem.HydrateWorkLog(id, data.ComponentID(), data.EmployeeID(), data.Hours(), data.LoggedOn(), data.Notes(), time.Now())
	r.store.logs[id] = l
	return l, nil
}

func (r *memLogRepo) Update(ctx context.Context, data workitem.WorkLog) error {
	if _, ok := r.store.logs[data.ID()]; !ok {
		return workitem.ErrWorklogNotFound
	}
	r.store.logs[data.ID()] = data
	return nil
}

func (r *memLogRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.store.logs[id]; !ok {
		return workitem.ErrWorklogNotFound
	}
	delete(r.store.logs, id)
	return nil
}

func (r *memLogRepo) DeleteByComponent(ctx context.Context, componentID int64) (int64, error) {
	var n int64
	for id, l := range r.store.logs {
		if l.ComponentID() == componentID {
			delete(r.store.logs, id)
			n++
		}
	}
	return n, nil
}

type memEffortRepo struct {
	mappings map[string]effort.Mapping
	lastID   int64
}

func newMemEffortRepo(tbl effort.Table) *memEffortRepo {
	r := &memEffortRepo{mappings: map[string]effort.Mapping{}}
	for componentType, hours := range tbl {
		r.lastID++
		r.mappings[componentType] = effort.HydrateMapping(r.lastID, componentType, hours, time.Now(), time.Now())
	}
	return r
}

func (r *memEffortRepo) GetAll(ctx context.Context) ([]effort.Mapping, error) {
	out := make([]effort.Mapping, 0, len(r.mappings))
	for _, m := range r.mappings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *memEffortRepo) GetByType(ctx context.Context, componentType string) (effort.Mapping, error) {
	m, ok := r.mappings[componentType]
	if !ok {
		return effort.Mapping{}, effort.ErrTypeNotFound
	}
	return m, nil
}

func (r *memEffortRepo) Create(ctx context.Context, data effort.Mapping) (effort.Mapping, error) {
	r.lastID++
	m := effort.HydrateMapping(r.lastID, data.ComponentType(), data.Hours(), time.Now(), time.Now())
	r.mappings[data.ComponentType()] = m
	return m, nil
}

func (r *memEffortRepo) Update(ctx context.Context, data effort.Mapping) error {
	for componentType, m := range r.mappings {
		if m.ID() == data.ID() {
			delete(r.mappings, componentType)
			r.mappings[data.ComponentType()] = data
			return nil
		}
	}
	return effort.ErrTypeNotFound
}

func (r *memEffortRepo) Delete(ctx context.Context, id int64) error {
	for componentType, m := range r.mappings {
		if m.ID() == id {
			delete(r.mappings, componentType)
			return nil
		}
	}
	return effort.ErrTypeNotFound
}

// memEmployeeRepo is the minimal directory needed by the visibility checks.
type memEmployeeRepo struct {
	employees []employee.Employee
}

func (m *memEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *memEmployeeRepo) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return m.employees, nil
}

func (m *memEmployeeRepo) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	return m.employees, nil
}

func (m *memEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.ID() == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (m *memEmployeeRepo) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	return data, nil
}

func (m *memEmployeeRepo) Update(ctx context.Context, data employee.Employee) error { return nil }
func (m *memEmployeeRepo) DetachReports(ctx context.Context, id int64) error        { return nil }
func (m *memEmployeeRepo) Delete(ctx context.Context, id int64) error               { return nil }
