package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
	"github.com/pulseworks/worktrack/modules/worktracking/services"
	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/httpapi"
)

type WorkItemAPIController struct {
	app      application.Application
	items    *services.WorkItemService
	worklogs *services.WorklogService
	basePath string
}

func NewWorkItemAPIController(app application.Application) application.Controller {
	return &WorkItemAPIController{
		app:      app,
		items:    app.Service(services.WorkItemService{}).(*services.WorkItemService),
		worklogs: app.Service(services.WorklogService{}).(*services.WorklogService),
		basePath: "/worktracking/api",
	}
}

func (c *WorkItemAPIController) Key() string {
	return c.basePath
}

func (c *WorkItemAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{kind:tasks|live-issues}", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{kind:tasks|live-issues}", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{kind:tasks|live-issues}/{id:[0-9]+}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{kind:tasks|live-issues}/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{kind:tasks|live-issues}/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{kind:tasks|live-issues}/{id:[0-9]+}/notes", c.ListNotes).Methods(http.MethodGet)
	router.HandleFunc("/{kind:tasks|live-issues}/{id:[0-9]+}/notes", c.AddNote).Methods(http.MethodPost)
	router.HandleFunc("/components/{id:[0-9]+}/status", c.ApplyComponentStatus).Methods(http.MethodPut)
	router.HandleFunc("/components/{id:[0-9]+}/worklogs", c.ListWorklogs).Methods(http.MethodGet)
	router.HandleFunc("/components/{id:[0-9]+}/worklogs", c.RecordWorklog).Methods(http.MethodPost)
	router.HandleFunc("/worklogs/{id:[0-9]+}", c.EditWorklog).Methods(http.MethodPut)
	router.HandleFunc("/worklogs/{id:[0-9]+}", c.DeleteWorklog).Methods(http.MethodDelete)
}

func kindFromPath(vars map[string]string) (workitem.Kind, bool) {
	switch vars["kind"] {
	case "tasks":
		return workitem.KindTask, true
	case "live-issues":
		return workitem.KindLiveIssue, true
	}
	return "", false
}

func (c *WorkItemAPIController) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}

	params := &workitem.FindParams{
		Q:      strings.TrimSpace(r.URL.Query().Get("q")),
		Status: workitem.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			params.Limit = parsed
		}
	}

	items, err := c.items.List(r.Context(), caller, kind, scopeFromQuery(r), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, workItemToMap(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *WorkItemAPIController) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid work item id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	item, err := c.items.GetByID(r.Context(), caller, kind, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workItemToMap(item))
}

func (c *WorkItemAPIController) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto workitem.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.items.Create(r.Context(), caller, kind, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workItemToMap(created))
}

func (c *WorkItemAPIController) Update(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid work item id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto workitem.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	updated, err := c.items.Update(r.Context(), caller, kind, id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workItemToMap(updated))
}

func (c *WorkItemAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid work item id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	deleted, err := c.items.Delete(r.Context(), caller, kind, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workItemToMap(deleted))
}

func (c *WorkItemAPIController) ApplyComponentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid component id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	res, err := c.items.ApplyComponentStatus(r.Context(), caller, id, body.Status)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"component": componentToMap(res.Component),
		"parent":    workItemToMap(res.Parent),
	})
}

func (c *WorkItemAPIController) ListWorklogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid component id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	logs, err := c.worklogs.ListByComponent(r.Context(), caller, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(logs))
	for _, l := range logs {
		out = append(out, workLogToMap(l))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *WorkItemAPIController) RecordWorklog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid component id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto workitem.RecordWorklogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.worklogs.Record(r.Context(), caller, id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workLogToMap(created))
}

func (c *WorkItemAPIController) EditWorklog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid worklog id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto workitem.EditWorklogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	updated, err := c.worklogs.Edit(r.Context(), caller, id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workLogToMap(updated))
}

func (c *WorkItemAPIController) DeleteWorklog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid worklog id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	res, err := c.worklogs.Delete(r.Context(), caller, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"component": componentToMap(res.Component),
		"parent":    workItemToMap(res.Parent),
	})
}

func (c *WorkItemAPIController) ListNotes(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid work item id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	notes, err := c.items.ListNotes(r.Context(), caller, kind, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToMap(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *WorkItemAPIController) AddNote(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(mux.Vars(r))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_KIND", "unknown work item kind")
		return
	}
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_ID", "invalid work item id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto workitem.AddNoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.items.AddNote(r.Context(), caller, kind, id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, noteToMap(created))
}

func workItemToMap(item workitem.WorkItem) map[string]any {
	components := make([]map[string]any, 0, len(item.Components()))
	for _, c := range item.Components() {
		components = append(components, componentToMap(c))
	}
	return map[string]any{
		"id":                 item.ID(),
		"kind":               string(item.Kind()),
		"assignedEmployeeId": item.AssignedEmployeeID(),
		"managerId":          int64OrNil(item.ManagerID()),
		"title":              item.Title(),
		"description":        item.Description(),
		"priority":           item.Priority(),
		"status":             string(item.Status()),
		"workloadHours":      item.WorkloadHours(),
		"dueDate":            timeOrNil(item.DueDate()),
		"completedAt":        timeOrNil(item.CompletedAt()),
		"components":         components,
	}
}

func componentToMap(c workitem.Component) map[string]any {
	return map[string]any{
		"id":           c.ID(),
		"workItemId":   c.WorkItemID(),
		"kind":         string(c.Kind()),
		"type":         c.ComponentType(),
		"complexity":   c.Complexity(),
		"count":        c.Count(),
		"hoursPerItem": c.HoursPerItem(),
		"totalHours":   c.TotalHours(),
		"status":       string(c.Status()),
		"completedAt":  timeOrNil(c.CompletedAt()),
		"fileRequired": c.FileRequired(),
		"fileType":     c.FileType(),
	}
}

func workLogToMap(l workitem.WorkLog) map[string]any {
	return map[string]any{
		"id":          l.ID(),
		"componentId": l.ComponentID(),
		"employeeId":  l.EmployeeID(),
		"hours":       l.Hours(),
		"date":        l.LoggedOn().Format("2006-01-02"),
		"notes":       l.Notes(),
	}
}

func noteToMap(n workitem.Note) map[string]any {
	return map[string]any{
		"id":         n.ID(),
		"workItemId": n.WorkItemID(),
		"kind":       string(n.Kind()),
		"authorId":   n.AuthorID(),
		"body":       n.Body(),
		"createdAt":  n.CreatedAt().Format(time.RFC3339),
	}
}

func int64OrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
