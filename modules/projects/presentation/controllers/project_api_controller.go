package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/pulseworks/worktrack/modules/projects/domain/aggregates/project"
	"github.com/pulseworks/worktrack/modules/projects/services"
	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/httpapi"
)

type ProjectAPIController struct {
	app      application.Application
	projects *services.ProjectService
	basePath string
}

func NewProjectAPIController(app application.Application) application.Controller {
	return &ProjectAPIController{
		app:      app,
		projects: app.Service(services.ProjectService{}).(*services.ProjectService),
		basePath: "/projects/api",
	}
}

func (c *ProjectAPIController) Key() string {
	return c.basePath
}

func (c *ProjectAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/projects", c.List).Methods(http.MethodGet)
	router.HandleFunc("/projects", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/projects/summary", c.Summary).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id:[0-9]+}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/projects/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/projects/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/projects/{id:[0-9]+}/changelog", c.ChangeLog).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	_ = httpapi.WriteError(w, status, code, message, nil)
}

func pathInt64(vars map[string]string, name string) (int64, bool) {
	v, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (c *ProjectAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &project.FindParams{
		Priority:      strings.TrimSpace(r.URL.Query().Get("priority")),
		OnTrackStatus: strings.TrimSpace(r.URL.Query().Get("onTrackStatus")),
		Q:             strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("stage")); raw != "" {
		stage, ok := project.ParseStage(raw)
		if !ok {
			writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_STAGE", "unknown stage")
			return
		}
		params.Stage = stage
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}

	items, err := c.projects.List(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, p := range items {
		out = append(out, projectToMap(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ProjectAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_ID", "invalid project id")
		return
	}
	p, err := c.projects.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToMap(p))
}

func (c *ProjectAPIController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto project.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.projects.Create(r.Context(), caller, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectToMap(created))
}

func (c *ProjectAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_ID", "invalid project id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	var dto project.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	updated, err := c.projects.Update(r.Context(), caller, id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToMap(updated))
}

func (c *ProjectAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_ID", "invalid project id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	deleted, err := c.projects.Delete(r.Context(), caller, id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectToMap(deleted))
}

func (c *ProjectAPIController) ChangeLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "PROJECTS_INVALID_ID", "invalid project id")
		return
	}
	entries, err := c.projects.ChangeLog(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		out = append(out, map[string]any{
			"id":        entry.ID().String(),
			"projectId": entry.ProjectID(),
			"actorId":   entry.ActorID(),
			"field":     entry.Field(),
			"oldValue":  entry.OldValue(),
			"newValue":  entry.NewValue(),
			"createdAt": entry.CreatedAt().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *ProjectAPIController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.projects.Summary(r.Context())
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func projectToMap(p project.Project) map[string]any {
	return map[string]any{
		"id":              p.ID(),
		"name":            p.Name(),
		"description":     p.Description(),
		"priority":        p.Priority(),
		"platform":        p.Platform(),
		"stage":           string(p.Stage()),
		"startDate":       dateOrNil(p.StartDate()),
		"plannedEndDate":  dateOrNil(p.PlannedEndDate()),
		"sprintStartDate": dateOrNil(p.SprintStartDate()),
		"sprintEndDate":   dateOrNil(p.SprintEndDate()),
		"uatReleaseDate":  dateOrNil(p.UATReleaseDate()),
		"goLiveDate":      dateOrNil(p.GoLiveDate()),
		"onTrackStatus":   p.OnTrackStatus(),
		"manDays":         p.ManDays(),
	}
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
