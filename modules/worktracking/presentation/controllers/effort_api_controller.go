package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/effort"
	"github.com/pulseworks/worktrack/modules/worktracking/services"
	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/httpapi"
)

type EffortAPIController struct {
	app      application.Application
	tables   *services.EffortTableService
	basePath string
}

func NewEffortAPIController(app application.Application) application.Controller {
	return &EffortAPIController{
		app:      app,
		tables:   app.Service(services.EffortTableService{}).(*services.EffortTableService),
		basePath: "/worktracking/api/effort-types",
	}
}

func (c *EffortAPIController) Key() string {
	return c.basePath
}

func (c *EffortAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{type}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{type}", c.Delete).Methods(http.MethodDelete)
}

func (c *EffortAPIController) List(w http.ResponseWriter, r *http.Request) {
	mappings, err := c.tables.GetAll(r.Context())
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, mappingToMap(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *EffortAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto effort.CreateMappingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.tables.Create(r.Context(), &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappingToMap(created))
}

func (c *EffortAPIController) Update(w http.ResponseWriter, r *http.Request) {
	componentType := mux.Vars(r)["type"]
	var dto effort.UpdateMappingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "WORKTRACKING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	updated, err := c.tables.Update(r.Context(), componentType, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappingToMap(updated))
}

func (c *EffortAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	componentType := mux.Vars(r)["type"]
	deleted, err := c.tables.Delete(r.Context(), componentType)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappingToMap(deleted))
}

func mappingToMap(m effort.Mapping) map[string]any {
	return map[string]any{
		"id":            m.ID(),
		"componentType": m.ComponentType(),
		"hours":         m.Hours(),
	}
}
