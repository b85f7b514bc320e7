package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	"github.com/pulseworks/worktrack/modules/directory/services"
	"github.com/pulseworks/worktrack/pkg/application"
	"github.com/pulseworks/worktrack/pkg/composables"
	"github.com/pulseworks/worktrack/pkg/httpapi"
)

type EmployeeAPIController struct {
	app        application.Application
	employees  *services.EmployeeService
	visibility *services.VisibilityService
	basePath   string
}

func NewEmployeeAPIController(app application.Application) application.Controller {
	return &EmployeeAPIController{
		app:        app,
		employees:  app.Service(services.EmployeeService{}).(*services.EmployeeService),
		visibility: app.Service(services.VisibilityService{}).(*services.VisibilityService),
		basePath:   "/directory/api",
	}
}

func (c *EmployeeAPIController) Key() string {
	return c.basePath
}

func (c *EmployeeAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/employees", c.List).Methods(http.MethodGet)
	router.HandleFunc("/employees/{id:[0-9]+}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/employees", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/employees/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/employees/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/visibility", c.VisibleSet).Methods(http.MethodGet)
}

func scopeFromQuery(r *http.Request) services.Scope {
	return services.Scope{
		LTID:            queryInt64(r, "ltId"),
		ALTID:           queryInt64(r, "altId"),
		ManagerID:       queryInt64(r, "managerId"),
		TLID:            queryInt64(r, "tlId"),
		ApplicationName: strings.TrimSpace(r.URL.Query().Get("applicationName")),
	}
}

func (c *EmployeeAPIController) List(w http.ResponseWriter, r *http.Request) {
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}

	visible, err := c.visibility.ResolveVisibleSet(r.Context(), caller, scopeFromQuery(r))
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	limit := 20
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	items, err := c.employees.GetPaginated(r.Context(), &employee.FindParams{
		Q:     strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	})
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, e := range items {
		if !visible.Contains(e.ID()) {
			continue
		}
		out = append(out, employeeToMap(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *EmployeeAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_ID", "invalid employee id")
		return
	}
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	if err := c.visibility.Authorize(r.Context(), caller, id, scopeFromQuery(r)); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	e, err := c.employees.GetByID(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeToMap(e))
}

func (c *EmployeeAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto employee.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	created, err := c.employees.Create(r.Context(), &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeToMap(created))
}

func (c *EmployeeAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_ID", "invalid employee id")
		return
	}
	var dto employee.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		writeAPIError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", errs.First().Message)
		return
	}
	updated, err := c.employees.Update(r.Context(), id, &dto)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeToMap(updated))
}

func (c *EmployeeAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(mux.Vars(r), "id")
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "DIRECTORY_INVALID_ID", "invalid employee id")
		return
	}
	deleted, err := c.employees.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
			return
		}
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeToMap(deleted))
}

func (c *EmployeeAPIController) VisibleSet(w http.ResponseWriter, r *http.Request) {
	caller, err := composables.UseCaller(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing caller identity")
		return
	}
	set, err := c.visibility.ResolveVisibleSet(r.Context(), caller, scopeFromQuery(r))
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employeeIds": set.Slice()})
}

func employeeToMap(e employee.Employee) map[string]any {
	return map[string]any{
		"id":              e.ID(),
		"name":            e.Name(),
		"designation":     e.Designation(),
		"role":            string(e.Role()),
		"reportsTo":       e.ReportsTo(),
		"managerId":       e.ManagerID(),
		"applicationName": e.ApplicationName(),
	}
}
