package employee

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal/authz"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, postCommit, err := h.Service.CreateEmployee(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	// The write is committed once the service returns; fire the welcome
	// notification hook only now.
	if postCommit != nil {
		postCommit()
	}

	h.Logger.Info("CreateEmployee: employee onboarded",
		"employee_id", created.ID,
		"role", created.Role,
		"actor_id", actor.ID)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	emp, err := h.Service.GetByID(actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) GetCurrentEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, actor)
}

// UpdateEmployee dispatches on the actor's role the way the original edit
// form did: privileged actors edit placement (department, role, manager) on
// any employee, everyone else may only move their own department.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if authz.IsPrivileged(actor.AuthzView()) {
		var dto UpdateEmployeeDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := h.Service.UpdateEmployee(actor, id, dto)
		if err != nil {
			h.Logger.Error("UpdateEmployee: service error", "error", err, "target_id", id, "actor_id", actor.ID)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, updated)
		return
	}

	if id != actor.ID {
		h.WriteError(w, http.StatusForbidden, "you can only update your own profile")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Role:   r.URL.Query().Get("role"),
	}
	if deptStr := r.URL.Query().Get("department_id"); deptStr != "" {
		if deptID, err := strconv.ParseInt(deptStr, 10, 64); err == nil {
			filter.DepartmentID = &deptID
		}
	}

	employees, err := h.Service.List(actor, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employees": employees,
	})
}

func (h *Handler) GetSubordinates(w http.ResponseWriter, r *http.Request) {
	actor, ok := FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	subordinates, err := h.Service.DirectSubordinates(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subordinates": subordinates,
		"count":        len(subordinates),
	})
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.Departments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
	})
}
