package learningplan

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal/employee"
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

func (h *Handler) SubmitPlan(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.Service.Submit(actor, dto)
	if err != nil {
		h.Logger.Error("SubmitPlan: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, plan)
}

func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	planID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.Service.UpdateOwn(actor, planID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) ReviewPlan(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	planID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	var dto ReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.Service.Review(actor, planID, dto)
	if err != nil {
		h.Logger.Error("ReviewPlan: service error", "error", err, "plan_id", planID, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	planID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid plan ID")
		return
	}

	plan, err := h.Service.Get(actor, planID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	plans, activePlans, err := h.Service.ListForActor(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plans":        plans,
		"active_plans": activePlans,
	})
}

func (h *Handler) ListSubordinatePlans(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	plans, counts, err := h.Service.ListSubordinatePlans(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"plans":  plans,
		"counts": counts,
	})
}
