package performance

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

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SelfReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.Service.Create(actor, dto)
	if err != nil {
		h.Logger.Error("CreateReview: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid review ID")
		return
	}

	var dto SelfReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.Service.SelfEdit(actor, reviewID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) GradeReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid review ID")
		return
	}

	var dto GradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, postCommit, err := h.Service.Grade(r.Context(), actor, reviewID, dto)
	if err != nil {
		h.Logger.Error("GradeReview: service error", "error", err, "review_id", reviewID, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	if postCommit != nil {
		postCommit()
	}

	h.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid review ID")
		return
	}

	var dto GradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, postCommit, err := h.Service.UpdateGrade(r.Context(), actor, reviewID, dto)
	if err != nil {
		h.Logger.Error("UpdateGrade: service error", "error", err, "review_id", reviewID, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	if postCommit != nil {
		postCommit()
	}

	h.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid review ID")
		return
	}

	review, err := h.Service.Get(actor, reviewID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) ListOwnReviews(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviews, err := h.Service.ListOwn(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
	})
}

func (h *Handler) ListSubordinateReviews(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviews, pendingGrading, err := h.Service.ListSubordinateReviews(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviews":         reviews,
		"pending_grading": pendingGrading,
	})
}
