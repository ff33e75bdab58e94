package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/learningplan"
	"github.com/frahmantamala/hr-management/internal/performance"
	"github.com/frahmantamala/hr-management/internal/transport"
)

// DashboardHandler composes the landing-page summary from the feature
// services: organization counts, the caller's review queue and their
// scheduled learning-plan meetings.
type DashboardHandler struct {
	*transport.BaseHandler
	Employees     *employee.Service
	LearningPlans *learningplan.Service
	Reviews       *performance.Service
}

func NewDashboardHandler(employees *employee.Service, plans *learningplan.Service, reviews *performance.Service, lg *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:   transport.NewBaseHandler(lg),
		Employees:     employees,
		LearningPlans: plans,
		Reviews:       reviews,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.FromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	managers, departments, err := h.Employees.OrgCounts()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	subordinates, err := h.Employees.SubordinateCount(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	pendingReviews, err := h.Reviews.PendingCount(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	avgRating, err := h.Reviews.LatestAverage(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	plans, err := h.LearningPlans.UpcomingMeetings(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	meetings := make([]*employee.Meeting, 0, len(plans))
	for _, plan := range plans {
		if plan.ScheduleMeeting == nil {
			continue
		}
		meetings = append(meetings, &employee.Meeting{
			PlanID:      plan.ID,
			ScheduledOn: plan.ScheduleMeeting.Format("2006-01-02"),
		})
	}

	summary := employee.DashboardSummary{
		PendingReviews:   pendingReviews,
		SubordinateCount: subordinates,
		ManagerCount:     managers,
		DepartmentCount:  departments,
		AverageRating:    avgRating,
		UpcomingMeetings: meetings,
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
