package learningplan

import (
	"fmt"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	planDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/learningplan"
)

// Status is the review state of a learning plan. A plan starts as SUBMITTED
// and moves freely between states under reviewer control; there is no
// enforced transition order.
type Status string

const (
	StatusSubmitted Status = "SUBMITTED"
	StatusReview    Status = "REVIEW"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusPending   Status = "PENDING"
)

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusSubmitted, StatusReview, StatusApproved, StatusRejected, StatusPending:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unknown learning plan status: %q", raw)
}

// PlanPeriodDays is how long a quarterly learning plan runs from its quarter
// start date.
const PlanPeriodDays = 90

// EndDateFor derives the plan end date from the quarter start date. The end
// date is never stored independently of the quarter date.
func EndDateFor(quarterDate time.Time) time.Time {
	return quarterDate.AddDate(0, 0, PlanPeriodDays)
}

var (
	ErrPlanNotFound = internal.NewNotFoundError("learning plan not found", internal.ErrCodePlanNotFound)
)

// LearningPlan is the domain view of a quarterly learning plan, joined with
// the owning employee for display.
type LearningPlan struct {
	ID                int64      `json:"id"`
	EmployeeID        int64      `json:"employee_id"`
	EmployeeName      string     `json:"employee_name,omitempty"`
	CompletedLearning string     `json:"completed_learning"`
	PlannedLearning   string     `json:"planned_learning"`
	Status            Status     `json:"status"`
	ReviewedByID      *int64     `json:"reviewed_by_id,omitempty"`
	ReviewNote        *string    `json:"review_note,omitempty"`
	ScheduleMeeting   *time.Time `json:"schedule_meeting,omitempty"`
	QuarterDate       time.Time  `json:"quarter_date"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	SubmittedAt       time.Time  `json:"submitted_at"`
}

func FromDataModel(row *planDatamodel.LearningPlan) *LearningPlan {
	return &LearningPlan{
		ID:                row.ID,
		EmployeeID:        row.EmployeeID,
		CompletedLearning: row.CompletedLearning,
		PlannedLearning:   row.PlannedLearning,
		Status:            Status(row.Status),
		ReviewedByID:      row.ReviewedByID,
		ReviewNote:        row.ReviewNote,
		ScheduleMeeting:   row.ScheduleMeeting,
		QuarterDate:       row.QuarterDate,
		EndDate:           row.EndDate,
		SubmittedAt:       row.SubmittedAt,
	}
}

func FromDataModelSlice(rows []*planDatamodel.LearningPlan) []*LearningPlan {
	plans := make([]*LearningPlan, len(rows))
	for i, row := range rows {
		plans[i] = FromDataModel(row)
	}
	return plans
}

// StatusCounts summarizes a manager's subordinate plans by state.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Review   int `json:"review"`
}

func CountByStatus(plans []*LearningPlan) StatusCounts {
	var counts StatusCounts
	for _, p := range plans {
		switch p.Status {
		case StatusPending:
			counts.Pending++
		case StatusApproved:
			counts.Approved++
		case StatusReview:
			counts.Review++
		}
	}
	return counts
}
