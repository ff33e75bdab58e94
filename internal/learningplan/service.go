package learningplan

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/authz"
	planDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/learningplan"
	"github.com/frahmantamala/hr-management/internal/employee"
)

type RepositoryAPI interface {
	Create(plan *planDatamodel.LearningPlan) error
	GetByID(id int64) (*LearningPlan, error)
	UpdateContent(id int64, completed, planned string, quarterDate, endDate time.Time) error
	UpdateReview(id int64, status Status, reviewedByID *int64, reviewNote *string, scheduleMeeting *time.Time) error
	ListAll() ([]*LearningPlan, error)
	ListByEmployee(employeeID int64) ([]*LearningPlan, error)
	ListByManager(managerID int64) ([]*LearningPlan, error)
	MeetingsForEmployee(employeeID int64) ([]*LearningPlan, error)
}

// EmployeeDirectory resolves plan owners for authorization decisions.
type EmployeeDirectory interface {
	GetByID(id int64) (*employee.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	directory EmployeeDirectory
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, directory EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

// Submit creates a new quarterly plan for the acting employee. The end date
// is derived from the quarter date, never taken from the caller.
func (s *Service) Submit(actor *employee.Employee, dto SubmitDTO) (*LearningPlan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	quarterDate := dto.ParsedQuarterDate()
	endDate := EndDateFor(quarterDate)
	now := time.Now()

	row := &planDatamodel.LearningPlan{
		EmployeeID:        actor.ID,
		CompletedLearning: dto.CompletedLearning,
		PlannedLearning:   dto.PlannedLearning,
		Status:            StatusSubmitted.String(),
		QuarterDate:       quarterDate,
		EndDate:           &endDate,
		SubmittedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create learning plan", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.logger.Info("learning plan submitted", "plan_id", row.ID, "employee_id", actor.ID)
	return s.repo.GetByID(row.ID)
}

// UpdateOwn lets the plan owner rewrite the learning content. The review
// fields are untouched; the end date follows the quarter date.
func (s *Service) UpdateOwn(actor *employee.Employee, planID int64, dto SubmitDTO) (*LearningPlan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.repo.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan.EmployeeID != actor.ID {
		s.logger.Warn("learning plan edit denied", "plan_id", planID, "actor_id", actor.ID)
		return nil, authz.ErrAccessDenied
	}

	quarterDate := dto.ParsedQuarterDate()
	if err := s.repo.UpdateContent(planID, dto.CompletedLearning, dto.PlannedLearning, quarterDate, EndDateFor(quarterDate)); err != nil {
		s.logger.Error("failed to update learning plan", "error", err, "plan_id", planID)
		return nil, err
	}

	return s.repo.GetByID(planID)
}

// Review applies a manager's decision to a subordinate's plan. Only the
// owner's direct manager may review; approving stamps the reviewer on the
// plan.
func (s *Service) Review(actor *employee.Employee, planID int64, dto ReviewDTO) (*LearningPlan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.repo.GetByID(planID)
	if err != nil {
		return nil, err
	}

	owner, err := s.directory.GetByID(plan.EmployeeID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanReviewLearningPlan(actor.AuthzView(), owner.AuthzView()); err != nil {
		s.logger.Warn("learning plan review denied",
			"plan_id", planID,
			"actor_id", actor.ID,
			"owner_id", owner.ID)
		return nil, err
	}

	status, _ := ParseStatus(dto.Status)
	reviewedByID := plan.ReviewedByID
	if status == StatusApproved {
		reviewedByID = &actor.ID
	}

	if err := s.repo.UpdateReview(planID, status, reviewedByID, dto.ReviewNote, dto.ParsedMeetingDate()); err != nil {
		s.logger.Error("failed to review learning plan", "error", err, "plan_id", planID)
		return nil, err
	}

	s.logger.Info("learning plan reviewed",
		"plan_id", planID,
		"status", status,
		"actor_id", actor.ID)

	return s.repo.GetByID(planID)
}

// Get returns a plan to its owner, the owner's direct manager, or a
// privileged actor.
func (s *Service) Get(actor *employee.Employee, planID int64) (*LearningPlan, error) {
	plan, err := s.repo.GetByID(planID)
	if err != nil {
		return nil, err
	}

	if plan.EmployeeID == actor.ID {
		return plan, nil
	}

	owner, err := s.directory.GetByID(plan.EmployeeID)
	if err != nil {
		return nil, err
	}

	actorView := actor.AuthzView()
	if !authz.IsDirectManager(actorView, owner.AuthzView()) && !authz.IsPrivileged(actorView) {
		s.logger.Warn("learning plan read denied", "plan_id", planID, "actor_id", actor.ID)
		return nil, authz.ErrAccessDenied
	}

	return plan, nil
}

// ListForActor returns every plan for privileged actors and only the
// caller's own plans otherwise, plus the caller's count of approved plans.
func (s *Service) ListForActor(actor *employee.Employee) (plans []*LearningPlan, activePlans int, err error) {
	if authz.IsPrivileged(actor.AuthzView()) {
		plans, err = s.repo.ListAll()
	} else {
		plans, err = s.repo.ListByEmployee(actor.ID)
	}
	if err != nil {
		s.logger.Error("failed to list learning plans", "error", err, "actor_id", actor.ID)
		return nil, 0, err
	}

	own, err := s.repo.ListByEmployee(actor.ID)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range own {
		if p.Status == StatusApproved {
			activePlans++
		}
	}
	return plans, activePlans, nil
}

// ListSubordinatePlans returns the plans of the actor's direct reports,
// ordered by status, with per-status counts for the review queue.
func (s *Service) ListSubordinatePlans(actor *employee.Employee) ([]*LearningPlan, StatusCounts, error) {
	plans, err := s.repo.ListByManager(actor.ID)
	if err != nil {
		s.logger.Error("failed to list subordinate plans", "error", err, "actor_id", actor.ID)
		return nil, StatusCounts{}, err
	}
	return plans, CountByStatus(plans), nil
}

// UpcomingMeetings returns the actor's plans that have a meeting scheduled.
func (s *Service) UpcomingMeetings(actor *employee.Employee) ([]*LearningPlan, error) {
	return s.repo.MeetingsForEmployee(actor.ID)
}
