package performance

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal/authz"
	perfDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/performance"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/employee"
)

type RepositoryAPI interface {
	Create(review *perfDatamodel.PerformanceReview) error
	GetByID(id int64) (*PerformanceReview, error)
	UpdateSelfReview(id int64, dto SelfReviewDTO) error
	UpdateGrade(id int64, ratings Ratings, comments *string, gradedByID *int64, graded GradeStatus) error
	ListByEmployee(employeeID int64) ([]*PerformanceReview, error)
	ListByManager(managerID int64) ([]*PerformanceReview, error)
	PendingCountForManager(managerID int64) (int64, error)
}

// EmployeeDirectory resolves review owners for authorization and
// notification payloads.
type EmployeeDirectory interface {
	GetByID(id int64) (*employee.Employee, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// PostCommitHook fires side effects once the grading write has committed.
type PostCommitHook func()

type Service struct {
	repo      RepositoryAPI
	directory EmployeeDirectory
	bus       EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, directory EmployeeDirectory, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		bus:       bus,
		logger:    logger,
	}
}

// Create submits the actor's self-review. The CEO sits outside the grading
// hierarchy and does not submit reviews.
func (s *Service) Create(actor *employee.Employee, dto SelfReviewDTO) (*PerformanceReview, error) {
	if actor.Role == authz.RoleCEO {
		s.logger.Warn("performance review create denied for CEO", "actor_id", actor.ID)
		return nil, ErrCEOCannotSubmit
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &perfDatamodel.PerformanceReview{
		EmployeeID:               actor.ID,
		Responsibilities:         dto.Responsibilities,
		ResponsibilitySelfReview: dto.ResponsibilitySelfReview,
		Communication:            dto.Communication,
		CommunicationSelfReview:  dto.CommunicationSelfReview,
		Quality:                  dto.Quality,
		QualitySelfReview:        dto.QualitySelfReview,
		Accountability:           dto.Accountability,
		AccountabilitySelfReview: dto.AccountabilitySelfReview,
		Graded:                   GradePending.String(),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create performance review", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.logger.Info("performance review submitted", "review_id", row.ID, "employee_id", actor.ID)
	return s.repo.GetByID(row.ID)
}

// SelfEdit lets the reviewee rewrite their half of the review, but only
// while no rating has been set.
func (s *Service) SelfEdit(actor *employee.Employee, reviewID int64, dto SelfReviewDTO) (*PerformanceReview, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	owner, err := s.directory.GetByID(review.EmployeeID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanEditOwnReview(actor.AuthzView(), owner.AuthzView(), review.Ratings.Any()); err != nil {
		s.logger.Warn("performance review edit denied", "review_id", reviewID, "actor_id", actor.ID)
		return nil, err
	}

	if err := s.repo.UpdateSelfReview(reviewID, dto); err != nil {
		s.logger.Error("failed to update performance review", "error", err, "review_id", reviewID)
		return nil, err
	}

	return s.repo.GetByID(reviewID)
}

// Grade applies the initial supervisor grading. Only the reviewee's direct
// manager may grade; the grader is stamped on the review regardless of
// whether a comment was left. Once all four ratings are in, the returned
// hook publishes the graded event for the notification mail.
func (s *Service) Grade(ctx context.Context, actor *employee.Employee, reviewID int64, dto GradeDTO) (*PerformanceReview, PostCommitHook, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.directory.GetByID(review.EmployeeID)
	if err != nil {
		return nil, nil, err
	}

	if err := authz.CanGrade(actor.AuthzView(), owner.AuthzView()); err != nil {
		s.logger.Warn("performance grading denied",
			"review_id", reviewID,
			"actor_id", actor.ID,
			"owner_id", owner.ID)
		return nil, nil, err
	}

	ratings := dto.Ratings()
	graded := DeriveGraded(ratings)

	if err := s.repo.UpdateGrade(reviewID, ratings, dto.Comments, &actor.ID, graded); err != nil {
		s.logger.Error("failed to grade performance review", "error", err, "review_id", reviewID)
		return nil, nil, err
	}

	updated, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("performance review graded",
		"review_id", reviewID,
		"graded", updated.Graded,
		"actor_id", actor.ID)

	return updated, s.gradedHook(ctx, updated, owner, actor), nil
}

// UpdateGrade corrects an existing grade. The reviewee's direct manager or a
// privileged actor may do this, and only after the review is fully graded.
// The grader stamp only moves when the correction carries a comment.
func (s *Service) UpdateGrade(ctx context.Context, actor *employee.Employee, reviewID int64, dto GradeDTO) (*PerformanceReview, PostCommitHook, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.directory.GetByID(review.EmployeeID)
	if err != nil {
		return nil, nil, err
	}

	if err := authz.CanUpdateGrade(actor.AuthzView(), owner.AuthzView(), review.Graded == GradeGraded); err != nil {
		s.logger.Warn("grade update denied",
			"review_id", reviewID,
			"actor_id", actor.ID,
			"owner_id", owner.ID)
		return nil, nil, err
	}

	gradedByID := review.GradedByID
	if dto.Comments != nil && strings.TrimSpace(*dto.Comments) != "" {
		gradedByID = &actor.ID
	}

	ratings := dto.Ratings()
	graded := DeriveGraded(ratings)

	if err := s.repo.UpdateGrade(reviewID, ratings, dto.Comments, gradedByID, graded); err != nil {
		s.logger.Error("failed to update grade", "error", err, "review_id", reviewID)
		return nil, nil, err
	}

	updated, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("performance grade updated",
		"review_id", reviewID,
		"graded", updated.Graded,
		"actor_id", actor.ID)

	return updated, s.gradedHook(ctx, updated, owner, actor), nil
}

func (s *Service) gradedHook(ctx context.Context, review *PerformanceReview, owner, grader *employee.Employee) PostCommitHook {
	if review.Graded != GradeGraded {
		return nil
	}
	return func() {
		s.bus.Publish(ctx, events.NewReviewGradedEvent(
			review.ID, owner.ID, owner.FullName(), owner.Email,
			review.AverageScore, grader.FullName()))
	}
}

// Get returns a review to the reviewee, their direct manager, or a
// privileged actor.
func (s *Service) Get(actor *employee.Employee, reviewID int64) (*PerformanceReview, error) {
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}

	owner, err := s.directory.GetByID(review.EmployeeID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanReadPerformance(actor.AuthzView(), owner.AuthzView()); err != nil {
		s.logger.Warn("performance review read denied", "review_id", reviewID, "actor_id", actor.ID)
		return nil, err
	}

	return review, nil
}

// ListOwn returns the actor's own reviews.
func (s *Service) ListOwn(actor *employee.Employee) ([]*PerformanceReview, error) {
	return s.repo.ListByEmployee(actor.ID)
}

// ListSubordinateReviews returns the reviews of the actor's direct reports
// with the count still awaiting a grade.
func (s *Service) ListSubordinateReviews(actor *employee.Employee) (reviews []*PerformanceReview, pendingGrading int64, err error) {
	reviews, err = s.repo.ListByManager(actor.ID)
	if err != nil {
		s.logger.Error("failed to list subordinate reviews", "error", err, "actor_id", actor.ID)
		return nil, 0, err
	}
	pendingGrading, err = s.repo.PendingCountForManager(actor.ID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, pendingGrading, nil
}

// PendingCount reports how many of the actor's subordinate reviews await
// grading. Used by the dashboard.
func (s *Service) PendingCount(actor *employee.Employee) (int64, error) {
	return s.repo.PendingCountForManager(actor.ID)
}

// LatestAverage returns the average score of the actor's most recent fully
// graded review, or nil when none exists. Used by the dashboard.
func (s *Service) LatestAverage(actor *employee.Employee) (*float64, error) {
	reviews, err := s.repo.ListByEmployee(actor.ID)
	if err != nil {
		return nil, err
	}
	for _, review := range reviews {
		if review.AverageScore != nil {
			return review.AverageScore, nil
		}
	}
	return nil, nil
}
