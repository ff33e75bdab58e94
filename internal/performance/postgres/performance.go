package postgres

import (
	"time"

	perfDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/performance"
	"github.com/frahmantamala/hr-management/internal/performance"
	"gorm.io/gorm"
)

// PerformanceRepository implements performance.RepositoryAPI using GORM.
type PerformanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) performance.RepositoryAPI {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Create(review *perfDatamodel.PerformanceReview) error {
	return r.db.Create(review).Error
}

func (r *PerformanceRepository) GetByID(id int64) (*performance.PerformanceReview, error) {
	var row perfDatamodel.PerformanceReview
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, performance.ErrReviewNotFound
		}
		return nil, err
	}
	return r.withEmployeeName(performance.FromDataModel(&row)), nil
}

func (r *PerformanceRepository) UpdateSelfReview(id int64, dto performance.SelfReviewDTO) error {
	return r.db.Model(&perfDatamodel.PerformanceReview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"responsibilities":           dto.Responsibilities,
			"responsibility_self_review": dto.ResponsibilitySelfReview,
			"communication":              dto.Communication,
			"communication_self_review":  dto.CommunicationSelfReview,
			"quality":                    dto.Quality,
			"quality_self_review":        dto.QualitySelfReview,
			"accountability":             dto.Accountability,
			"accountability_self_review": dto.AccountabilitySelfReview,
			"updated_at":                 time.Now(),
		}).Error
}

// UpdateGrade writes ratings, grader and the derived graded status in one
// update. Comments are only overwritten when provided.
func (r *PerformanceRepository) UpdateGrade(id int64, ratings performance.Ratings, comments *string, gradedByID *int64, graded performance.GradeStatus) error {
	updates := map[string]interface{}{
		"responsibility_rating": ratings.Responsibility,
		"communication_rating":  ratings.Communication,
		"quality_rating":        ratings.Quality,
		"accountability_rating": ratings.Accountability,
		"graded_by_id":          gradedByID,
		"graded":                graded.String(),
		"updated_at":            time.Now(),
	}
	if comments != nil {
		updates["comments"] = *comments
	}
	return r.db.Model(&perfDatamodel.PerformanceReview{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *PerformanceRepository) ListByEmployee(employeeID int64) ([]*performance.PerformanceReview, error) {
	var rows []*perfDatamodel.PerformanceReview
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return performance.FromDataModelSlice(rows), nil
}

func (r *PerformanceRepository) ListByManager(managerID int64) ([]*performance.PerformanceReview, error) {
	var rows []*perfDatamodel.PerformanceReview
	err := r.db.
		Joins("JOIN employees ON employees.id = performance_reviews.employee_id").
		Where("employees.manager_id = ?", managerID).
		Order("performance_reviews.graded ASC, performance_reviews.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withEmployeeNames(performance.FromDataModelSlice(rows)), nil
}

func (r *PerformanceRepository) PendingCountForManager(managerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&perfDatamodel.PerformanceReview{}).
		Joins("JOIN employees ON employees.id = performance_reviews.employee_id").
		Where("employees.manager_id = ? AND performance_reviews.graded = ?", managerID, performance.GradePending.String()).
		Count(&count).Error
	return count, err
}

func (r *PerformanceRepository) withEmployeeName(review *performance.PerformanceReview) *performance.PerformanceReview {
	var name struct {
		FirstName string
		LastName  string
	}
	err := r.db.Table("employees").
		Select("accounts.first_name, accounts.last_name").
		Joins("JOIN accounts ON accounts.id = employees.account_id").
		Where("employees.id = ?", review.EmployeeID).
		Scan(&name).Error
	if err == nil && name.FirstName != "" {
		review.EmployeeName = name.FirstName + " " + name.LastName
	}
	return review
}

func (r *PerformanceRepository) withEmployeeNames(reviews []*performance.PerformanceReview) []*performance.PerformanceReview {
	for _, review := range reviews {
		r.withEmployeeName(review)
	}
	return reviews
}
