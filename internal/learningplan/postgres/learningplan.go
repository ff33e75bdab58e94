package postgres

import (
	"time"

	planDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/learningplan"
	"github.com/frahmantamala/hr-management/internal/learningplan"
	"gorm.io/gorm"
)

// LearningPlanRepository implements learningplan.RepositoryAPI using GORM.
type LearningPlanRepository struct {
	db *gorm.DB
}

func NewLearningPlanRepository(db *gorm.DB) learningplan.RepositoryAPI {
	return &LearningPlanRepository{db: db}
}

func (r *LearningPlanRepository) Create(plan *planDatamodel.LearningPlan) error {
	return r.db.Create(plan).Error
}

func (r *LearningPlanRepository) GetByID(id int64) (*learningplan.LearningPlan, error) {
	var row planDatamodel.LearningPlan
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, learningplan.ErrPlanNotFound
		}
		return nil, err
	}
	return r.withEmployeeName(learningplan.FromDataModel(&row)), nil
}

func (r *LearningPlanRepository) UpdateContent(id int64, completed, planned string, quarterDate, endDate time.Time) error {
	return r.db.Model(&planDatamodel.LearningPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed_learning": completed,
			"planned_learning":   planned,
			"quarter_date":       quarterDate,
			"end_date":           endDate,
			"submitted_at":       time.Now(),
			"updated_at":         time.Now(),
		}).Error
}

// UpdateReview overwrites the review fields from the input. A review without
// a note or meeting clears any prior values.
func (r *LearningPlanRepository) UpdateReview(id int64, status learningplan.Status, reviewedByID *int64, reviewNote *string, scheduleMeeting *time.Time) error {
	return r.db.Model(&planDatamodel.LearningPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status.String(),
			"reviewed_by_id":   reviewedByID,
			"review_note":      reviewNote,
			"schedule_meeting": scheduleMeeting,
			"updated_at":       time.Now(),
		}).Error
}

func (r *LearningPlanRepository) ListAll() ([]*learningplan.LearningPlan, error) {
	var rows []*planDatamodel.LearningPlan
	if err := r.db.Order("submitted_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withEmployeeNames(learningplan.FromDataModelSlice(rows)), nil
}

func (r *LearningPlanRepository) ListByEmployee(employeeID int64) ([]*learningplan.LearningPlan, error) {
	var rows []*planDatamodel.LearningPlan
	err := r.db.Where("employee_id = ?", employeeID).
		Order("submitted_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return learningplan.FromDataModelSlice(rows), nil
}

// ListByManager returns plans belonging to the manager's direct reports,
// ordered by status so the review queue groups alike states.
func (r *LearningPlanRepository) ListByManager(managerID int64) ([]*learningplan.LearningPlan, error) {
	var rows []*planDatamodel.LearningPlan
	err := r.db.
		Joins("JOIN employees ON employees.id = learning_plans.employee_id").
		Where("employees.manager_id = ?", managerID).
		Order("learning_plans.status ASC, learning_plans.submitted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withEmployeeNames(learningplan.FromDataModelSlice(rows)), nil
}

func (r *LearningPlanRepository) MeetingsForEmployee(employeeID int64) ([]*learningplan.LearningPlan, error) {
	var rows []*planDatamodel.LearningPlan
	err := r.db.Where("employee_id = ? AND schedule_meeting IS NOT NULL", employeeID).
		Order("schedule_meeting ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return learningplan.FromDataModelSlice(rows), nil
}

func (r *LearningPlanRepository) withEmployeeName(plan *learningplan.LearningPlan) *learningplan.LearningPlan {
	var name struct {
		FirstName string
		LastName  string
	}
	err := r.db.Table("employees").
		Select("accounts.first_name, accounts.last_name").
		Joins("JOIN accounts ON accounts.id = employees.account_id").
		Where("employees.id = ?", plan.EmployeeID).
		Scan(&name).Error
	if err == nil && name.FirstName != "" {
		plan.EmployeeName = name.FirstName + " " + name.LastName
	}
	return plan
}

func (r *LearningPlanRepository) withEmployeeNames(plans []*learningplan.LearningPlan) []*learningplan.LearningPlan {
	for _, plan := range plans {
		r.withEmployeeName(plan)
	}
	return plans
}
