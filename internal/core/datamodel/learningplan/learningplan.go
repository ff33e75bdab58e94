package learningplan

import "time"

type LearningPlan struct {
	ID                int64      `gorm:"primaryKey"`
	EmployeeID        int64      `gorm:"column:employee_id;not null"`
	CompletedLearning string     `gorm:"column:completed_learning;not null"`
	PlannedLearning   string     `gorm:"column:planned_learning;not null"`
	Status            string     `gorm:"column:status;default:SUBMITTED"`
	ReviewedByID      *int64     `gorm:"column:reviewed_by_id"`
	ReviewNote        *string    `gorm:"column:review_note"`
	ScheduleMeeting   *time.Time `gorm:"column:schedule_meeting;type:date"`
	QuarterDate       time.Time  `gorm:"column:quarter_date;type:date;not null"`
	EndDate           *time.Time `gorm:"column:end_date;type:date"`
	SubmittedAt       time.Time  `gorm:"column:submitted_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;default:now()"`
}

func (LearningPlan) TableName() string {
	return "learning_plans"
}
