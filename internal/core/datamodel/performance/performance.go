package performance

import "time"

type PerformanceReview struct {
	ID         int64 `gorm:"primaryKey"`
	EmployeeID int64 `gorm:"column:employee_id;not null"`

	Responsibilities         string `gorm:"column:responsibilities;not null"`
	ResponsibilitySelfReview string `gorm:"column:responsibility_self_review;not null"`
	Communication            string `gorm:"column:communication;not null"`
	CommunicationSelfReview  string `gorm:"column:communication_self_review;not null"`
	Quality                  string `gorm:"column:quality;not null"`
	QualitySelfReview        string `gorm:"column:quality_self_review;not null"`
	Accountability           string `gorm:"column:accountability;not null"`
	AccountabilitySelfReview string `gorm:"column:accountability_self_review;not null"`

	Comments             *string  `gorm:"column:comments"`
	GradedByID           *int64   `gorm:"column:graded_by_id"`
	ResponsibilityRating *float64 `gorm:"column:responsibility_rating;type:decimal(3,1)"`
	CommunicationRating  *float64 `gorm:"column:communication_rating;type:decimal(3,1)"`
	QualityRating        *float64 `gorm:"column:quality_rating;type:decimal(3,1)"`
	AccountabilityRating *float64 `gorm:"column:accountability_rating;type:decimal(3,1)"`
	Graded               string   `gorm:"column:graded;default:PENDING"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (PerformanceReview) TableName() string {
	return "performance_reviews"
}
