package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated = "employee.created"
	EventTypeReviewGraded    = "review.graded"
)

type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func NewEmployeeCreatedEvent(employeeID int64, fullName, email, role, department string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"full_name":   fullName,
				"email":       email,
				"role":        role,
				"department":  department,
			},
		},
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
		Role:       role,
		Department: department,
	}
}

type ReviewGradedEvent struct {
	BaseEvent
	ReviewID     int64    `json:"review_id"`
	EmployeeID   int64    `json:"employee_id"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	AverageScore *float64 `json:"average_score,omitempty"`
	GradedByName string   `json:"graded_by_name"`
}

func NewReviewGradedEvent(reviewID, employeeID int64, fullName, email string, averageScore *float64, gradedByName string) *ReviewGradedEvent {
	data := map[string]interface{}{
		"review_id":      reviewID,
		"employee_id":    employeeID,
		"full_name":      fullName,
		"email":          email,
		"graded_by_name": gradedByName,
	}
	if averageScore != nil {
		data["average_score"] = *averageScore
	}

	return &ReviewGradedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeReviewGraded,
			Timestamp: time.Now(),
			Data:      data,
		},
		ReviewID:     reviewID,
		EmployeeID:   employeeID,
		FullName:     fullName,
		Email:        email,
		AverageScore: averageScore,
		GradedByName: gradedByName,
	}
}
