package employee

import (
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/authz"
)

// CreateEmployeeDTO carries the onboarding payload: account credentials plus
// the employee's organizational placement.
type CreateEmployeeDTO struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DepartmentID    int64  `json:"department_id"`
	Role            string `json:"role"`
	ManagerID       *int64 `json:"manager_id,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password != dto.ConfirmPassword {
		return internal.NewValidationFieldError("confirm_password", "passwords do not match", internal.ErrCodePasswordMismatch)
	}
	if strings.TrimSpace(dto.Email) == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationFieldError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.FirstName) == "" {
		return internal.NewValidationFieldError("first_name", "first name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.LastName) == "" {
		return internal.NewValidationFieldError("last_name", "last name is required", internal.ErrCodeValidationFailed)
	}
	if dto.DepartmentID <= 0 {
		return internal.NewValidationFieldError("department_id", "department is required", internal.ErrCodeValidationFailed)
	}
	if _, err := authz.ParseRole(dto.Role); err != nil {
		return internal.NewValidationFieldError("role", err.Error(), internal.ErrCodeInvalidRole)
	}
	return nil
}

// UpdateEmployeeDTO is the admin-side edit: department, role and reporting
// line. Self-service edits only apply the department field.
type UpdateEmployeeDTO struct {
	DepartmentID int64  `json:"department_id"`
	Role         string `json:"role"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.DepartmentID <= 0 {
		return internal.NewValidationFieldError("department_id", "department is required", internal.ErrCodeValidationFailed)
	}
	if _, err := authz.ParseRole(dto.Role); err != nil {
		return internal.NewValidationFieldError("role", err.Error(), internal.ErrCodeInvalidRole)
	}
	return nil
}

// UpdateProfileDTO is what an employee may change on their own record.
type UpdateProfileDTO struct {
	DepartmentID int64 `json:"department_id"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.DepartmentID <= 0 {
		return internal.NewValidationFieldError("department_id", "department is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ListFilter narrows the employee directory. Search matches a
// case-insensitive substring of first name, last name or email.
type ListFilter struct {
	Search       string
	DepartmentID *int64
	Role         string
}

type DashboardSummary struct {
	PendingReviews   int64      `json:"pending_reviews"`
	SubordinateCount int64      `json:"subordinate_count"`
	ManagerCount     int64      `json:"manager_count"`
	DepartmentCount  int64      `json:"department_count"`
	AverageRating    *float64   `json:"average_rating,omitempty"`
	UpcomingMeetings []*Meeting `json:"upcoming_meetings"`
}

// Meeting is a scheduled learning-plan meeting surfaced on the dashboard.
type Meeting struct {
	PlanID      int64  `json:"plan_id"`
	ScheduledOn string `json:"scheduled_on"`
}
