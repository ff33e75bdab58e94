package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/authz"
)

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Employee is the domain view of an employee joined with the owning account
// and department.
type Employee struct {
	ID             int64      `json:"id"`
	AccountID      int64      `json:"account_id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DepartmentID   int64      `json:"department_id"`
	DepartmentName string     `json:"department_name"`
	Role           authz.Role `json:"role"`
	ManagerID      *int64     `json:"manager_id,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AuthzView projects the fields the authorization policy decides on.
func (e *Employee) AuthzView() authz.Employee {
	return authz.Employee{
		EmployeeID: e.ID,
		AccountID:  e.AccountID,
		Role:       e.Role,
		ManagerID:  e.ManagerID,
	}
}

var (
	ErrEmployeeNotFound   = internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	ErrDepartmentNotFound = internal.NewNotFoundError("department not found", internal.ErrCodeValidationFailed)
	ErrDuplicateCEO       = internal.NewConflictError("there can only be one CEO in the organization", internal.ErrCodeDuplicateCEO)
)

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	domain := &Employee{
		ID:           e.ID,
		AccountID:    e.AccountID,
		DepartmentID: e.DepartmentID,
		Role:         authz.Role(e.Role),
		ManagerID:    e.ManagerID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Account != nil {
		domain.Username = e.Account.Username
		domain.Email = e.Account.Email
		domain.FirstName = e.Account.FirstName
		domain.LastName = e.Account.LastName
		domain.IsActive = e.Account.IsActive
	}
	if e.Department != nil {
		domain.DepartmentName = e.Department.Name
	}
	return domain
}

func FromDataModelSlice(rows []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}

func DepartmentFromDataModel(d *employeeDatamodel.Department) *Department {
	return &Department{ID: d.ID, Name: d.Name}
}
