package postgres

import (
	"strings"
	"time"

	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/authz"
	"github.com/frahmantamala/hr-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

// CreateWithAccount writes the account and the employee in one transaction.
// The CEO singleton is checked inside the transaction; a partial unique
// index on role='CEO' backstops it at the storage level.
func (r *EmployeeRepository) CreateWithAccount(account *employeeDatamodel.Account, emp *employeeDatamodel.Employee) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if emp.Role == authz.RoleCEO.String() {
			var count int64
			if err := tx.Model(&employeeDatamodel.Employee{}).
				Where("role = ?", authz.RoleCEO.String()).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return employee.ErrDuplicateCEO
			}
		}

		if err := tx.Create(account).Error; err != nil {
			return err
		}
		emp.AccountID = account.ID
		return tx.Create(emp).Error
	})
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Preload("Account").Preload("Department").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) GetByAccountID(accountID int64) (*employee.Employee, error) {
	var row employeeDatamodel.Employee
	err := r.db.Preload("Account").Preload("Department").
		Where("account_id = ?", accountID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&row), nil
}

func (r *EmployeeRepository) List(filter employee.ListFilter) ([]*employee.Employee, error) {
	query := r.db.Model(&employeeDatamodel.Employee{}).
		Joins("JOIN accounts ON accounts.id = employees.account_id")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(accounts.first_name) LIKE ? OR LOWER(accounts.last_name) LIKE ? OR LOWER(accounts.email) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.DepartmentID != nil {
		query = query.Where("employees.department_id = ?", *filter.DepartmentID)
	}
	if filter.Role != "" {
		query = query.Where("employees.role = ?", filter.Role)
	}

	var rows []*employeeDatamodel.Employee
	err := query.Preload("Account").Preload("Department").
		Order("employees.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) DirectSubordinates(managerID int64) ([]*employee.Employee, error) {
	var rows []*employeeDatamodel.Employee
	err := r.db.Preload("Account").Preload("Department").
		Where("manager_id = ?", managerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(rows), nil
}

func (r *EmployeeRepository) SubordinateCount(managerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

// UpdatePlacement applies department, role and manager in one transaction,
// re-checking CEO uniqueness when the change promotes to CEO.
func (r *EmployeeRepository) UpdatePlacement(id int64, departmentID int64, role authz.Role, managerID *int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if role == authz.RoleCEO {
			var count int64
			if err := tx.Model(&employeeDatamodel.Employee{}).
				Where("role = ? AND id <> ?", authz.RoleCEO.String(), id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return employee.ErrDuplicateCEO
			}
		}

		return tx.Model(&employeeDatamodel.Employee{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"department_id": departmentID,
				"role":          role.String(),
				"manager_id":    managerID,
				"updated_at":    time.Now(),
			}).Error
	})
}

func (r *EmployeeRepository) UpdateDepartment(id int64, departmentID int64) error {
	return r.db.Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"department_id": departmentID,
			"updated_at":    time.Now(),
		}).Error
}

func (r *EmployeeRepository) GetDepartment(id int64) (*employee.Department, error) {
	var row employeeDatamodel.Department
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrDepartmentNotFound
		}
		return nil, err
	}
	return employee.DepartmentFromDataModel(&row), nil
}

func (r *EmployeeRepository) ListDepartments() ([]*employee.Department, error) {
	var rows []*employeeDatamodel.Department
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*employee.Department, len(rows))
	for i, row := range rows {
		result[i] = employee.DepartmentFromDataModel(row)
	}
	return result, nil
}

func (r *EmployeeRepository) ManagerCount() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("manager_id IS NOT NULL").
		Distinct("manager_id").
		Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) DepartmentCount() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Distinct("department_id").
		Count(&count).Error
	return count, err
}
