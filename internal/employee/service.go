package employee

import (
	"context"
	"log/slog"
	"time"

	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/authz"
	"github.com/frahmantamala/hr-management/internal/core/events"
)

// RepositoryAPI is the data access contract for employees. CreateWithAccount
// and UpdatePlacement run inside a single transaction and enforce the CEO
// singleton against the store, so the check and the write cannot be split by
// a concurrent promotion.
type RepositoryAPI interface {
	CreateWithAccount(account *employeeDatamodel.Account, emp *employeeDatamodel.Employee) error
	GetByID(id int64) (*Employee, error)
	GetByAccountID(accountID int64) (*Employee, error)
	List(filter ListFilter) ([]*Employee, error)
	DirectSubordinates(managerID int64) ([]*Employee, error)
	SubordinateCount(managerID int64) (int64, error)
	UpdatePlacement(id int64, departmentID int64, role authz.Role, managerID *int64) error
	UpdateDepartment(id int64, departmentID int64) error
	GetDepartment(id int64) (*Department, error)
	ListDepartments() ([]*Department, error)
	ManagerCount() (int64, error)
	DepartmentCount() (int64, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// PostCommitHook is returned by mutating operations whose side effects must
// only fire after the write is durably committed. The caller runs it once
// the operation has returned successfully; the hook itself never fails the
// operation.
type PostCommitHook func()

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		bus:    bus,
		logger: logger,
	}
}

// CreateEmployee onboards a new employee: account and employee record are
// written as one unit, both-or-neither. Returns a post-commit hook that
// publishes the employee.created event for the welcome mail.
func (s *Service) CreateEmployee(ctx context.Context, actor *Employee, dto CreateEmployeeDTO) (*Employee, PostCommitHook, error) {
	if err := authz.CanManageEmployees(actor.AuthzView()); err != nil {
		s.logger.Warn("create employee denied", "actor_id", actor.ID, "actor_role", actor.Role)
		return nil, nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "actor_id", actor.ID)
		return nil, nil, err
	}

	role, _ := authz.ParseRole(dto.Role)
	if role == authz.RoleCEO && dto.ManagerID != nil {
		return nil, nil, authz.ErrInvalidHierarchy
	}

	if _, err := s.repo.GetDepartment(dto.DepartmentID); err != nil {
		return nil, nil, ErrDepartmentNotFound
	}

	if dto.ManagerID != nil {
		if _, err := s.repo.GetByID(*dto.ManagerID); err != nil {
			s.logger.Error("manager lookup failed", "error", err, "manager_id", *dto.ManagerID)
			return nil, nil, ErrEmployeeNotFound
		}
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, nil, err
	}

	now := time.Now()
	account := &employeeDatamodel.Account{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	emp := &employeeDatamodel.Employee{
		DepartmentID: dto.DepartmentID,
		Role:         role.String(),
		ManagerID:    dto.ManagerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateWithAccount(account, emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "actor_id", actor.ID)
		return nil, nil, err
	}

	created, err := s.repo.GetByID(emp.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("employee created",
		"employee_id", created.ID,
		"role", created.Role,
		"department_id", created.DepartmentID,
		"actor_id", actor.ID)

	hook := func() {
		s.bus.Publish(ctx, events.NewEmployeeCreatedEvent(
			created.ID, created.FullName(), created.Email, created.Role.String(), created.DepartmentName))
	}
	return created, hook, nil
}

// UpdateEmployee is the privileged edit of department, role and reporting
// line. Role-change invariants are enforced here and the CEO singleton is
// re-checked transactionally by the repository.
func (s *Service) UpdateEmployee(actor *Employee, targetID int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := authz.CanManageEmployees(actor.AuthzView()); err != nil {
		s.logger.Warn("update employee denied", "actor_id", actor.ID, "target_id", targetID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	newRole, _ := authz.ParseRole(dto.Role)
	if err := authz.CanChangeRole(target.AuthzView(), newRole, dto.ManagerID); err != nil {
		s.logger.Warn("role change rejected",
			"actor_id", actor.ID,
			"target_id", targetID,
			"current_role", target.Role,
			"new_role", newRole)
		return nil, err
	}

	if _, err := s.repo.GetDepartment(dto.DepartmentID); err != nil {
		return nil, ErrDepartmentNotFound
	}

	if dto.ManagerID != nil {
		if _, err := s.repo.GetByID(*dto.ManagerID); err != nil {
			return nil, ErrEmployeeNotFound
		}
	}

	if err := s.repo.UpdatePlacement(targetID, dto.DepartmentID, newRole, dto.ManagerID); err != nil {
		s.logger.Error("failed to update employee", "error", err, "target_id", targetID)
		return nil, err
	}

	updated, err := s.repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated",
		"employee_id", targetID,
		"role", updated.Role,
		"actor_id", actor.ID)

	return updated, nil
}

// UpdateProfile is the self-service edit; only the department may change.
func (s *Service) UpdateProfile(actor *Employee, dto UpdateProfileDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetDepartment(dto.DepartmentID); err != nil {
		return nil, ErrDepartmentNotFound
	}

	if err := s.repo.UpdateDepartment(actor.ID, dto.DepartmentID); err != nil {
		s.logger.Error("failed to update profile", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	return s.repo.GetByID(actor.ID)
}

// GetByID returns an employee record to the record owner, their direct
// manager, or a privileged actor.
func (s *Service) GetByID(actor *Employee, id int64) (*Employee, error) {
	target, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	actorView := actor.AuthzView()
	targetView := target.AuthzView()
	if !authz.IsSelf(actorView, targetView) &&
		!authz.IsDirectManager(actorView, targetView) &&
		!authz.IsPrivileged(actorView) {
		s.logger.Warn("employee read denied", "actor_id", actor.ID, "target_id", id)
		return nil, authz.ErrAccessDenied
	}

	return target, nil
}

// List returns the directory for privileged actors (with search and filter
// support) and only the caller's own record for everyone else.
func (s *Service) List(actor *Employee, filter ListFilter) ([]*Employee, error) {
	if !authz.IsPrivileged(actor.AuthzView()) {
		self, err := s.repo.GetByID(actor.ID)
		if err != nil {
			return nil, err
		}
		return []*Employee{self}, nil
	}

	employees, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// DirectSubordinates resolves the actor's direct reports.
func (s *Service) DirectSubordinates(actor *Employee) ([]*Employee, error) {
	return s.repo.DirectSubordinates(actor.ID)
}

func (s *Service) SubordinateCount(actor *Employee) (int64, error) {
	return s.repo.SubordinateCount(actor.ID)
}

// GetByAccountID resolves the employee bound to a login account. Used by the
// auth middleware to build the acting employee.
func (s *Service) GetByAccountID(accountID int64) (*Employee, error) {
	emp, err := s.repo.GetByAccountID(accountID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) Departments() ([]*Department, error) {
	return s.repo.ListDepartments()
}

// OrgCounts returns distinct manager and department counts for the dashboard.
func (s *Service) OrgCounts() (managers int64, departments int64, err error) {
	managers, err = s.repo.ManagerCount()
	if err != nil {
		return 0, 0, err
	}
	departments, err = s.repo.DepartmentCount()
	if err != nil {
		return 0, 0, err
	}
	return managers, departments, nil
}
