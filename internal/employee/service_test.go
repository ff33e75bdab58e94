package employee

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/authz"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEmployee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Module Suite")
}

type mockEmployeeRepository struct {
	employees     map[int64]*Employee
	departments   map[int64]*Department
	nextID        int64
	nextAccountID int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: make(map[int64]*Employee),
		departments: map[int64]*Department{
			1: {ID: 1, Name: "Engineering"},
			2: {ID: 2, Name: "Human Resources"},
		},
		nextID:        100,
		nextAccountID: 1000,
	}
}

func (m *mockEmployeeRepository) seed(emp *Employee) {
	m.employees[emp.ID] = emp
}

func (m *mockEmployeeRepository) hasOtherCEO(excludeID int64) bool {
	for _, emp := range m.employees {
		if emp.Role == authz.RoleCEO && emp.ID != excludeID {
			return true
		}
	}
	return false
}

func (m *mockEmployeeRepository) CreateWithAccount(account *employeeDatamodel.Account, emp *employeeDatamodel.Employee) error {
	if emp.Role == authz.RoleCEO.String() && m.hasOtherCEO(0) {
		return ErrDuplicateCEO
	}
	account.ID = m.nextAccountID
	m.nextAccountID++
	emp.ID = m.nextID
	m.nextID++
	emp.AccountID = account.ID

	m.employees[emp.ID] = &Employee{
		ID:             emp.ID,
		AccountID:      account.ID,
		Username:       account.Username,
		Email:          account.Email,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: m.departments[emp.DepartmentID].Name,
		Role:           authz.Role(emp.Role),
		ManagerID:      emp.ManagerID,
		IsActive:       account.IsActive,
		CreatedAt:      emp.CreatedAt,
		UpdatedAt:      emp.UpdatedAt,
	}
	return nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*Employee, error) {
	emp, exists := m.employees[id]
	if !exists {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) GetByAccountID(accountID int64) (*Employee, error) {
	for _, emp := range m.employees {
		if emp.AccountID == accountID {
			return emp, nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) List(filter ListFilter) ([]*Employee, error) {
	var result []*Employee
	for _, emp := range m.employees {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(emp.FirstName), needle) &&
				!strings.Contains(strings.ToLower(emp.LastName), needle) &&
				!strings.Contains(strings.ToLower(emp.Email), needle) {
				continue
			}
		}
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.Role != "" && emp.Role.String() != filter.Role {
			continue
		}
		result = append(result, emp)
	}
	return result, nil
}

func (m *mockEmployeeRepository) DirectSubordinates(managerID int64) ([]*Employee, error) {
	var result []*Employee
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepository) SubordinateCount(managerID int64) (int64, error) {
	subs, _ := m.DirectSubordinates(managerID)
	return int64(len(subs)), nil
}

func (m *mockEmployeeRepository) UpdatePlacement(id int64, departmentID int64, role authz.Role, managerID *int64) error {
	if role == authz.RoleCEO && m.hasOtherCEO(id) {
		return ErrDuplicateCEO
	}
	emp := m.employees[id]
	emp.DepartmentID = departmentID
	emp.DepartmentName = m.departments[departmentID].Name
	emp.Role = role
	emp.ManagerID = managerID
	return nil
}

func (m *mockEmployeeRepository) UpdateDepartment(id int64, departmentID int64) error {
	emp := m.employees[id]
	emp.DepartmentID = departmentID
	emp.DepartmentName = m.departments[departmentID].Name
	return nil
}

func (m *mockEmployeeRepository) GetDepartment(id int64) (*Department, error) {
	dept, exists := m.departments[id]
	if !exists {
		return nil, ErrDepartmentNotFound
	}
	return dept, nil
}

func (m *mockEmployeeRepository) ListDepartments() ([]*Department, error) {
	var result []*Department
	for _, dept := range m.departments {
		result = append(result, dept)
	}
	return result, nil
}

func (m *mockEmployeeRepository) ManagerCount() (int64, error) {
	seen := make(map[int64]bool)
	for _, emp := range m.employees {
		if emp.ManagerID != nil {
			seen[*emp.ManagerID] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *mockEmployeeRepository) DepartmentCount() (int64, error) {
	return int64(len(m.departments)), nil
}

type mockHasher struct{}

func (mockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

type mockEventBus struct {
	published []events.Event
}

func (m *mockEventBus) Publish(_ context.Context, event events.Event) {
	m.published = append(m.published, event)
}

var _ = ginkgo.Describe("Employee Service", func() {
	var (
		repo    *mockEmployeeRepository
		bus     *mockEventBus
		service *Service

		ceo       *Employee
		hr        *Employee
		manager   *Employee
		developer *Employee
		tester    *Employee
	)

	managerID := func(id int64) *int64 { return &id }

	ginkgo.BeforeEach(func() {
		repo = newMockEmployeeRepository()
		bus = &mockEventBus{}
		service = NewService(repo, mockHasher{}, bus, slog.Default())

		now := time.Now()
		ceo = &Employee{ID: 1, AccountID: 10, Username: "ceo", Email: "ceo@enkefalos.com",
			FirstName: "Grace", LastName: "Hopper", DepartmentID: 1, Role: authz.RoleCEO,
			IsActive: true, CreatedAt: now, UpdatedAt: now}
		hr = &Employee{ID: 2, AccountID: 20, Username: "hr", Email: "hr@enkefalos.com",
			FirstName: "Hana", LastName: "Reed", DepartmentID: 2, Role: authz.RoleHR,
			ManagerID: managerID(1), IsActive: true, CreatedAt: now, UpdatedAt: now}
		manager = &Employee{ID: 3, AccountID: 30, Username: "manager", Email: "manager@enkefalos.com",
			FirstName: "Mori", LastName: "Tanaka", DepartmentID: 1, Role: authz.RoleManager,
			ManagerID: managerID(1), IsActive: true, CreatedAt: now, UpdatedAt: now}
		developer = &Employee{ID: 4, AccountID: 40, Username: "dev", Email: "dev@enkefalos.com",
			FirstName: "Dana", LastName: "Voss", DepartmentID: 1, Role: authz.RoleDeveloper,
			ManagerID: managerID(3), IsActive: true, CreatedAt: now, UpdatedAt: now}
		tester = &Employee{ID: 5, AccountID: 50, Username: "tester", Email: "tester@enkefalos.com",
			FirstName: "Theo", LastName: "Silva", DepartmentID: 1, Role: authz.RoleTester,
			ManagerID: managerID(3), IsActive: true, CreatedAt: now, UpdatedAt: now}

		for _, emp := range []*Employee{ceo, hr, manager, developer, tester} {
			repo.seed(emp)
		}
	})

	newHireDTO := func() CreateEmployeeDTO {
		return CreateEmployeeDTO{
			Username:        "newhire",
			Password:        "s3cret-pass",
			ConfirmPassword: "s3cret-pass",
			Email:           "newhire@enkefalos.com",
			FirstName:       "Noor",
			LastName:        "Haddad",
			DepartmentID:    1,
			Role:            authz.RoleDeveloper.String(),
			ManagerID:       managerID(3),
		}
	}

	ginkgo.Describe("CreateEmployee", func() {
		ginkgo.It("should onboard a new employee when actor is HR", func() {
			created, hook, err := service.CreateEmployee(context.Background(), hr, newHireDTO())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.Role).To(gomega.Equal(authz.RoleDeveloper))
			gomega.Expect(created.Username).To(gomega.Equal("newhire"))
			gomega.Expect(*created.ManagerID).To(gomega.Equal(int64(3)))
			gomega.Expect(hook).ToNot(gomega.BeNil())
		})

		ginkgo.It("should publish the created event only when the hook runs", func() {
			created, hook, err := service.CreateEmployee(context.Background(), ceo, newHireDTO())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(bus.published).To(gomega.BeEmpty())

			hook()
			gomega.Expect(bus.published).To(gomega.HaveLen(1))
			gomega.Expect(bus.published[0].EventType()).To(gomega.Equal(events.EventTypeEmployeeCreated))

			event, ok := bus.published[0].(*events.EmployeeCreatedEvent)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(event.EmployeeID).To(gomega.Equal(created.ID))
			gomega.Expect(event.Email).To(gomega.Equal("newhire@enkefalos.com"))
		})

		ginkgo.It("should refuse onboarding by a manager", func() {
			_, _, err := service.CreateEmployee(context.Background(), manager, newHireDTO())

			gomega.Expect(err).To(gomega.Equal(authz.ErrNotPrivileged))
		})

		ginkgo.It("should reject mismatched password confirmation", func() {
			dto := newHireDTO()
			dto.ConfirmPassword = "different"

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			details, ok := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodePasswordMismatch)))
		})

		ginkgo.It("should refuse a second CEO", func() {
			dto := newHireDTO()
			dto.Role = authz.RoleCEO.String()
			dto.ManagerID = nil

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			gomega.Expect(err).To(gomega.Equal(ErrDuplicateCEO))
		})

		ginkgo.It("should refuse a CEO with a manager assigned", func() {
			dto := newHireDTO()
			dto.Role = authz.RoleCEO.String()

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			gomega.Expect(err).To(gomega.Equal(authz.ErrInvalidHierarchy))
		})

		ginkgo.It("should reject an unknown department", func() {
			dto := newHireDTO()
			dto.DepartmentID = 99

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			gomega.Expect(err).To(gomega.Equal(ErrDepartmentNotFound))
		})

		ginkgo.It("should reject an unknown manager reference", func() {
			dto := newHireDTO()
			dto.ManagerID = managerID(99)

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			gomega.Expect(err).To(gomega.Equal(ErrEmployeeNotFound))
		})

		ginkgo.It("should reject an invalid role", func() {
			dto := newHireDTO()
			dto.Role = "ARCHITECT"

			_, _, err := service.CreateEmployee(context.Background(), hr, dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			details, ok := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInvalidRole)))
		})
	})

	ginkgo.Describe("UpdateEmployee", func() {
		ginkgo.It("should let HR promote a developer to team lead", func() {
			dto := UpdateEmployeeDTO{DepartmentID: 1, Role: authz.RoleTeamLead.String(), ManagerID: managerID(3)}

			updated, err := service.UpdateEmployee(hr, developer.ID, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Role).To(gomega.Equal(authz.RoleTeamLead))
		})

		ginkgo.It("should never demote the CEO", func() {
			dto := UpdateEmployeeDTO{DepartmentID: 1, Role: authz.RoleManager.String()}

			_, err := service.UpdateEmployee(hr, ceo.ID, dto)

			gomega.Expect(err).To(gomega.Equal(authz.ErrDemotionForbidden))
		})

		ginkgo.It("should reject promotion to CEO that keeps a manager", func() {
			dto := UpdateEmployeeDTO{DepartmentID: 1, Role: authz.RoleCEO.String(), ManagerID: managerID(1)}

			_, err := service.UpdateEmployee(hr, manager.ID, dto)

			gomega.Expect(err).To(gomega.Equal(authz.ErrInvalidHierarchy))
		})

		ginkgo.It("should reject a second CEO on promotion", func() {
			dto := UpdateEmployeeDTO{DepartmentID: 1, Role: authz.RoleCEO.String()}

			_, err := service.UpdateEmployee(hr, manager.ID, dto)

			gomega.Expect(err).To(gomega.Equal(ErrDuplicateCEO))
		})

		ginkgo.It("should refuse updates from non-privileged actors", func() {
			dto := UpdateEmployeeDTO{DepartmentID: 1, Role: authz.RoleDeveloper.String()}

			_, err := service.UpdateEmployee(developer, tester.ID, dto)

			gomega.Expect(err).To(gomega.Equal(authz.ErrNotPrivileged))
		})
	})

	ginkgo.Describe("UpdateProfile", func() {
		ginkgo.It("should change only the actor's department", func() {
			updated, err := service.UpdateProfile(developer, UpdateProfileDTO{DepartmentID: 2})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.DepartmentID).To(gomega.Equal(int64(2)))
			gomega.Expect(updated.Role).To(gomega.Equal(authz.RoleDeveloper))
		})

		ginkgo.It("should reject an unknown department", func() {
			_, err := service.UpdateProfile(developer, UpdateProfileDTO{DepartmentID: 42})

			gomega.Expect(err).To(gomega.Equal(ErrDepartmentNotFound))
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should let an employee read their own record", func() {
			found, err := service.GetByID(developer, developer.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(found.ID).To(gomega.Equal(developer.ID))
		})

		ginkgo.It("should let the direct manager read a subordinate", func() {
			_, err := service.GetByID(manager, developer.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should let HR read anyone", func() {
			_, err := service.GetByID(hr, tester.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should refuse a peer", func() {
			_, err := service.GetByID(developer, tester.ID)

			gomega.Expect(err).To(gomega.Equal(authz.ErrAccessDenied))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should return the full directory to privileged actors", func() {
			employees, err := service.List(ceo, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(employees).To(gomega.HaveLen(5))
		})

		ginkgo.It("should filter by search term", func() {
			employees, err := service.List(hr, ListFilter{Search: "voss"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(employees).To(gomega.HaveLen(1))
			gomega.Expect(employees[0].ID).To(gomega.Equal(developer.ID))
		})

		ginkgo.It("should return only the caller's record to everyone else", func() {
			employees, err := service.List(developer, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(employees).To(gomega.HaveLen(1))
			gomega.Expect(employees[0].ID).To(gomega.Equal(developer.ID))
		})
	})

	ginkgo.Describe("DirectSubordinates", func() {
		ginkgo.It("should list the actor's direct reports", func() {
			subs, err := service.DirectSubordinates(manager)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(subs).To(gomega.HaveLen(2))
		})

		ginkgo.It("should count them", func() {
			count, err := service.SubordinateCount(manager)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.Equal(int64(2)))
		})
	})
})
