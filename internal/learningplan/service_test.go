package learningplan

import (
	"log/slog"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/authz"
	planDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/learningplan"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestLearningPlan(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Learning Plan Module Suite")
}

type mockPlanRepository struct {
	plans  map[int64]*planDatamodel.LearningPlan
	nextID int64
}

func newMockPlanRepository() *mockPlanRepository {
	return &mockPlanRepository{
		plans:  make(map[int64]*planDatamodel.LearningPlan),
		nextID: 1,
	}
}

func (m *mockPlanRepository) Create(plan *planDatamodel.LearningPlan) error {
	plan.ID = m.nextID
	m.nextID++
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

func (m *mockPlanRepository) GetByID(id int64) (*LearningPlan, error) {
	row, exists := m.plans[id]
	if !exists {
		return nil, ErrPlanNotFound
	}
	return FromDataModel(row), nil
}

func (m *mockPlanRepository) UpdateContent(id int64, completed, planned string, quarterDate, endDate time.Time) error {
	row := m.plans[id]
	row.CompletedLearning = completed
	row.PlannedLearning = planned
	row.QuarterDate = quarterDate
	row.EndDate = &endDate
	return nil
}

func (m *mockPlanRepository) UpdateReview(id int64, status Status, reviewedByID *int64, reviewNote *string, scheduleMeeting *time.Time) error {
	row := m.plans[id]
	row.Status = status.String()
	row.ReviewedByID = reviewedByID
	row.ReviewNote = reviewNote
	row.ScheduleMeeting = scheduleMeeting
	return nil
}

func (m *mockPlanRepository) ListAll() ([]*LearningPlan, error) {
	var plans []*LearningPlan
	for _, row := range m.plans {
		plans = append(plans, FromDataModel(row))
	}
	return plans, nil
}

func (m *mockPlanRepository) ListByEmployee(employeeID int64) ([]*LearningPlan, error) {
	var plans []*LearningPlan
	for _, row := range m.plans {
		if row.EmployeeID == employeeID {
			plans = append(plans, FromDataModel(row))
		}
	}
	return plans, nil
}

func (m *mockPlanRepository) ListByManager(managerID int64) ([]*LearningPlan, error) {
	// The directory below wires employees 2 and 3 to manager 1.
	var plans []*LearningPlan
	for _, row := range m.plans {
		if row.EmployeeID == 2 || row.EmployeeID == 3 {
			if managerID == 1 {
				plans = append(plans, FromDataModel(row))
			}
		}
	}
	return plans, nil
}

func (m *mockPlanRepository) MeetingsForEmployee(employeeID int64) ([]*LearningPlan, error) {
	var plans []*LearningPlan
	for _, row := range m.plans {
		if row.EmployeeID == employeeID && row.ScheduleMeeting != nil {
			plans = append(plans, FromDataModel(row))
		}
	}
	return plans, nil
}

type mockDirectory struct {
	employees map[int64]*employee.Employee
}

func (m *mockDirectory) GetByID(id int64) (*employee.Employee, error) {
	emp, exists := m.employees[id]
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func int64Ptr(v int64) *int64 { return &v }

var _ = ginkgo.Describe("LearningPlanService", func() {
	var (
		service   *Service
		mockRepo  *mockPlanRepository
		directory *mockDirectory

		manager   *employee.Employee
		developer *employee.Employee
		tester    *employee.Employee
		hr        *employee.Employee
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockPlanRepository()

		manager = &employee.Employee{ID: 1, AccountID: 11, Role: authz.RoleManager}
		developer = &employee.Employee{ID: 2, AccountID: 12, Role: authz.RoleDeveloper, ManagerID: int64Ptr(1)}
		tester = &employee.Employee{ID: 3, AccountID: 13, Role: authz.RoleTester, ManagerID: int64Ptr(1)}
		hr = &employee.Employee{ID: 4, AccountID: 14, Role: authz.RoleHR}

		directory = &mockDirectory{employees: map[int64]*employee.Employee{
			1: manager, 2: developer, 3: tester, 4: hr,
		}}

		service = NewService(mockRepo, directory, slog.Default())
	})

	ginkgo.Describe("Submit", func() {
		ginkgo.It("should create a plan in SUBMITTED state", func() {
			dto := SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "2026-01-01",
			}

			plan, err := service.Submit(developer, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plan.Status).To(gomega.Equal(StatusSubmitted))
			gomega.Expect(plan.EmployeeID).To(gomega.Equal(developer.ID))
		})

		ginkgo.It("should derive the end date 90 days after the quarter date", func() {
			dto := SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "2026-01-01",
			}

			plan, err := service.Submit(developer, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plan.EndDate).ToNot(gomega.BeNil())
			gomega.Expect(plan.EndDate.Format("2006-01-02")).To(gomega.Equal("2026-04-01"))
		})

		ginkgo.It("should reject empty planned learning", func() {
			dto := SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "  ",
			}

			_, err := service.Submit(developer, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should flag a malformed quarter date with the invalid date code", func() {
			dto := SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "01-01-2026",
			}

			_, err := service.Submit(developer, dto)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			details, ok := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("quarter_date"))
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInvalidDate)))
		})
	})

	ginkgo.Describe("UpdateOwn", func() {
		var planID int64

		ginkgo.BeforeEach(func() {
			plan, err := service.Submit(developer, SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "2026-01-01",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			planID = plan.ID
		})

		ginkgo.It("should let the owner rewrite the content", func() {
			updated, err := service.UpdateOwn(developer, planID, SubmitDTO{
				CompletedLearning: "Go fundamentals and testing",
				PlannedLearning:   "Distributed systems",
				QuarterDate:       "2026-01-01",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.PlannedLearning).To(gomega.Equal("Distributed systems"))
		})

		ginkgo.It("should deny edits by anyone who is not the owner", func() {
			_, err := service.UpdateOwn(tester, planID, SubmitDTO{
				CompletedLearning: "hijacked",
				PlannedLearning:   "hijacked",
			})

			gomega.Expect(err).To(gomega.Equal(authz.ErrAccessDenied))
		})

		ginkgo.It("should recompute the end date when the quarter date moves", func() {
			updated, err := service.UpdateOwn(developer, planID, SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "2026-04-01",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.EndDate.Format("2006-01-02")).To(gomega.Equal("2026-06-30"))
		})
	})

	ginkgo.Describe("Review", func() {
		var planID int64

		ginkgo.BeforeEach(func() {
			plan, err := service.Submit(developer, SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
				QuarterDate:       "2026-01-01",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			planID = plan.ID
		})

		ginkgo.It("should let the direct manager approve and stamp the reviewer", func() {
			note := "good progress"
			reviewed, err := service.Review(manager, planID, ReviewDTO{
				Status:     StatusApproved.String(),
				ReviewNote: &note,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reviewed.Status).To(gomega.Equal(StatusApproved))
			gomega.Expect(reviewed.ReviewedByID).ToNot(gomega.BeNil())
			gomega.Expect(*reviewed.ReviewedByID).To(gomega.Equal(manager.ID))
		})

		ginkgo.It("should not stamp the reviewer on a rejection", func() {
			reviewed, err := service.Review(manager, planID, ReviewDTO{
				Status: StatusRejected.String(),
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reviewed.Status).To(gomega.Equal(StatusRejected))
			gomega.Expect(reviewed.ReviewedByID).To(gomega.BeNil())
		})

		ginkgo.It("should deny review by a non-manager peer", func() {
			_, err := service.Review(tester, planID, ReviewDTO{
				Status: StatusApproved.String(),
			})

			gomega.Expect(err).To(gomega.Equal(authz.ErrNotDirectManager))
		})

		ginkgo.It("should deny review by HR when they are not the direct manager", func() {
			_, err := service.Review(hr, planID, ReviewDTO{
				Status: StatusApproved.String(),
			})

			gomega.Expect(err).To(gomega.Equal(authz.ErrNotDirectManager))
		})

		ginkgo.It("should record a scheduled meeting", func() {
			meeting := "2026-02-15"
			reviewed, err := service.Review(manager, planID, ReviewDTO{
				Status:          StatusReview.String(),
				ScheduleMeeting: &meeting,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reviewed.ScheduleMeeting).ToNot(gomega.BeNil())
			gomega.Expect(reviewed.ScheduleMeeting.Format("2006-01-02")).To(gomega.Equal(meeting))
		})

		ginkgo.It("should clear a prior note and meeting when a later review omits them", func() {
			note := "needs a follow-up"
			meeting := "2026-02-15"
			_, err := service.Review(manager, planID, ReviewDTO{
				Status:          StatusReview.String(),
				ReviewNote:      &note,
				ScheduleMeeting: &meeting,
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			reviewed, err := service.Review(manager, planID, ReviewDTO{
				Status: StatusApproved.String(),
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(reviewed.ReviewNote).To(gomega.BeNil())
			gomega.Expect(reviewed.ScheduleMeeting).To(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown status", func() {
			_, err := service.Review(manager, planID, ReviewDTO{
				Status: "DONE",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should flag a malformed meeting date with the invalid date code", func() {
			meeting := "15/02/2026"
			_, err := service.Review(manager, planID, ReviewDTO{
				Status:          StatusReview.String(),
				ScheduleMeeting: &meeting,
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			details, ok := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("schedule_meeting"))
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInvalidDate)))
		})
	})

	ginkgo.Describe("Get", func() {
		var planID int64

		ginkgo.BeforeEach(func() {
			plan, err := service.Submit(developer, SubmitDTO{
				CompletedLearning: "Go fundamentals",
				PlannedLearning:   "Concurrency patterns",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			planID = plan.ID
		})

		ginkgo.It("should allow the owner", func() {
			_, err := service.Get(developer, planID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should allow the direct manager", func() {
			_, err := service.Get(manager, planID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should allow HR", func() {
			_, err := service.Get(hr, planID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should deny an unrelated peer", func() {
			_, err := service.Get(tester, planID)
			gomega.Expect(err).To(gomega.Equal(authz.ErrAccessDenied))
		})

		ginkgo.It("should report a missing plan with the not-found code", func() {
			_, err := service.Get(developer, 9999)

			gomega.Expect(err).To(gomega.Equal(ErrPlanNotFound))
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePlanNotFound))
		})
	})

	ginkgo.Describe("ListSubordinatePlans", func() {
		ginkgo.BeforeEach(func() {
			for _, emp := range []*employee.Employee{developer, tester} {
				_, err := service.Submit(emp, SubmitDTO{
					CompletedLearning: "Go fundamentals",
					PlannedLearning:   "Concurrency patterns",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			}

			plans, _, err := service.ListSubordinatePlans(manager)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Review(manager, plans[0].ID, ReviewDTO{Status: StatusApproved.String()})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should count plans per status", func() {
			plans, counts, err := service.ListSubordinatePlans(manager)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plans).To(gomega.HaveLen(2))
			gomega.Expect(counts.Approved).To(gomega.Equal(1))
			gomega.Expect(counts.Pending).To(gomega.Equal(0))
		})

		ginkgo.It("should return nothing for a manager with no reports", func() {
			plans, counts, err := service.ListSubordinatePlans(hr)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(plans).To(gomega.BeEmpty())
			gomega.Expect(counts).To(gomega.Equal(StatusCounts{}))
		})
	})
})
