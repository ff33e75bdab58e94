package authz

import (
	"github.com/frahmantamala/hr-management/internal"
)

// Employee is the slice of an employee record that authorization decisions
// depend on. Feature services build it from their loaded entities for both
// the acting employee and the target's owner.
type Employee struct {
	EmployeeID int64
	AccountID  int64
	Role       Role
	ManagerID  *int64
}

var (
	ErrAccessDenied = internal.NewForbiddenError("you do not have access to this resource", internal.ErrCodeAccessDenied)

	ErrNotOwner = internal.NewForbiddenError("you can only edit your own performance review", internal.ErrCodeAccessDenied)

	ErrAlreadyGraded = internal.NewForbiddenError("cannot edit after supervisor has graded", internal.ErrCodeAccessDenied)

	ErrNotDirectManager = internal.NewForbiddenError("you can only act on your direct subordinates", internal.ErrCodeAccessDenied)

	ErrNotYetGraded = internal.NewConflictError("this review has not been graded yet", internal.ErrCodeInvalidState)

	ErrDemotionForbidden = internal.NewConflictError("the CEO role cannot be changed", internal.ErrCodeDemotionForbidden)

	ErrInvalidHierarchy = internal.NewConflictError("CEO cannot report to anyone", internal.ErrCodeInvalidHierarchy)

	ErrNotPrivileged = internal.NewForbiddenError("CEO or HR role required", internal.ErrCodeAccessDenied)
)

func IsSelf(actor, target Employee) bool {
	return actor.AccountID == target.AccountID
}

func IsPrivileged(actor Employee) bool {
	return actor.Role.Privileged()
}

func IsDirectManager(actor, target Employee) bool {
	return target.ManagerID != nil && *target.ManagerID == actor.EmployeeID
}

// CanManageEmployees gates onboarding and admin-side employee edits.
func CanManageEmployees(actor Employee) error {
	if !IsPrivileged(actor) {
		return ErrNotPrivileged
	}
	return nil
}

// CanReadPerformance allows the reviewee, their direct manager, and
// privileged roles to view a performance review.
func CanReadPerformance(actor, owner Employee) error {
	if IsSelf(actor, owner) || IsDirectManager(actor, owner) || IsPrivileged(actor) {
		return nil
	}
	return ErrAccessDenied
}

// CanEditOwnReview allows the reviewee to edit the self-authored fields only
// while no rating has been set. The two denial reasons are distinct so the
// caller can tell the reviewee why the edit was refused.
func CanEditOwnReview(actor, owner Employee, anyRatingSet bool) error {
	if !IsSelf(actor, owner) {
		return ErrNotOwner
	}
	if anyRatingSet {
		return ErrAlreadyGraded
	}
	return nil
}

// CanGrade restricts the initial grading of a review to the reviewee's
// direct manager. Privileged roles get read access but not the initial
// grade action.
func CanGrade(actor, owner Employee) error {
	if !IsDirectManager(actor, owner) {
		return ErrNotDirectManager
	}
	return nil
}

// CanUpdateGrade allows correcting an existing grade: direct manager or a
// privileged role, and only once the review is fully graded.
func CanUpdateGrade(actor, owner Employee, fullyGraded bool) error {
	if !IsDirectManager(actor, owner) && !IsPrivileged(actor) {
		return ErrNotDirectManager
	}
	if !fullyGraded {
		return ErrNotYetGraded
	}
	return nil
}

// CanReviewLearningPlan restricts learning-plan review to the direct manager.
func CanReviewLearningPlan(actor, owner Employee) error {
	if !IsDirectManager(actor, owner) {
		return ErrNotDirectManager
	}
	return nil
}

// CanChangeRole enforces the role-edit invariants on the target employee.
// A CEO can never be demoted, by anyone, including themselves; a promotion
// to CEO cannot carry a manager reference. CEO uniqueness is checked against
// the store by the employee service inside the same transaction.
func CanChangeRole(target Employee, newRole Role, newManagerID *int64) error {
	if target.Role == RoleCEO && newRole != RoleCEO {
		return ErrDemotionForbidden
	}
	if newRole == RoleCEO && newManagerID != nil {
		return ErrInvalidHierarchy
	}
	return nil
}
