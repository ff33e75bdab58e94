package performance

import (
	"github.com/frahmantamala/hr-management/internal"
	perfDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/performance"
)

// GradeStatus tracks whether a review has received its full set of ratings.
// It is always derived from the ratings, never set directly.
type GradeStatus string

const (
	GradePending GradeStatus = "PENDING"
	GradeGraded  GradeStatus = "GRADED"
)

func (s GradeStatus) String() string { return string(s) }

var (
	ErrReviewNotFound = internal.NewNotFoundError("performance review not found", internal.ErrCodeReviewNotFound)

	ErrCEOCannotSubmit = internal.NewForbiddenError("the CEO does not submit performance reviews", internal.ErrCodeAccessDenied)
)

// Ratings holds the four supervisor ratings. Each is nullable until the
// supervisor sets it.
type Ratings struct {
	Responsibility *float64 `json:"responsibility_rating,omitempty"`
	Communication  *float64 `json:"communication_rating,omitempty"`
	Quality        *float64 `json:"quality_rating,omitempty"`
	Accountability *float64 `json:"accountability_rating,omitempty"`
}

// Complete reports whether every rating has been set.
func (r Ratings) Complete() bool {
	return r.Responsibility != nil && r.Communication != nil && r.Quality != nil && r.Accountability != nil
}

// Any reports whether at least one rating has been set.
func (r Ratings) Any() bool {
	return r.Responsibility != nil || r.Communication != nil || r.Quality != nil || r.Accountability != nil
}

// DeriveGraded recomputes the grade status from the ratings. A review is
// GRADED exactly when all four ratings are present.
func DeriveGraded(r Ratings) GradeStatus {
	if r.Complete() {
		return GradeGraded
	}
	return GradePending
}

// AverageScore returns the mean of the four ratings, or nil while any rating
// is missing.
func AverageScore(r Ratings) *float64 {
	if !r.Complete() {
		return nil
	}
	avg := (*r.Responsibility + *r.Communication + *r.Quality + *r.Accountability) / 4
	return &avg
}

// PerformanceReview is the domain view of a self-review plus its supervisor
// grading, joined with the owning employee for display.
type PerformanceReview struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`

	Responsibilities         string `json:"responsibilities"`
	ResponsibilitySelfReview string `json:"responsibility_self_review"`
	Communication            string `json:"communication"`
	CommunicationSelfReview  string `json:"communication_self_review"`
	Quality                  string `json:"quality"`
	QualitySelfReview        string `json:"quality_self_review"`
	Accountability           string `json:"accountability"`
	AccountabilitySelfReview string `json:"accountability_self_review"`

	Comments   *string     `json:"comments,omitempty"`
	GradedByID *int64      `json:"graded_by_id,omitempty"`
	Ratings    Ratings     `json:"ratings"`
	Graded     GradeStatus `json:"graded"`

	AverageScore *float64 `json:"average_score,omitempty"`
}

func FromDataModel(row *perfDatamodel.PerformanceReview) *PerformanceReview {
	ratings := Ratings{
		Responsibility: row.ResponsibilityRating,
		Communication:  row.CommunicationRating,
		Quality:        row.QualityRating,
		Accountability: row.AccountabilityRating,
	}
	return &PerformanceReview{
		ID:                       row.ID,
		EmployeeID:               row.EmployeeID,
		Responsibilities:         row.Responsibilities,
		ResponsibilitySelfReview: row.ResponsibilitySelfReview,
		Communication:            row.Communication,
		CommunicationSelfReview:  row.CommunicationSelfReview,
		Quality:                  row.Quality,
		QualitySelfReview:        row.QualitySelfReview,
		Accountability:           row.Accountability,
		AccountabilitySelfReview: row.AccountabilitySelfReview,
		Comments:                 row.Comments,
		GradedByID:               row.GradedByID,
		Ratings:                  ratings,
		Graded:                   GradeStatus(row.Graded),
		AverageScore:             AverageScore(ratings),
	}
}

func FromDataModelSlice(rows []*perfDatamodel.PerformanceReview) []*PerformanceReview {
	reviews := make([]*PerformanceReview, len(rows))
	for i, row := range rows {
		reviews[i] = FromDataModel(row)
	}
	return reviews
}
