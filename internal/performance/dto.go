package performance

import (
	"fmt"
	"math"
	"strings"

	"github.com/frahmantamala/hr-management/internal"
)

// maxFieldLength mirrors the storage column limit on the review text fields.
const maxFieldLength = 100

// SelfReviewDTO carries the employee-authored half of a review: one
// description and one self-assessment per competency.
type SelfReviewDTO struct {
	Responsibilities         string `json:"responsibilities"`
	ResponsibilitySelfReview string `json:"responsibility_self_review"`
	Communication            string `json:"communication"`
	CommunicationSelfReview  string `json:"communication_self_review"`
	Quality                  string `json:"quality"`
	QualitySelfReview        string `json:"quality_self_review"`
	Accountability           string `json:"accountability"`
	AccountabilitySelfReview string `json:"accountability_self_review"`
}

func (dto SelfReviewDTO) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"responsibilities", dto.Responsibilities},
		{"responsibility_self_review", dto.ResponsibilitySelfReview},
		{"communication", dto.Communication},
		{"communication_self_review", dto.CommunicationSelfReview},
		{"quality", dto.Quality},
		{"quality_self_review", dto.QualitySelfReview},
		{"accountability", dto.Accountability},
		{"accountability_self_review", dto.AccountabilitySelfReview},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return internal.NewValidationFieldError(f.name, f.name+" is required", internal.ErrCodeValidationFailed)
		}
		if len(f.value) > maxFieldLength {
			return internal.NewValidationFieldError(f.name, f.name+" is too long", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

// GradeDTO carries the supervisor-authored half: ratings and an optional
// comment. Ratings may be set partially; the review only becomes GRADED once
// all four are present.
type GradeDTO struct {
	ResponsibilityRating *float64 `json:"responsibility_rating,omitempty"`
	CommunicationRating  *float64 `json:"communication_rating,omitempty"`
	QualityRating        *float64 `json:"quality_rating,omitempty"`
	AccountabilityRating *float64 `json:"accountability_rating,omitempty"`
	Comments             *string  `json:"comments,omitempty"`
}

func (dto GradeDTO) Validate() error {
	ratings := []struct {
		name  string
		value *float64
	}{
		{"responsibility_rating", dto.ResponsibilityRating},
		{"communication_rating", dto.CommunicationRating},
		{"quality_rating", dto.QualityRating},
		{"accountability_rating", dto.AccountabilityRating},
	}
	for _, r := range ratings {
		if r.value == nil {
			continue
		}
		if err := validateRating(r.name, *r.value); err != nil {
			return err
		}
	}
	if dto.Comments != nil && len(*dto.Comments) > maxFieldLength {
		return internal.NewValidationFieldError("comments", "comments are too long", internal.ErrCodeValidationFailed)
	}
	return nil
}

// Ratings converts the DTO ratings into the domain shape.
func (dto GradeDTO) Ratings() Ratings {
	return Ratings{
		Responsibility: dto.ResponsibilityRating,
		Communication:  dto.CommunicationRating,
		Quality:        dto.QualityRating,
		Accountability: dto.AccountabilityRating,
	}
}

// validateRating enforces the decimal(3,1) range: 0.0 to 5.0 in steps of 0.1.
func validateRating(name string, value float64) error {
	if value < 0 || value > 5 {
		return internal.NewValidationFieldError(name,
			fmt.Sprintf("%s must be between 0.0 and 5.0", name),
			internal.ErrCodeInvalidRating)
	}
	scaled := value * 10
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		return internal.NewValidationFieldError(name,
			fmt.Sprintf("%s must have at most one decimal place", name),
			internal.ErrCodeInvalidRating)
	}
	return nil
}
