package learningplan

import (
	"strings"
	"time"

	"github.com/frahmantamala/hr-management/internal"
)

const dateLayout = "2006-01-02"

// maxLearningLength mirrors the storage column limit on the learning text
// fields.
const maxLearningLength = 250

// SubmitDTO is the employee-side payload for creating or updating their own
// plan. QuarterDate defaults to today when omitted.
type SubmitDTO struct {
	CompletedLearning string `json:"completed_learning"`
	PlannedLearning   string `json:"planned_learning"`
	QuarterDate       string `json:"quarter_date,omitempty"`
}

func (dto SubmitDTO) Validate() error {
	if strings.TrimSpace(dto.CompletedLearning) == "" {
		return internal.NewValidationFieldError("completed_learning", "completed learning is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.CompletedLearning) > maxLearningLength {
		return internal.NewValidationFieldError("completed_learning", "completed learning is too long", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.PlannedLearning) == "" {
		return internal.NewValidationFieldError("planned_learning", "planned learning is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.PlannedLearning) > maxLearningLength {
		return internal.NewValidationFieldError("planned_learning", "planned learning is too long", internal.ErrCodeValidationFailed)
	}
	if dto.QuarterDate != "" {
		if _, err := time.Parse(dateLayout, dto.QuarterDate); err != nil {
			return internal.NewValidationFieldError("quarter_date", "quarter date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// ParsedQuarterDate returns the quarter date, defaulting to today.
func (dto SubmitDTO) ParsedQuarterDate() time.Time {
	if dto.QuarterDate == "" {
		return time.Now().Truncate(24 * time.Hour)
	}
	t, _ := time.Parse(dateLayout, dto.QuarterDate)
	return t
}

// ReviewDTO is the manager-side payload: a status decision plus an optional
// note and meeting date.
type ReviewDTO struct {
	Status          string  `json:"status"`
	ReviewNote      *string `json:"review_note,omitempty"`
	ScheduleMeeting *string `json:"schedule_meeting,omitempty"`
}

func (dto ReviewDTO) Validate() error {
	if _, err := ParseStatus(dto.Status); err != nil {
		return internal.NewValidationFieldError("status", err.Error(), internal.ErrCodeValidationFailed)
	}
	if dto.ReviewNote != nil && len(*dto.ReviewNote) > 50 {
		return internal.NewValidationFieldError("review_note", "review note is too long", internal.ErrCodeValidationFailed)
	}
	if dto.ScheduleMeeting != nil {
		if _, err := time.Parse(dateLayout, *dto.ScheduleMeeting); err != nil {
			return internal.NewValidationFieldError("schedule_meeting", "meeting date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// ParsedMeetingDate returns the meeting date when set.
func (dto ReviewDTO) ParsedMeetingDate() *time.Time {
	if dto.ScheduleMeeting == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *dto.ScheduleMeeting)
	if err != nil {
		return nil
	}
	return &t
}
