package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"example.com/shifttrack/internal/timemath"
)

// Layouts for the wire formats used throughout the service.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Shift is the canonical work-shift record stored in the remote store and
// mirrored into the local snapshot. Hours, Pay and DayOfWeek are derived and
// never accepted from callers.
type Shift struct {
	ID        string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	Wage      float64
	Hours     float64
	Pay       int64
	DayOfWeek string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftDraft captures the user-settable fields of a shift submission.
type ShiftDraft struct {
	Date      string
	StartTime string
	EndTime   string
	Wage      float64
}

// Validate checks the draft before any I/O happens.
func (d ShiftDraft) Validate() error {
	if strings.TrimSpace(d.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse(ClockLayout, d.StartTime); err != nil {
		return fmt.Errorf("%w: start_time must be HH:MM", ErrValidation)
	}
	if _, err := time.Parse(ClockLayout, d.EndTime); err != nil {
		return fmt.Errorf("%w: end_time must be HH:MM", ErrValidation)
	}
	if d.Wage < 0 {
		return fmt.Errorf("%w: wage must not be negative", ErrValidation)
	}
	return nil
}

// Derive recomputes the derived fields from the user-settable ones. It must
// run on every field-affecting edit; the derived values are never trusted
// from the outside, even when a UI computed them for live preview.
func (s *Shift) Derive(lang string) {
	s.Hours = timemath.CalculateHours(s.StartTime, s.EndTime)
	s.Pay = int64(math.Round(s.Hours * s.Wage))
	s.DayOfWeek = DayName(s.Date, lang)
}
