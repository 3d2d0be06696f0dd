// Package aggregate derives grouped, sorted and filtered views of a shift
// collection. Everything here is a pure function of its inputs.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"example.com/shifttrack/internal/domain"
)

// Totals accumulates hours and pay over a set of shifts.
type Totals struct {
	Hours float64 `json:"hours"`
	Pay   int64   `json:"pay"`
}

func (t *Totals) add(s domain.Shift) {
	t.Hours += s.Hours
	t.Pay += s.Pay
}

// MonthBucket holds the shifts sharing a YYYY-MM date prefix and their totals.
type MonthBucket struct {
	Key    string         `json:"key"`
	Totals Totals         `json:"totals"`
	Shifts []domain.Shift `json:"-"`
}

// Report is the display-ready view of a shift collection.
type Report struct {
	// GrandTotal sums over the filtered set, not the full collection.
	GrandTotal Totals
	Months     map[string]*MonthBucket
	// MonthKeys is descending lexicographic on YYYY-MM, which for this key
	// format is descending chronological order.
	MonthKeys []string
	// Shifts is the filtered collection sorted by date descending. The sort
	// is stable so equal dates keep their input order.
	Shifts []domain.Shift
}

// Aggregate filters the collection to monthFilter ("YYYY-MM", empty for no
// filter), sorts it date-descending and buckets it by calendar month. Shifts
// with unparseable dates are excluded rather than failing the whole pass.
func Aggregate(shifts []domain.Shift, monthFilter string) Report {
	filtered := make([]domain.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if _, err := time.Parse(domain.DateLayout, sh.Date); err != nil {
			continue
		}
		if monthFilter != "" && !strings.HasPrefix(sh.Date, monthFilter+"-") {
			continue
		}
		filtered = append(filtered, sh)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})

	report := Report{
		Months: make(map[string]*MonthBucket),
		Shifts: filtered,
	}
	for _, sh := range filtered {
		key := sh.Date[:7]
		bucket, ok := report.Months[key]
		if !ok {
			bucket = &MonthBucket{Key: key}
			report.Months[key] = bucket
			report.MonthKeys = append(report.MonthKeys, key)
		}
		bucket.Shifts = append(bucket.Shifts, sh)
		bucket.Totals.add(sh)
		report.GrandTotal.add(sh)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(report.MonthKeys)))
	return report
}
