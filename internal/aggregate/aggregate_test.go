package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/shifttrack/internal/domain"
)

func shift(id, date string, hours float64, pay int64) domain.Shift {
	return domain.Shift{ID: id, Date: date, Hours: hours, Pay: pay}
}

func sampleShifts() []domain.Shift {
	return []domain.Shift{
		shift("a", "2024-03-15", 8.5, 10200),
		shift("b", "2024-04-02", 4, 4800),
		shift("c", "2024-03-01", 6, 7200),
		shift("d", "2024-05-20", 7.5, 9000),
	}
}

func TestAggregateSortsDateDescending(t *testing.T) {
	report := Aggregate(sampleShifts(), "")

	require.Len(t, report.Shifts, 4)
	require.Equal(t, "d", report.Shifts[0].ID)
	require.Equal(t, "b", report.Shifts[1].ID)
	require.Equal(t, "a", report.Shifts[2].ID)
	require.Equal(t, "c", report.Shifts[3].ID)
	require.Equal(t, []string{"2024-05", "2024-04", "2024-03"}, report.MonthKeys)
}

func TestAggregateStableForEqualDates(t *testing.T) {
	shifts := []domain.Shift{
		shift("first", "2024-03-15", 2, 2000),
		shift("second", "2024-03-15", 3, 3000),
	}
	report := Aggregate(shifts, "")

	require.Equal(t, "first", report.Shifts[0].ID)
	require.Equal(t, "second", report.Shifts[1].ID)
}

func TestAggregateMonthFilter(t *testing.T) {
	report := Aggregate(sampleShifts(), "2024-03")

	require.Len(t, report.Shifts, 2)
	require.Equal(t, []string{"2024-03"}, report.MonthKeys)
	require.Equal(t, 14.5, report.GrandTotal.Hours)
	require.Equal(t, int64(17400), report.GrandTotal.Pay)
}

func TestAggregateGrandTotalTracksFilter(t *testing.T) {
	shifts := []domain.Shift{
		shift("a", "2024-03-15", 8.5, 10200),
		shift("b", "2024-04-02", 4, 4800),
	}

	march := Aggregate(shifts, "2024-03")
	require.Equal(t, 8.5, march.GrandTotal.Hours)
	require.Equal(t, int64(10200), march.GrandTotal.Pay)

	all := Aggregate(shifts, "")
	require.Equal(t, 12.5, all.GrandTotal.Hours)
	require.Equal(t, int64(15000), all.GrandTotal.Pay)
}

func TestAggregateGroupingCompleteness(t *testing.T) {
	report := Aggregate(sampleShifts(), "")

	var bucketPay int64
	var bucketHours float64
	for _, key := range report.MonthKeys {
		bucket := report.Months[key]
		bucketPay += bucket.Totals.Pay
		bucketHours += bucket.Totals.Hours
	}
	require.Equal(t, report.GrandTotal.Pay, bucketPay)
	require.Equal(t, report.GrandTotal.Hours, bucketHours)
}

func TestAggregateIdempotent(t *testing.T) {
	shifts := sampleShifts()
	first := Aggregate(shifts, "")
	second := Aggregate(shifts, "")

	require.Equal(t, first.GrandTotal, second.GrandTotal)
	require.Equal(t, first.MonthKeys, second.MonthKeys)
	for key, bucket := range first.Months {
		require.Equal(t, bucket.Totals, second.Months[key].Totals)
	}
}

func TestAggregateExcludesUnparseableDates(t *testing.T) {
	shifts := append(sampleShifts(), shift("bad", "not-a-date", 99, 99999))
	report := Aggregate(shifts, "")

	require.Len(t, report.Shifts, 4)
	require.Equal(t, int64(31200), report.GrandTotal.Pay)
}

func TestAggregateEmptyCollection(t *testing.T) {
	report := Aggregate(nil, "")

	require.Empty(t, report.Shifts)
	require.Empty(t, report.MonthKeys)
	require.Equal(t, Totals{}, report.GrandTotal)
}
