package timemath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateHours(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"full workday", "09:00", "17:00", 8},
		{"half hour granularity", "09:00", "17:30", 8.5},
		{"overnight wraparound", "22:00", "06:00", 8},
		{"overnight into morning", "23:30", "07:15", 7.75},
		{"equal start and end is zero length", "09:00", "09:00", 0},
		{"midnight to midnight", "00:00", "00:00", 0},
		{"one minute", "12:00", "12:01", 0.02},
		{"quarter hour", "08:00", "08:15", 0.25},
		{"ends at midnight", "16:00", "00:00", 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CalculateHours(tc.start, tc.end))
		})
	}
}

func TestCalculateHoursRoundsToTwoDecimals(t *testing.T) {
	// 100 minutes = 1.666... hours.
	require.Equal(t, 1.67, CalculateHours("10:00", "11:40"))
}
