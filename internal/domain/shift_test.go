package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveComputesHoursPayAndDay(t *testing.T) {
	s := Shift{Date: "2024-03-15", StartTime: "09:00", EndTime: "17:30", Wage: 1200}
	s.Derive("en")

	require.Equal(t, 8.5, s.Hours)
	require.Equal(t, int64(10200), s.Pay)
	require.Equal(t, "Friday", s.DayOfWeek)
}

func TestDeriveOvernightShift(t *testing.T) {
	s := Shift{Date: "2024-03-15", StartTime: "22:00", EndTime: "06:00", Wage: 1500}
	s.Derive("en")

	require.Equal(t, 8.0, s.Hours)
	require.Equal(t, int64(12000), s.Pay)
}

func TestDeriveWageChangeLeavesHoursAlone(t *testing.T) {
	s := Shift{Date: "2024-03-15", StartTime: "09:00", EndTime: "17:00", Wage: 1000}
	s.Derive("en")
	require.Equal(t, 8.0, s.Hours)
	require.Equal(t, int64(8000), s.Pay)

	s.Wage = 1250
	s.Derive("en")
	require.Equal(t, 8.0, s.Hours)
	require.Equal(t, int64(10000), s.Pay)
}

func TestDeriveZeroLengthShift(t *testing.T) {
	s := Shift{Date: "2024-03-15", StartTime: "09:00", EndTime: "09:00", Wage: 1200}
	s.Derive("en")

	require.Equal(t, 0.0, s.Hours)
	require.Equal(t, int64(0), s.Pay)
}

func TestDayNameLocalized(t *testing.T) {
	require.Equal(t, "Friday", DayName("2024-03-15", "en"))
	require.Equal(t, "金曜日", DayName("2024-03-15", "ja"))
	require.Equal(t, "Sunday", DayName("2024-03-17", "de"), "unknown language falls back to english")
}

func TestDayNameMalformedDateYieldsSentinel(t *testing.T) {
	require.Equal(t, "invalid date", DayName("2024-13-99", "en"))
	require.Equal(t, "日付エラー", DayName("garbage", "ja"))
}

func TestDraftValidate(t *testing.T) {
	valid := ShiftDraft{Date: "2024-03-15", StartTime: "09:00", EndTime: "17:30", Wage: 1200}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name  string
		draft ShiftDraft
	}{
		{"missing date", ShiftDraft{StartTime: "09:00", EndTime: "17:00", Wage: 1000}},
		{"bad date", ShiftDraft{Date: "15/03/2024", StartTime: "09:00", EndTime: "17:00", Wage: 1000}},
		{"bad start time", ShiftDraft{Date: "2024-03-15", StartTime: "9am", EndTime: "17:00", Wage: 1000}},
		{"bad end time", ShiftDraft{Date: "2024-03-15", StartTime: "09:00", EndTime: "25:00", Wage: 1000}},
		{"negative wage", ShiftDraft{Date: "2024-03-15", StartTime: "09:00", EndTime: "17:00", Wage: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.draft.Validate(), ErrValidation)
		})
	}
}
