// Package timemath converts wall-clock "HH:MM" pairs into elapsed hours.
package timemath

import (
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// CalculateHours returns the elapsed hours between two "HH:MM" clock times,
// rounded to two decimal places. An end strictly earlier than the start is
// treated as crossing midnight into the next day; equal start and end is a
// zero-length shift. Inputs are assumed well formed, callers constrain them
// through a time picker.
func CalculateHours(start, end string) float64 {
	s := toMinutes(start)
	e := toMinutes(end)
	if e < s {
		e += minutesPerDay
	}
	elapsed := e - s
	if elapsed <= 0 {
		return 0
	}
	return math.Round(float64(elapsed)/60*100) / 100
}

func toMinutes(clock string) int {
	hh, mm, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}
