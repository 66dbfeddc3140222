// Package workload aggregates a workbook's activities into the per-week,
// per-learning-type minute totals behind the dashboard chart, its table and
// the Excel export.
package workload

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinutes renders m as zero-padded "HH:MM". Negative values render as
// "00:00".
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TimeToMinutes parses "HH:MM" into minutes. A component that is not a
// number counts as zero.
func TimeToMinutes(s string) int {
	h, m, _ := strings.Cut(strings.TrimSpace(s), ":")
	return atoiOrZero(h)*60 + atoiOrZero(m)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CalculateTotalMinutes sums the display times of rows.
func CalculateTotalMinutes(rows []Row) int {
	total := 0
	for _, r := range rows {
		total += TimeToMinutes(r.Time)
	}
	return total
}

// CalculateLearningTypeMinutes sums the display times of rows per
// lower-cased learning type name.
func CalculateLearningTypeMinutes(rows []Row) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		out[TypeKey(r.LearningType)] += TimeToMinutes(r.Time)
	}
	return out
}

// TypeKey is the grouping key for a learning type name.
func TypeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
