package profile

import (
	"fmt"
	"time"
)

// Span renders "January 2020 - March 2022 (2 years, 2 months)". An open end
// reads "Current" and is measured up to now.
func Span(start time.Time, end *time.Time, now time.Time) string {
	to := now
	endStr := "Current"
	if end != nil {
		to = *end
		endStr = end.Format("January 2006")
	}

	years, months := monthsBetween(start, to)
	return fmt.Sprintf("%s - %s (%d %s, %d %s)",
		start.Format("January 2006"), endStr,
		years, plural(years, "year"),
		months, plural(months, "month"),
	)
}

// monthsBetween counts whole calendar months; a month only counts once its
// day-of-month is reached.
func monthsBetween(from, to time.Time) (int, int) {
	if to.Before(from) {
		y, m := monthsBetween(to, from)
		return -y, -m
	}
	total := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		total--
	}
	return total / 12, total % 12
}

func plural(n int, unit string) string {
	if n == 1 || n == -1 {
		return unit
	}
	return unit + "s"
}
