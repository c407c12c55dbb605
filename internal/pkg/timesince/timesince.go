package timesince

import (
	"fmt"
	"time"
)

type chunk struct {
	size time.Duration
	name string
}

var chunks = []chunk{
	{size: 365 * 24 * time.Hour, name: "year"},
	{size: 30 * 24 * time.Hour, name: "month"},
	{size: 7 * 24 * time.Hour, name: "week"},
	{size: 24 * time.Hour, name: "day"},
	{size: time.Hour, name: "hour"},
	{size: time.Minute, name: "minute"},
}

// Format renders the time elapsed from t to now using at most two adjacent
// units, e.g. "2 days, 3 hours". Anything under a minute, or in the future,
// is "0 minutes".
func Format(t, now time.Time) string {
	since := now.Sub(t)
	if since < time.Minute {
		return "0 minutes"
	}

	for i, c := range chunks {
		count := int64(since / c.size)
		if count == 0 {
			continue
		}
		out := unit(count, c.name)
		if i+1 < len(chunks) {
			next := chunks[i+1]
			rest := int64((since - time.Duration(count)*c.size) / next.size)
			if rest != 0 {
				out += ", " + unit(rest, next.name)
			}
		}
		return out
	}
	return "0 minutes"
}

// Ago is Format followed by " ago".
func Ago(t, now time.Time) string {
	return Format(t, now) + " ago"
}

func unit(n int64, name string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, name)
	}
	return fmt.Sprintf("%d %ss", n, name)
}
