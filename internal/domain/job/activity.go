package job

import "time"

// Saved is a job bookmarked by a user.
type Saved struct {
	ID      int64
	Job     Job
	SavedAt time.Time
}

// Viewed is a job a user opened recently.
type Viewed struct {
	ID       int64
	Job      Job
	ViewedAt time.Time
}
