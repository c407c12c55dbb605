package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound               = errors.New("profile not found")
	ErrWorkExperienceNotFound = errors.New("work experience not found")
	ErrEducationNotFound      = errors.New("education not found")
)

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

type Profile struct {
	ID       int64
	UserID   uuid.UUID
	FullName string
	AboutMe  *string
	Skills   []string
	Avatar   *string
	JobTitle *string
	Resume   *string
}

type WorkExperience struct {
	ID          int64
	ProfileID   int64
	JobTitle    string
	Company     string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

func (w WorkExperience) Duration(now time.Time) string {
	return Span(w.StartDate, w.EndDate, now)
}

type Education struct {
	ID               int64
	ProfileID        int64
	LevelOfEducation string
	UniversityName   string
	FieldOfStudy     string
	StartDate        time.Time
	EndDate          *time.Time
	Description      *string
}

func (e Education) Duration(now time.Time) string {
	return Span(e.StartDate, e.EndDate, now)
}
