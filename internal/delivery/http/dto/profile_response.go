package dto

import (
	"context"
	"time"

	"jobboard/internal/domain/profile"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
)

type WorkExperienceResponse struct {
	ID          int64   `json:"id"`
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
}

type EducationResponse struct {
	ID               int64   `json:"id"`
	LevelOfEducation string  `json:"level_of_education"`
	UniversityName   string  `json:"university_name"`
	FieldOfStudy     string  `json:"field_of_study"`
	StartDate        string  `json:"start_date"`
	EndDate          *string `json:"end_date"`
	Description      *string `json:"description"`
	Duration         string  `json:"duration"`
}

type ProfileResponse struct {
	User              uuid.UUID                `json:"user"`
	FullName          string                   `json:"full_name"`
	Avatar            *string                  `json:"avatar"`
	JobTitle          *string                  `json:"job_title"`
	AboutMe           *string                  `json:"about_me"`
	Skills            []string                 `json:"skills"`
	WorkExperiences   []WorkExperienceResponse `json:"work_experiences"`
	Educations        []EducationResponse      `json:"educations"`
	ProfilePictureURL *string                  `json:"profile_picture_url"`
	Resume            *string                  `json:"resume"`
}

// ReconcileResponse omits updated and created when empty, and deleted_count
// unless deletes were requested.
type ReconcileResponse[T any] struct {
	Updated      []T    `json:"updated,omitempty"`
	Created      []T    `json:"created,omitempty"`
	DeletedCount *int64 `json:"deleted_count,omitempty"`
}

type ProfileSerializer struct {
	Signer URLSigner
	Now    func() time.Time
}

func (s ProfileSerializer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ProfileSerializer) Profile(ctx context.Context, v usecase.ProfileView) ProfileResponse {
	p := v.Profile
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		User:              p.UserID,
		FullName:          p.FullName,
		Avatar:            p.Avatar,
		JobTitle:          p.JobTitle,
		AboutMe:           p.AboutMe,
		Skills:            skills,
		WorkExperiences:   s.WorkExperiences(v.WorkExperiences),
		Educations:        s.Educations(v.Educations),
		ProfilePictureURL: objectURL(ctx, s.Signer, p.Avatar),
		Resume:            objectURL(ctx, s.Signer, p.Resume),
	}
}

func (s ProfileSerializer) WorkExperience(w profile.WorkExperience) WorkExperienceResponse {
	return WorkExperienceResponse{
		ID:          w.ID,
		JobTitle:    w.JobTitle,
		Company:     w.Company,
		StartDate:   w.StartDate.Format(profile.DateLayout),
		EndDate:     formatDate(w.EndDate),
		Description: w.Description,
		Duration:    w.Duration(s.now()),
	}
}

func (s ProfileSerializer) WorkExperiences(items []profile.WorkExperience) []WorkExperienceResponse {
	out := make([]WorkExperienceResponse, 0, len(items))
	for _, w := range items {
		out = append(out, s.WorkExperience(w))
	}
	return out
}

func (s ProfileSerializer) Education(e profile.Education) EducationResponse {
	return EducationResponse{
		ID:               e.ID,
		LevelOfEducation: e.LevelOfEducation,
		UniversityName:   e.UniversityName,
		FieldOfStudy:     e.FieldOfStudy,
		StartDate:        e.StartDate.Format(profile.DateLayout),
		EndDate:          formatDate(e.EndDate),
		Description:      e.Description,
		Duration:         e.Duration(s.now()),
	}
}

func (s ProfileSerializer) Educations(items []profile.Education) []EducationResponse {
	out := make([]EducationResponse, 0, len(items))
	for _, e := range items {
		out = append(out, s.Education(e))
	}
	return out
}

func (s ProfileSerializer) WorkExperienceBatch(r usecase.ReconcileResult[profile.WorkExperience]) ReconcileResponse[WorkExperienceResponse] {
	out := ReconcileResponse[WorkExperienceResponse]{}
	if len(r.Updated) > 0 {
		out.Updated = s.WorkExperiences(r.Updated)
	}
	if len(r.Created) > 0 {
		out.Created = s.WorkExperiences(r.Created)
	}
	out.DeletedCount = deletedCount(r.DeleteRequested, r.DeletedCount)
	return out
}

func (s ProfileSerializer) EducationBatch(r usecase.ReconcileResult[profile.Education]) ReconcileResponse[EducationResponse] {
	out := ReconcileResponse[EducationResponse]{}
	if len(r.Updated) > 0 {
		out.Updated = s.Educations(r.Updated)
	}
	if len(r.Created) > 0 {
		out.Created = s.Educations(r.Created)
	}
	out.DeletedCount = deletedCount(r.DeleteRequested, r.DeletedCount)
	return out
}

func deletedCount(requested bool, n int64) *int64 {
	if !requested {
		return nil
	}
	return &n
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(profile.DateLayout)
	return &s
}
