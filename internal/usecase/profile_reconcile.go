package usecase

import (
	"context"
	"time"

	"jobboard/internal/domain/profile"
	"jobboard/internal/pkg/optional"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

const endBeforeStartMessage = "End date must not be before start date."

type WorkExperienceItem struct {
	ID          optional.Value[int64]  `json:"id"`
	JobTitle    optional.Value[string] `json:"job_title"`
	Company     optional.Value[string] `json:"company"`
	StartDate   optional.Value[string] `json:"start_date"`
	EndDate     optional.Value[string] `json:"end_date"`
	Description optional.Value[string] `json:"description"`
}

type WorkExperienceBatch struct {
	Experiences []WorkExperienceItem `json:"experiences"`
	DeleteIDs   []int64              `json:"delete_ids"`
}

type EducationItem struct {
	ID               optional.Value[int64]  `json:"id"`
	LevelOfEducation optional.Value[string] `json:"level_of_education"`
	UniversityName   optional.Value[string] `json:"university_name"`
	FieldOfStudy     optional.Value[string] `json:"field_of_study"`
	StartDate        optional.Value[string] `json:"start_date"`
	EndDate          optional.Value[string] `json:"end_date"`
	Description      optional.Value[string] `json:"description"`
}

type EducationBatch struct {
	Educations []EducationItem `json:"educations"`
	DeleteIDs  []int64         `json:"delete_ids"`
}

type workExperienceRecord struct {
	JobTitle    string  `json:"job_title" validate:"notblank,max=100"`
	Company     string  `json:"company" validate:"notblank,max=100"`
	StartDate   string  `json:"start_date" validate:"date"`
	EndDate     *string `json:"end_date" validate:"omitempty,date"`
	Description string  `json:"description" validate:"notblank"`
}

type educationRecord struct {
	LevelOfEducation string  `json:"level_of_education" validate:"notblank,max=100"`
	UniversityName   string  `json:"university_name" validate:"notblank,max=100"`
	FieldOfStudy     string  `json:"field_of_study" validate:"notblank,max=100"`
	StartDate        string  `json:"start_date" validate:"date"`
	EndDate          *string `json:"end_date" validate:"omitempty,date"`
	Description      *string `json:"description"`
}

func (u *Profiles) ReconcileWorkExperiences(ctx context.Context, userID uuid.UUID, in WorkExperienceBatch) (ReconcileResult[profile.WorkExperience], error) {
	return runReconcile(ctx, u, workExperienceOps, userID, in.Experiences, in.DeleteIDs)
}

func (u *Profiles) ReconcileEducations(ctx context.Context, userID uuid.UUID, in EducationBatch) (ReconcileResult[profile.Education], error) {
	return runReconcile(ctx, u, educationOps, userID, in.Educations, in.DeleteIDs)
}

var workExperienceOps = reconcileOps[profile.WorkExperience, WorkExperienceItem]{
	resource: "work_experience",
	label:    "Work experience",
	notFound: profile.ErrWorkExperienceNotFound,
	itemID: func(in WorkExperienceItem) (int64, bool) {
		return in.ID.V, in.ID.Present()
	},
	blank: func(profileID int64) profile.WorkExperience {
		return profile.WorkExperience{ProfileID: profileID}
	},
	merge: mergeWorkExperience,
	load: func(ctx context.Context, repos repository.TxRepositories, id, profileID int64) (profile.WorkExperience, error) {
		return repos.WorkExperiences.GetForUpdate(ctx, id, profileID)
	},
	create: func(ctx context.Context, repos repository.TxRepositories, rec profile.WorkExperience) (profile.WorkExperience, error) {
		return repos.WorkExperiences.Create(ctx, rec)
	},
	update: func(ctx context.Context, repos repository.TxRepositories, rec profile.WorkExperience) error {
		return repos.WorkExperiences.Update(ctx, rec)
	},
	remove: func(ctx context.Context, repos repository.TxRepositories, profileID int64, ids []int64) (int64, error) {
		return repos.WorkExperiences.DeleteByIDs(ctx, profileID, ids)
	},
}

var educationOps = reconcileOps[profile.Education, EducationItem]{
	resource: "education",
	label:    "Education",
	notFound: profile.ErrEducationNotFound,
	itemID: func(in EducationItem) (int64, bool) {
		return in.ID.V, in.ID.Present()
	},
	blank: func(profileID int64) profile.Education {
		return profile.Education{ProfileID: profileID}
	},
	merge: mergeEducation,
	load: func(ctx context.Context, repos repository.TxRepositories, id, profileID int64) (profile.Education, error) {
		return repos.Educations.GetForUpdate(ctx, id, profileID)
	},
	create: func(ctx context.Context, repos repository.TxRepositories, rec profile.Education) (profile.Education, error) {
		return repos.Educations.Create(ctx, rec)
	},
	update: func(ctx context.Context, repos repository.TxRepositories, rec profile.Education) error {
		return repos.Educations.Update(ctx, rec)
	},
	remove: func(ctx context.Context, repos repository.TxRepositories, profileID int64, ids []int64) (int64, error) {
		return repos.Educations.DeleteByIDs(ctx, profileID, ids)
	},
}

func mergeWorkExperience(base profile.WorkExperience, in WorkExperienceItem, create bool) (profile.WorkExperience, validation.FieldErrors) {
	rec := workExperienceRecord{}
	if !create {
		rec = workExperienceRecord{
			JobTitle:    base.JobTitle,
			Company:     base.Company,
			StartDate:   base.StartDate.Format(profile.DateLayout),
			EndDate:     formatDate(base.EndDate),
			Description: base.Description,
		}
	}

	fe := validation.FieldErrors{}
	applyRequired(fe, "job_title", in.JobTitle, &rec.JobTitle, create)
	applyRequired(fe, "company", in.Company, &rec.Company, create)
	applyRequired(fe, "start_date", in.StartDate, &rec.StartDate, create)
	applyNullable(in.EndDate, &rec.EndDate)
	applyRequired(fe, "description", in.Description, &rec.Description, create)
	mergeFieldErrors(fe, validation.Struct(rec))
	if !fe.Empty() {
		return base, fe
	}

	start, end, ok := parseSpan(fe, rec.StartDate, rec.EndDate)
	if !ok {
		return base, fe
	}

	out := base
	out.JobTitle = rec.JobTitle
	out.Company = rec.Company
	out.StartDate = start
	out.EndDate = end
	out.Description = rec.Description
	return out, nil
}

func mergeEducation(base profile.Education, in EducationItem, create bool) (profile.Education, validation.FieldErrors) {
	rec := educationRecord{}
	if !create {
		rec = educationRecord{
			LevelOfEducation: base.LevelOfEducation,
			UniversityName:   base.UniversityName,
			FieldOfStudy:     base.FieldOfStudy,
			StartDate:        base.StartDate.Format(profile.DateLayout),
			EndDate:          formatDate(base.EndDate),
			Description:      base.Description,
		}
	}

	fe := validation.FieldErrors{}
	applyRequired(fe, "level_of_education", in.LevelOfEducation, &rec.LevelOfEducation, create)
	applyRequired(fe, "university_name", in.UniversityName, &rec.UniversityName, create)
	applyRequired(fe, "field_of_study", in.FieldOfStudy, &rec.FieldOfStudy, create)
	applyRequired(fe, "start_date", in.StartDate, &rec.StartDate, create)
	applyNullable(in.EndDate, &rec.EndDate)
	applyNullable(in.Description, &rec.Description)
	mergeFieldErrors(fe, validation.Struct(rec))
	if !fe.Empty() {
		return base, fe
	}

	start, end, ok := parseSpan(fe, rec.StartDate, rec.EndDate)
	if !ok {
		return base, fe
	}

	out := base
	out.LevelOfEducation = rec.LevelOfEducation
	out.UniversityName = rec.UniversityName
	out.FieldOfStudy = rec.FieldOfStudy
	out.StartDate = start
	out.EndDate = end
	out.Description = rec.Description
	return out, nil
}

// applyRequired copies a present value into dst. Absent keys only fail on create.
func applyRequired(fe validation.FieldErrors, field string, v optional.Value[string], dst *string, create bool) {
	switch {
	case !v.Set:
		if create {
			fe.Add(field, "This field is required.")
		}
	case v.Null:
		fe.Add(field, "This field may not be null.")
	default:
		*dst = v.V
	}
}

// applyNullable copies a present value into dst; an explicit null clears it.
func applyNullable(v optional.Value[string], dst **string) {
	if v.Set {
		*dst = v.Ptr()
	}
}

// mergeFieldErrors adds src messages for fields that have none yet.
func mergeFieldErrors(dst, src validation.FieldErrors) {
	for field, msgs := range src {
		if len(dst[field]) > 0 {
			continue
		}
		dst[field] = append(dst[field], msgs...)
	}
}

func parseSpan(fe validation.FieldErrors, startRaw string, endRaw *string) (time.Time, *time.Time, bool) {
	start, err := time.Parse(profile.DateLayout, startRaw)
	if err != nil {
		fe.Add("start_date", "Date has wrong format. Use YYYY-MM-DD.")
		return time.Time{}, nil, false
	}
	if endRaw == nil {
		return start, nil, true
	}
	end, err := time.Parse(profile.DateLayout, *endRaw)
	if err != nil {
		fe.Add("end_date", "Date has wrong format. Use YYYY-MM-DD.")
		return time.Time{}, nil, false
	}
	if end.Before(start) {
		fe.Add("end_date", endBeforeStartMessage)
		return time.Time{}, nil, false
	}
	return start, &end, true
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(profile.DateLayout)
	return &s
}
