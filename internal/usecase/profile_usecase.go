package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jobboard/internal/domain/profile"
	"jobboard/internal/pkg/optional"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"
	"jobboard/internal/telemetry"

	"github.com/google/uuid"
)

type ProfileView struct {
	Profile         profile.Profile
	WorkExperiences []profile.WorkExperience
	Educations      []profile.Education
}

type SkillsInput struct {
	Skills optional.Value[[]string] `json:"skills"`
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	UpdateAbout(ctx context.Context, userID uuid.UUID, aboutMe *string) (ProfileView, error)
	UpdateSkills(ctx context.Context, userID uuid.UUID, in SkillsInput) error
	UploadResume(ctx context.Context, userID uuid.UUID, f *Upload) (string, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, f *Upload) (string, error)

	ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]profile.WorkExperience, error)
	ListEducations(ctx context.Context, userID uuid.UUID) ([]profile.Education, error)
	ReconcileWorkExperiences(ctx context.Context, userID uuid.UUID, in WorkExperienceBatch) (ReconcileResult[profile.WorkExperience], error)
	ReconcileEducations(ctx context.Context, userID uuid.UUID, in EducationBatch) (ReconcileResult[profile.Education], error)
}

type Profiles struct {
	profiles  repository.ProfileRepository
	work      repository.WorkExperienceRepository
	education repository.EducationRepository
	tx        repository.Transactor
	files     FileStore
	maxUpload int64
	metrics   *telemetry.Metrics
	logger    *log.Logger
}

type ProfileDeps struct {
	Profiles   repository.ProfileRepository
	Work       repository.WorkExperienceRepository
	Education  repository.EducationRepository
	Transactor repository.Transactor
	Files      FileStore
	MaxUpload  int64
	Metrics    *telemetry.Metrics
	Logger     *log.Logger
}

func NewProfileUsecase(d ProfileDeps) *Profiles {
	return &Profiles{
		profiles:  d.Profiles,
		work:      d.Work,
		education: d.Education,
		tx:        d.Transactor,
		files:     d.Files,
		maxUpload: d.MaxUpload,
		metrics:   d.Metrics,
		logger:    d.Logger,
	}
}

func (u *Profiles) profileOf(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		u.logf("[Profile] load failed user_id=%s err=%v", userID, err)
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	work, err := u.work.ListByProfile(ctx, p.ID)
	if err != nil {
		return ProfileView{}, ErrInternal
	}
	edu, err := u.education.ListByProfile(ctx, p.ID)
	if err != nil {
		return ProfileView{}, ErrInternal
	}
	return ProfileView{Profile: p, WorkExperiences: work, Educations: edu}, nil
}

func (u *Profiles) UpdateAbout(ctx context.Context, userID uuid.UUID, aboutMe *string) (ProfileView, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	if aboutMe == nil || strings.TrimSpace(*aboutMe) == "" {
		return ProfileView{}, ErrAboutMeRequired
	}
	if err := u.profiles.UpdateAboutMe(ctx, p.ID, *aboutMe); err != nil {
		return ProfileView{}, ErrInternal
	}
	return u.Get(ctx, userID)
}

func (u *Profiles) UpdateSkills(ctx context.Context, userID uuid.UUID, in SkillsInput) error {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return err
	}

	fe := validation.FieldErrors{}
	switch {
	case !in.Skills.Set:
		fe.Add("skills", "This field is required.")
	case in.Skills.Null:
		fe.Add("skills", "This field may not be null.")
	}
	skills := make([]string, 0, len(in.Skills.V))
	for i, s := range in.Skills.V {
		s = strings.TrimSpace(s)
		if s == "" {
			fe.Add(fmt.Sprintf("skills.%d", i), "This field may not be blank.")
			continue
		}
		skills = append(skills, s)
	}
	if !fe.Empty() {
		return newValidationError(fe)
	}

	if err := u.profiles.UpdateSkills(ctx, p.ID, skills); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Profiles) UploadResume(ctx context.Context, userID uuid.UUID, f *Upload) (string, error) {
	return u.upload(ctx, userID, f, "resumes", false, u.profiles.SetResume)
}

func (u *Profiles) UploadAvatar(ctx context.Context, userID uuid.UUID, f *Upload) (string, error) {
	return u.upload(ctx, userID, f, "profile_pics", true, u.profiles.SetAvatar)
}

type setFileFunc func(ctx context.Context, profileID int64, key string) (*string, error)

func (u *Profiles) upload(ctx context.Context, userID uuid.UUID, f *Upload, prefix string, imageOnly bool, set setFileFunc) (string, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := checkUpload(f, u.maxUpload); err != nil {
		return "", err
	}
	if imageOnly && !f.isImage() {
		return "", ErrUnsupportedFileType
	}
	if u.files == nil {
		return "", ErrInternal
	}

	key := objectKey(prefix+"/"+userID.String(), f.Filename)
	if err := u.files.Put(ctx, key, f.ContentType, f.Body, f.Size); err != nil {
		u.logf("[Profile] upload failed key=%s err=%v", key, err)
		return "", ErrInternal
	}

	previous, err := set(ctx, p.ID, key)
	if err != nil {
		u.removeObject(ctx, key)
		return "", ErrInternal
	}
	if previous != nil && *previous != "" && *previous != key {
		u.removeObject(ctx, *previous)
	}
	return key, nil
}

func (u *Profiles) removeObject(ctx context.Context, key string) {
	if err := u.files.Remove(context.WithoutCancel(ctx), key); err != nil {
		u.logf("[Profile] remove object failed key=%s err=%v", key, err)
	}
}

func (u *Profiles) ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]profile.WorkExperience, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := u.work.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Profiles) ListEducations(ctx context.Context, userID uuid.UUID) ([]profile.Education, error) {
	p, err := u.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := u.education.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Profiles) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
