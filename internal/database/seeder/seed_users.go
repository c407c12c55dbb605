package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/profile"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "jobboard-demo-pass"

// UsersSeeder creates accounts with filled profiles, work history and education.
type UsersSeeder struct {
	Count int
	Faker *gofakeit.Faker
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if s.Count <= 0 {
		return 0, nil
	}
	err := RequireColumns(ctx, db, map[string][]string{
		"users":            {"id", "email", "full_name", "password_hash"},
		"profiles":         {"id", "user_id", "about_me", "skills"},
		"work_experiences": {"profile_id", "job_title", "start_date", "end_date"},
		"educations":       {"profile_id", "level_of_education", "start_date", "end_date"},
	})
	if err != nil {
		return 0, err
	}

	f := s.Faker
	if f == nil {
		f = gofakeit.New(0)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	tx := repository.NewPostgresTransactor(db)
	for i := 0; i < s.Count; i++ {
		err := tx.WithinTx(ctx, func(r repository.TxRepositories) error {
			return seedUser(ctx, r, f, string(hash))
		})
		if err != nil {
			return i, fmt.Errorf("user %d: %w", i, err)
		}
	}
	return s.Count, nil
}

func seedUser(ctx context.Context, r repository.TxRepositories, f *gofakeit.Faker, hash string) error {
	u := user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(f.Username()) + "." + f.DigitN(4) + "@example.com",
		FullName:     f.Name(),
		PasswordHash: hash,
	}
	if err := r.Users.Create(ctx, u); err != nil {
		return err
	}

	profileID, err := r.Profiles.CreateEmpty(ctx, u.ID)
	if err != nil {
		return err
	}
	if err := r.Profiles.UpdateAboutMe(ctx, profileID, f.Paragraph(1, 3, 10, " ")); err != nil {
		return err
	}
	skills := []string{f.ProgrammingLanguage(), f.ProgrammingLanguage(), f.HackerVerb()}
	if err := r.Profiles.UpdateSkills(ctx, profileID, skills); err != nil {
		return err
	}

	start := f.DateRange(time.Now().AddDate(-10, 0, 0), time.Now().AddDate(-1, 0, 0))
	for i := 0; i < f.Number(1, 3); i++ {
		end := start.AddDate(0, f.Number(6, 30), 0)
		w := profile.WorkExperience{
			ProfileID:   profileID,
			JobTitle:    truncate(f.JobTitle(), 100),
			Company:     truncate(f.Company(), 100),
			StartDate:   dateOnly(start),
			Description: f.Sentence(12),
		}
		if end.Before(time.Now()) {
			e := dateOnly(end)
			w.EndDate = &e
		}
		if _, err := r.WorkExperiences.Create(ctx, w); err != nil {
			return err
		}
		start = end
	}

	eduStart := f.DateRange(time.Now().AddDate(-15, 0, 0), time.Now().AddDate(-8, 0, 0))
	eduEnd := dateOnly(eduStart.AddDate(4, 0, 0))
	_, err = r.Educations.Create(ctx, profile.Education{
		ProfileID:        profileID,
		LevelOfEducation: f.RandomString([]string{"Bachelor", "Master", "PhD"}),
		UniversityName:   truncate(f.Company()+" University", 100),
		FieldOfStudy:     truncate(f.HackerAdjective()+" "+f.HackerNoun(), 100),
		StartDate:        dateOnly(eduStart),
		EndDate:          &eduEnd,
	})
	return err
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
