package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]user.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]user.User{}} }

func (f *fakeUsers) Create(_ context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeProfiles struct {
	repository.ProfileRepository
	created []uuid.UUID
	err     error
}

func (f *fakeProfiles) CreateEmpty(_ context.Context, userID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, userID)
	return int64(len(f.created)), nil
}

// fakeTx stages user writes and only applies them when fn succeeds.
type fakeTx struct {
	users    *fakeUsers
	profiles *fakeProfiles
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(repository.TxRepositories) error) error {
	staged := newFakeUsers()
	for k, v := range f.users.byEmail {
		staged.byEmail[k] = v
	}
	if err := fn(repository.TxRepositories{Users: staged, Profiles: f.profiles}); err != nil {
		return err
	}
	f.users.byEmail = staged.byEmail
	return nil
}

func newTestService() (*Service, *fakeUsers, *fakeProfiles) {
	users := newFakeUsers()
	profiles := &fakeProfiles{}
	return NewService(users, &fakeTx{users: users, profiles: profiles}), users, profiles
}

func fieldErrors(t *testing.T, err error) validation.FieldErrors {
	t.Helper()
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}
	return fe
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	svc, users, profiles := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Email: "  Ann@Example.com ", FullName: "Ann Lee", Password: "violet-harbor-42",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ann@example.com" || u.PasswordHash != "" {
		t.Fatalf("unexpected user %+v", u)
	}
	stored := users.byEmail["ann@example.com"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("violet-harbor-42")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if len(profiles.created) != 1 || profiles.created[0] != u.ID {
		t.Fatalf("expected one profile for the new user, got %v", profiles.created)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	in := RegisterInput{Email: "ann@example.com", FullName: "Ann Lee", Password: "violet-harbor-42"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	in.Email = "ANN@example.com"
	_, err := svc.Register(context.Background(), in)
	fe := fieldErrors(t, err)
	if got := fe["email"]; len(got) != 1 || got[0] != "user with this email already exists." {
		t.Fatalf("unexpected email errors %v", got)
	}
}

func TestRegister_ProfileFailureRollsBackUser(t *testing.T) {
	svc, users, profiles := newTestService()
	profiles.err = errors.New("boom")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "ann@example.com", FullName: "Ann Lee", Password: "violet-harbor-42",
	})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if len(users.byEmail) != 0 {
		t.Fatalf("expected no user to be stored")
	}
}

func TestRegister_PasswordRules(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"short", "a1b2c3", "too short"},
		{"numeric", "9081726354", "entirely numeric"},
		{"common", "password123", "too common"},
		{"similar to email", "annabelle1", "similar to the email address"},
		{"similar to name", "Ann Lee 12", "similar to the full name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), RegisterInput{
				Email: "annabelle@example.com", FullName: "Ann Lee", Password: tc.password,
			})
			fe := fieldErrors(t, err)
			if !strings.Contains(strings.Join(fe["password"], " "), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, fe["password"])
			}
		})
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Email: "nope", FullName: "Ann", Password: "violet-harbor-42"})
	fe := fieldErrors(t, err)
	if len(fe["email"]) == 0 {
		t.Fatalf("expected email error, got %v", fe)
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "ann@example.com", FullName: "Ann Lee", Password: "violet-harbor-42",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ann@example.com", Password: "wrong-pass-1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "bob@example.com", Password: "violet-harbor-42"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	u, err := svc.Login(context.Background(), LoginInput{Email: "ANN@example.com", Password: "violet-harbor-42"})
	if err != nil || u.Email != "ann@example.com" {
		t.Fatalf("expected login success, got %v %+v", err, u)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Login(context.Background(), LoginInput{})
	fe := fieldErrors(t, err)
	if len(fe["email"]) == 0 || len(fe["password"]) == 0 {
		t.Fatalf("expected email and password errors, got %v", fe)
	}
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	svc, users, _ := newTestService()
	pw := "Zq9!" + strings.Repeat("xK7#", 20)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@b.io", FullName: "Ann Lee", Password: pw,
	})
	fe := fieldErrors(t, err)
	if !strings.Contains(strings.Join(fe["password"], " "), "too long") {
		t.Fatalf("expected too long error for %d bytes, got %v", len(pw), fe["password"])
	}
	if len(users.byEmail) != 0 {
		t.Fatalf("expected no user to be stored")
	}

	// 72 bytes is still accepted.
	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@b.io", FullName: "Ann Lee", Password: pw[:72],
	}); err != nil {
		t.Fatalf("unexpected err at 72 bytes: %v", err)
	}
}

func TestLogin_UnknownEmailComparesDummyHash(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())
	if err != nil || cost != bcrypt.DefaultCost {
		t.Fatalf("expected a default-cost dummy hash, got cost=%d err=%v", cost, err)
	}

	svc, _, _ := newTestService()
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "jobboard-unknown-user"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
