package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")
)

const emailTakenMessage = "user with this email already exists."

// dummyHash is compared against on unknown emails so both login failures cost a bcrypt round.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("jobboard-unknown-user"), bcrypt.DefaultCost)
	return h
})

type RegisterInput struct {
	Email    string `json:"email" validate:"required,notblank,email,max=254"`
	FullName string `json:"full_name" validate:"required,notblank,max=255"`
	Password string `json:"password" validate:"required,notblank"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

// Service owns credential checks. Field-level failures are returned as
// validation.FieldErrors.
type Service struct {
	users user.Repository
	tx    repository.Transactor
}

func NewService(users user.Repository, tx repository.Transactor) *Service {
	return &Service{users: users, tx: tx}
}

// Register creates the user together with an empty profile.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Email = user.NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if fe := validation.Struct(in); fe != nil {
		return user.User{}, fe
	}

	if fe := validatePassword(in.Password, user.LocalPart(in.Email), in.FullName); fe != nil {
		return user.User{}, fe
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, validation.FieldErrors{"email": {emailTakenMessage}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
	}

	err = s.tx.WithinTx(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Users.Create(ctx, u); err != nil {
			return err
		}
		_, err := repos.Profiles.CreateEmpty(ctx, u.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, validation.FieldErrors{"email": {emailTakenMessage}}
		}
		return user.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	if fe := validation.Struct(in); fe != nil {
		return user.User{}, fe
	}

	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
