package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"
	ucauth "jobboard/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (jwt.Pair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (jwt.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, tx repository.Transactor, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users, tx), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (jwt.Pair, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return jwt.Pair{}, mapAuthError(err)
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (jwt.Pair, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return jwt.Pair{}, mapAuthError(err)
	}
	return u.issue(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	if refreshToken == "" {
		return jwt.Pair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Pair{}, ErrRefreshTokenExpired
		}
		return jwt.Pair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.Pair{}, ErrInvalidRefreshToken
		}
		return jwt.Pair{}, ErrInternal
	}

	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (jwt.Pair, error) {
	pair, err := u.jwt.IssuePair(usr.ID, usr.Email)
	if err != nil {
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

func mapAuthError(err error) error {
	var fe validation.FieldErrors
	switch {
	case errors.As(err, &fe):
		return newValidationError(fe)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return ErrInvalidCredentials
	default:
		return ErrInternal
	}
}
