package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type AuthUC struct {
	Auth domain.AuthAPI
}

var ErrMissingCredentials = errors.New("email y contraseña son obligatorios")

func (uc *AuthUC) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrMissingCredentials
	}
	s, err := uc.Auth.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return domain.Session{}, err
	}
	if s.Email == "" {
		s.Email = email
	}
	return s, nil
}
