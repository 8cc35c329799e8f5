package bildy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type loginResp struct {
	Token string `json:"token"`
	User  struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for a session. The token's exp claim is read
// without verification; the API stays the authority on validity.
func (c *Client) Login(ctx context.Context, cr domain.Credentials) (domain.Session, error) {
	b, err := c.send(ctx, c.plainClient(), call{
		op:         "login",
		method:     http.MethodPost,
		path:       c.loginPath,
		body:       cr,
		defaultMsg: "Credenciales incorrectas",
	})
	if err != nil {
		return domain.Session{}, err
	}
	lr, err := decode[loginResp]("login", b)
	if err != nil {
		return domain.Session{}, err
	}
	if lr.Token == "" {
		return domain.Session{}, errors.New("login: respuesta sin token")
	}
	return domain.Session{Token: lr.Token, Email: lr.User.Email, ExpiresAt: tokenExpiry(lr.Token)}, nil
}

// tokenExpiry returns the zero time for tokens that are not JWTs or carry
// no exp.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
