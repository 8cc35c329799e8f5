package bildy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/phenrril/bildy-admin/internal/domain"
)

const DefaultBaseURL = "https://bildy-rpmaya.koyeb.app"

// Client talks to the remote Bildy API. It holds no token of its own: every
// call gets the caller's session and builds a bearer transport for it.
type Client struct {
	baseURL   string
	loginPath string
	timeout   time.Duration
	base      *http.Client
	now       func() time.Time
}

type Option func(*Client)

// WithHTTPClient sets the client whose transport carries the requests.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.base = hc } }

func WithLoginPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.loginPath = "/" + strings.TrimPrefix(p, "/")
		}
	}
}

// WithTimeout bounds each request; zero leaves requests bounded only by ctx.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		loginPath: "/api/user/login",
		now:       time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ domain.API = (*Client)(nil)

func (c *Client) plainClient() *http.Client {
	hc := &http.Client{Timeout: c.timeout}
	if c.base != nil {
		hc.Transport = c.base.Transport
	}
	return hc
}

func (c *Client) authClient(ctx context.Context, s domain.Session) *http.Client {
	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.Token, TokenType: "Bearer"}))
	hc.Timeout = c.timeout
	return hc
}

type call struct {
	op         string
	method     string
	path       string
	body       any
	defaultMsg string
	accept     string // empty means JSON
}

// do runs an authenticated call and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, s domain.Session, k call) ([]byte, error) {
	if !s.Valid(c.now()) {
		return nil, fmt.Errorf("%s: %w", k.op, domain.ErrUnauthenticated)
	}
	return c.send(ctx, c.authClient(ctx, s), k)
}

func (c *Client) send(ctx context.Context, hc *http.Client, k call) ([]byte, error) {
	var rd io.Reader
	if k.body != nil {
		buf, err := json.Marshal(k.body)
		if err != nil {
			return nil, fmt.Errorf("%s: serializando payload: %w", k.op, err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, k.method, c.baseURL+k.path, rd)
	if err != nil {
		return nil, err
	}
	accept := k.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: error de conexión con la API: %w", k.op, err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: leyendo respuesta: %w", k.op, err)
	}
	if res.StatusCode >= 300 {
		return nil, apiError(k, res.StatusCode, b)
	}
	return b, nil
}

func apiError(k call, status int, body []byte) error {
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := k.defaultMsg
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if m := strings.TrimSpace(apiErr.Message); m != "" {
			msg = m
		} else if m := strings.TrimSpace(apiErr.Error); m != "" {
			msg = m
		}
	}
	// 401 matches domain.ErrUnauthenticated through APIError.Is.
	return &domain.APIError{Op: k.op, Status: status, Message: msg}
}

func decode[T any](op string, b []byte) (T, error) {
	var v T
	if len(bytes.TrimSpace(b)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%s: respuesta inválida: %w", op, err)
	}
	return v, nil
}

// decodeOne tolerates an empty body and returns nil for it, so callers fall
// back to what they sent.
func decodeOne[T any](op string, b []byte) (*T, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	v, err := decode[T](op, b)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
