package frappe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config describes how to reach and authenticate against the backend.
// APIKey+APISecret, AccessToken and session login are mutually exclusive;
// when more than one is set the first in that order wins.
type Config struct {
	BaseURL     string
	APIKey      string
	APISecret   string
	AccessToken string
	// Timeout of 0 leaves the transport default in place.
	Timeout time.Duration
}

type AuthMode int

const (
	AuthSession AuthMode = iota
	AuthToken
	AuthBearer
)

func (m AuthMode) String() string {
	switch m {
	case AuthToken:
		return "token"
	case AuthBearer:
		return "bearer"
	default:
		return "session"
	}
}

func (c Config) Mode() AuthMode {
	switch {
	case c.APIKey != "" && c.APISecret != "":
		return AuthToken
	case c.AccessToken != "":
		return AuthBearer
	default:
		return AuthSession
	}
}

// Observer receives one callback per backend round trip.
type Observer interface {
	ObserveBackendCall(op string, status int, elapsed time.Duration, err error)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithObserver(o Observer) Option { return func(c *Client) { c.obs = o } }

func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

// Client talks to a Frappe-style resource backend. It is safe for concurrent
// use; the only mutable state is the session cookie set by Login. Servers
// acting for many users should not call Login; they pass each caller's
// session through ContextWithSession instead.
type Client struct {
	cfg  Config
	base string
	http *http.Client
	obs  Observer
	log  *zap.Logger

	mu      sync.RWMutex
	session string
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{Timeout: cfg.Timeout},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Mode() AuthMode { return c.cfg.Mode() }

// Session returns the cookie header captured by the last successful Login.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(s string) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Client) applyAuth(ctx context.Context, h http.Header) {
	switch c.cfg.Mode() {
	case AuthToken:
		h.Set("Authorization", "token "+c.cfg.APIKey+":"+c.cfg.APISecret)
	case AuthBearer:
		h.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	default:
		s, scoped := sessionFrom(ctx)
		if !scoped {
			s = c.Session()
		}
		if s != "" {
			h.Set("Cookie", s)
		}
	}
}

type loginRequest struct {
	Usr string `json:"usr"`
	Pwd string `json:"pwd"`
}

// Login performs a password login and keeps the returned session cookies
// for later requests. Any failure is reported as false.
func (c *Client) Login(ctx context.Context, usr, pwd string) bool {
	session, ok := c.OpenSession(ctx, usr, pwd)
	if ok && session != "" {
		c.setSession(session)
	}
	return ok
}

// OpenSession performs a password login and returns the session as a Cookie
// header value without keeping it on the client.
func (c *Client) OpenSession(ctx context.Context, usr, pwd string) (string, bool) {
	payload, _ := json.Marshal(loginRequest{Usr: usr, Pwd: pwd})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/method/login", bytes.NewReader(payload))
	if err != nil {
		c.log.Warn("frappe login: build request", zap.Error(err))
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("login", 0, start, err)
		c.log.Warn("frappe login failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	c.observe("login", resp.StatusCode, start, nil)

	if !ok(resp.StatusCode) {
		return "", false
	}
	return cookieHeader(resp.Cookies()), true
}

// Logout ends the backend session. When ctx carries no scoped session the
// client's own cookie is forgotten too.
func (c *Client) Logout(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/method/logout", nil)
	if err != nil {
		c.log.Warn("frappe logout: build request", zap.Error(err))
		return false
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("logout", 0, start, err)
		c.log.Warn("frappe logout failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	c.observe("logout", resp.StatusCode, start, nil)

	if !ok(resp.StatusCode) {
		return false
	}
	if _, scoped := sessionFrom(ctx); !scoped {
		c.setSession("")
	}
	return true
}

func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.call(ctx, "get", http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.call(ctx, "post", http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.call(ctx, "put", http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.call(ctx, "delete", http.MethodDelete, path, nil)
}

// Request issues an authenticated call with a JSON body (nil for none) and
// returns the decoded envelope. Non-2xx responses become *BackendError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Envelope, error) {
	return c.call(ctx, strings.ToLower(method), method, path, body)
}

func (c *Client) call(ctx context.Context, op, method, path string, body any) (*Envelope, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &BackendError{Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, rdr)
	if err != nil {
		return nil, &BackendError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, "")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	c.applyAuth(ctx, req.Header)
	return req, nil
}

// do sends req and decodes the envelope. failPrefix replaces the default
// "HTTP <code>" prefix of status-derived error messages when set.
func (c *Client) do(op string, req *http.Request, failPrefix string) (*Envelope, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start, err)
		c.log.Debug("frappe request failed", zap.String("op", op), zap.String("path", req.URL.Path), zap.Error(err))
		return nil, &BackendError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(op, resp.StatusCode, start, err)
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	var env Envelope
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if !ok(resp.StatusCode) {
		berr := &BackendError{StatusCode: resp.StatusCode, ExcType: env.ExcType, Message: env.errorMessage()}
		if berr.Message == "" {
			if failPrefix != "" {
				berr.Message = failPrefix + ": " + statusText(resp)
			} else {
				berr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))
			}
		}
		c.observe(op, resp.StatusCode, start, berr)
		c.log.Debug("frappe request rejected", zap.String("op", op), zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode), zap.String("error", berr.Message))
		return nil, berr
	}
	if decodeErr != nil {
		berr := &BackendError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", decodeErr), Err: decodeErr}
		c.observe(op, resp.StatusCode, start, berr)
		return nil, berr
	}
	c.observe(op, resp.StatusCode, start, nil)
	return &env, nil
}

func (c *Client) observe(op string, status int, start time.Time, err error) {
	if c.obs != nil {
		c.obs.ObserveBackendCall(op, status, time.Since(start), err)
	}
}

func ok(code int) bool { return code >= 200 && code < 300 }

func statusText(resp *http.Response) string {
	if t := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode))); t != "" {
		return t
	}
	return http.StatusText(resp.StatusCode)
}

func cookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Name == "" {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

// resourcePath builds /api/resource/<doctype>[/<name>] with escaped segments.
func resourcePath(doctype string, name ...string) string {
	p := "/api/resource/" + url.PathEscape(doctype)
	for _, n := range name {
		p += "/" + url.PathEscape(n)
	}
	return p
}

func methodPath(method string) string { return "/api/method/" + url.PathEscape(method) }
