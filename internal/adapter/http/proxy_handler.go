package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/infrastructure/frappe"
)

const (
	createUserPath = "/api/resource/User"
	loginPath      = "/api/method/login"
)

// Forwarder relays a raw JSON body to the backend.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, body []byte) (*frappe.RawResponse, error)
}

// ProxyHandler passes browser requests straight to the backend and relays
// its status and JSON body unchanged.
type ProxyHandler struct {
	// withKey authenticates with the API key pair; nil when none is configured.
	withKey Forwarder
	// anon carries no credentials.
	anon Forwarder
	log  *zap.Logger
}

func NewProxyHandler(withKey, anon Forwarder, log *zap.Logger) *ProxyHandler {
	return &ProxyHandler{withKey: withKey, anon: anon, log: log}
}

func proxyError(c echo.Context, msg string) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

// CreateUser forwards the body to the User resource using the API key pair.
func (h *ProxyHandler) CreateUser(c echo.Context) error {
	body, err := readJSON(c)
	if err != nil {
		return proxyError(c, err.Error())
	}
	if h.withKey == nil {
		return proxyError(c, "Missing Frappe API credentials")
	}
	return h.relay(c, h.withKey, createUserPath, body)
}

// Login forwards the body to the password login method without credentials.
func (h *ProxyHandler) Login(c echo.Context) error {
	body, err := readJSON(c)
	if err != nil {
		return proxyError(c, err.Error())
	}
	return h.relay(c, h.anon, loginPath, body)
}

func (h *ProxyHandler) relay(c echo.Context, fwd Forwarder, path string, body []byte) error {
	// The proxy never carries the caller's portal session.
	ctx := frappe.ContextWithSession(c.Request().Context(), "")
	resp, err := fwd.Forward(ctx, http.MethodPost, path, body)
	if err != nil {
		h.log.Error("proxy forward failed", zap.String("path", path), zap.Error(err))
		return proxyError(c, err.Error())
	}
	if !json.Valid(resp.Body) {
		h.log.Warn("proxy got non-JSON answer", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return proxyError(c, "backend returned invalid JSON")
	}
	return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, resp.Body)
}

var errInvalidJSON = errors.New("invalid JSON body")

func readJSON(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}
	return body, nil
}
