package http

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-portal/internal/infrastructure/frappe"
)

// SessionCookie holds the caller's backend session, encoded so the
// backend's own cookie pairs fit in one value.
const SessionCookie = "portal_session"

// SessionScope binds every request to the backend session its caller
// holds. A missing or unreadable cookie scopes the request to no session,
// so one caller can never act on another's login.
func SessionScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := frappe.ContextWithSession(req.Context(), callerSession(req))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func callerSession(r *http.Request) string {
	ck, err := r.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return ""
	}
	return string(raw)
}

func setSessionCookie(c echo.Context, session string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(session)),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})
}
