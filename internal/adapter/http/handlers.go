package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger checks that the document backend answers.
type Pinger interface {
	CallMethod(ctx context.Context, method string, args, out any) error
}

type Handler struct{ backend Pinger }

func NewHandler(backend Pinger) *Handler { return &Handler{backend: backend} }

const pingTimeout = 3 * time.Second

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.backend == nil {
		return c.JSON(http.StatusOK, body)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()
	var pong string
	if err := h.backend.CallMethod(ctx, "ping", nil, &pong); err != nil {
		body["status"] = "degraded"
		body["backend"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	body["backend"] = pong
	return c.JSON(http.StatusOK, body)
}
