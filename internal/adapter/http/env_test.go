package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"loan-portal/internal/adapter/middleware"
	"loan-portal/internal/infrastructure/frappe"
	"loan-portal/internal/testutil/frappefake"
	"loan-portal/internal/testutil/uploadmock"
	"loan-portal/internal/usecase/application"
	"loan-portal/internal/usecase/auth"
	"loan-portal/internal/usecase/customer"
	"loan-portal/internal/usecase/dashboard"
	"loan-portal/internal/usecase/loan"
)

var testNow = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }

type testEnv struct {
	e      *echo.Echo
	fake   *frappefake.Server
	ledger *uploadmock.Repo
	redis  *miniredis.Miniredis
}

// newTestEnv wires the full router against an in-memory backend. cfg is
// applied on top of the fake's URL; a zero cfg means session auth.
func newTestEnv(t *testing.T, cfg frappe.Config) *testEnv {
	t.Helper()
	fake := frappefake.New()
	t.Cleanup(fake.Close)
	cfg.BaseURL = fake.URL

	log := zap.NewNop()
	client := frappe.New(cfg)
	anon := frappe.New(frappe.Config{BaseURL: fake.URL})
	var keyed Forwarder
	if cfg.APIKey != "" && cfg.APISecret != "" {
		keyed = frappe.New(frappe.Config{BaseURL: fake.URL, APIKey: cfg.APIKey, APISecret: cfg.APISecret})
	}

	ledger := &uploadmock.Repo{}
	authUC := auth.NewUsecase(client, log)
	customerUC := customer.NewUsecase(client, authUC, log)
	appUC := application.NewUsecase(client, log, application.WithClock(testNow), application.WithLedger(ledger))
	loanUC := loan.NewUsecase(client, log, loan.WithClock(testNow))
	dashUC := dashboard.NewUsecase(client, log)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := echo.New()
	e.Validator = NewValidator()
	Register(e, Handlers{
		Health:       NewHandler(client),
		Proxy:        NewProxyHandler(keyed, anon, log),
		Auth:         NewAuthHandler(authUC, customerUC),
		Customers:    NewCustomerHandler(customerUC, dashUC),
		Applications: NewApplicationHandler(appUC),
		Loans:        NewLoanHandler(loanUC),
	}, middleware.Idempotency(rdb, time.Minute, log))

	return &testEnv{e: e, fake: fake, ledger: ledger, redis: mr}
}

func tokenCfg() frappe.Config { return frappe.Config{APIKey: "k", APISecret: "s"} }

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func (te *testEnv) do(method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	te.e.ServeHTTP(rec, req)
	return rec
}

func idemHeaders(key, customerID string) map[string]string {
	return map[string]string{
		middleware.HeaderIdempotencyKey: key,
		middleware.HeaderRequestAt:      time.Now().UTC().Format(time.RFC3339),
		middleware.HeaderCustomerID:     customerID,
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("bad json %q: %v", rec.Body.String(), err)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, code, rec.Body.String())
	}
}
