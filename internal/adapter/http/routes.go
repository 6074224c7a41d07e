package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers groups everything Register mounts. Metrics may be nil.
type Handlers struct {
	Health       *Handler
	Proxy        *ProxyHandler
	Auth         *AuthHandler
	Customers    *CustomerHandler
	Applications *ApplicationHandler
	Loans        *LoanHandler
	Metrics      http.Handler
}

// Register mounts the API. Every /api route runs under the caller's own
// backend session; idem guards the routes that create backend documents on
// behalf of a customer.
func Register(e *echo.Echo, h Handlers, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.Metrics))
	}

	api := e.Group("/api", SessionScope())
	api.POST("/frappe-create-user", h.Proxy.CreateUser)
	api.POST("/frappe-login", h.Proxy.Login)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)
	api.POST("/signup", h.Auth.Signup)

	api.GET("/customers/:customer_id", h.Customers.GetCustomer)
	api.PUT("/customers/:customer_id", h.Customers.UpdateCustomer)
	api.GET("/customers/:customer_id/applications", h.Applications.ListByCustomer)
	api.GET("/customers/:customer_id/loans", h.Loans.ListByCustomer)
	api.GET("/customers/:customer_id/dashboard", h.Customers.Dashboard)

	api.POST("/applications", h.Applications.Submit, idem)
	api.GET("/applications/:application_id", h.Applications.Get)
	api.PATCH("/applications/:application_id/status", h.Applications.UpdateStatus)
	api.POST("/applications/:application_id/documents", h.Applications.UploadDocument)

	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.GET("/loans/:loan_id/payments", h.Loans.Payments)
	api.POST("/loans/:loan_id/payments", h.Loans.MakePayment, idem)

	api.GET("/uploads/unattached", h.Applications.Unattached)
}
