package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-portal/internal/usecase/auth"
	"loan-portal/internal/usecase/customer"
)

type AuthHandler struct {
	auth      *auth.Usecase
	customers *customer.Usecase
}

func NewAuthHandler(a *auth.Usecase, c *customer.Usecase) *AuthHandler {
	return &AuthHandler{auth: a, customers: c}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, res)
	}
	if res.Session != "" {
		setSessionCookie(c, res.Session)
	}
	return c.JSON(http.StatusOK, res)
}

// Logout ends the caller's backend session and drops its cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if !h.auth.Logout(c.Request().Context()) {
		return backendFailed(c)
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(c echo.Context) error {
	u := h.auth.CurrentUser(c.Request().Context())
	if u == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
	}
	return c.JSON(http.StatusOK, u)
}

type signupReq struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	EmailID         string `json:"email_id" validate:"required,email"`
	MobileNo        string `json:"mobile_no"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,isodate"`
	Nationality     string `json:"nationality"`
	Address         string `json:"address"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Signup creates the login user and the customer profile in one call.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res := h.customers.Register(c.Request().Context(), customer.RegisterInput{
		CreateInput: customer.CreateInput{
			CustomerName: req.CustomerName,
			EmailID:      req.EmailID,
			MobileNo:     req.MobileNo,
			DateOfBirth:  req.DateOfBirth,
			Nationality:  req.Nationality,
			Address:      req.Address,
		},
		Password: req.Password,
	})
	if !res.Success {
		return c.JSON(http.StatusBadGateway, res)
	}
	return c.JSON(http.StatusCreated, res)
}
