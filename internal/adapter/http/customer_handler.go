package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-portal/internal/usecase/customer"
	"loan-portal/internal/usecase/dashboard"
)

type CustomerHandler struct {
	uc        *customer.Usecase
	dashboard *dashboard.Usecase
}

func NewCustomerHandler(uc *customer.Usecase, d *dashboard.Usecase) *CustomerHandler {
	return &CustomerHandler{uc: uc, dashboard: d}
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, ok, err := validParam(c, "customer_id")
	if !ok {
		return err
	}
	out := h.uc.Get(c.Request().Context(), id)
	if out == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, out)
}

// nil fields are left untouched
type updateCustomerReq struct {
	CustomerName           *string  `json:"customer_name,omitempty" validate:"omitempty,min=1"`
	EmailID                *string  `json:"email_id,omitempty" validate:"omitempty,email"`
	MobileNo               *string  `json:"mobile_no,omitempty"`
	DateOfBirth            *string  `json:"date_of_birth,omitempty" validate:"omitempty,isodate"`
	Nationality            *string  `json:"nationality,omitempty"`
	CustomerPrimaryAddress *string  `json:"customer_primary_address,omitempty"`
	EmploymentType         *string  `json:"employment_type,omitempty" validate:"omitempty,employment"`
	EmployerName           *string  `json:"employer_name,omitempty"`
	JobTitle               *string  `json:"job_title,omitempty"`
	MonthlyIncome          *float64 `json:"monthly_income,omitempty" validate:"omitempty,gte=0,dec2"`
	BankName               *string  `json:"bank_name,omitempty"`
	AccountNumber          *string  `json:"account_number,omitempty"`
	RoutingNumber          *string  `json:"routing_number,omitempty"`
}

func (r updateCustomerReq) patch() (customer.Patch, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var p customer.Patch
	err = json.Unmarshal(b, &p)
	return p, err
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, ok, err := validParam(c, "customer_id")
	if !ok {
		return err
	}
	var req updateCustomerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	p, err := req.patch()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(p) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: []FieldError{{Field: "_", Message: "no fields to update"}}})
	}
	out := h.uc.Update(c.Request().Context(), id, p)
	if out == nil {
		return backendFailed(c)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Dashboard(c echo.Context) error {
	id, ok, err := validParam(c, "customer_id")
	if !ok {
		return err
	}
	out := h.dashboard.Get(c.Request().Context(), id)
	if out == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, out)
}
