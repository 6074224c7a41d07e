package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "loan-portal/internal/domain/loan"
	"loan-portal/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, ok, err := validParam(c, "loan_id")
	if !ok {
		return err
	}
	out := h.uc.Get(c.Request().Context(), id)
	if out == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListByCustomer(c echo.Context) error {
	id, ok, err := validParam(c, "customer_id")
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, h.uc.ListByCustomer(c.Request().Context(), id))
}

func (h *LoanHandler) Payments(c echo.Context) error {
	id, ok, err := validParam(c, "loan_id")
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, h.uc.Payments(c.Request().Context(), id))
}

type makePaymentReq struct {
	Customer         string               `json:"customer" validate:"required,docname"`
	PaymentAmount    float64              `json:"payment_amount" validate:"gt=0,dec2"`
	PaymentMethod    domain.PaymentMethod `json:"payment_method" validate:"required,paymethod"`
	PaymentReference string               `json:"payment_reference"`
}

func (h *LoanHandler) MakePayment(c echo.Context) error {
	id, ok, err := validParam(c, "loan_id")
	if !ok {
		return err
	}
	var req makePaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out := h.uc.MakePayment(c.Request().Context(), loan.PaymentInput{
		Loan:             id,
		Customer:         req.Customer,
		PaymentAmount:    req.PaymentAmount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	})
	if out == nil {
		return backendFailed(c)
	}
	return c.JSON(http.StatusCreated, out)
}
