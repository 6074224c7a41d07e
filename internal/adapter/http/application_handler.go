package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domain "loan-portal/internal/domain/application"
	"loan-portal/internal/infrastructure/frappe"
	"loan-portal/internal/usecase/application"
)

const defaultUnattachedLimit = 50

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// same fields as application.SubmitInput, plus validation
type submitApplicationReq struct {
	Applicant          string                `json:"applicant" validate:"required,docname"`
	ApplicantName      string                `json:"applicant_name"`
	Email              string                `json:"email" validate:"omitempty,email"`
	Phone              string                `json:"phone"`
	LoanAmount         float64               `json:"loan_amount" validate:"gt=0,dec2"`
	LoanTerm           int                   `json:"loan_term" validate:"gt=0,lte=360"`
	LoanPurpose        string                `json:"loan_purpose" validate:"required"`
	PurposeDescription string                `json:"purpose_description"`
	DateOfBirth        string                `json:"date_of_birth" validate:"required,isodate"`
	Address            string                `json:"address" validate:"required"`
	Nationality        string                `json:"nationality"`
	EmployerName       string                `json:"employer_name" validate:"required"`
	JobTitle           string                `json:"job_title" validate:"required"`
	EmploymentType     domain.EmploymentType `json:"employment_type" validate:"required,employment"`
	MonthlyIncome      float64               `json:"monthly_income" validate:"gte=0,dec2"`
	WorkDuration       string                `json:"work_duration"`
	BankName           string                `json:"bank_name" validate:"required"`
	AccountType        string                `json:"account_type" validate:"required"`
	AccountNumber      string                `json:"account_number" validate:"required"`
	RoutingNumber      string                `json:"routing_number" validate:"required"`
	TermsAccepted      bool                  `json:"terms_accepted" validate:"eq=true"`
	CreditCheckConsent bool                  `json:"credit_check_consent" validate:"eq=true"`
	DataUsageConsent   bool                  `json:"data_usage_consent"`
	MarketingConsent   bool                  `json:"marketing_consent"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out := h.uc.Submit(c.Request().Context(), application.SubmitInput(req))
	if out == nil {
		return backendFailed(c)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id, ok, err := validParam(c, "application_id")
	if !ok {
		return err
	}
	out := h.uc.Get(c.Request().Context(), id)
	if out == nil {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) ListByCustomer(c echo.Context) error {
	id, ok, err := validParam(c, "customer_id")
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, h.uc.ListByCustomer(c.Request().Context(), id))
}

type updateStatusReq struct {
	Status domain.Status `json:"status" validate:"required,appstatus"`
	Notes  string        `json:"notes"`
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, ok, err := validParam(c, "application_id")
	if !ok {
		return err
	}
	var req updateStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out := h.uc.UpdateStatus(c.Request().Context(), id, req.Status, req.Notes)
	if out == nil {
		return backendFailed(c)
	}
	return c.JSON(http.StatusOK, out)
}

// UploadDocument takes a multipart form with "file" and "document_type".
func (h *ApplicationHandler) UploadDocument(c echo.Context) error {
	id, ok, err := validParam(c, "application_id")
	if !ok {
		return err
	}
	kind, err := domain.ParseDocumentKind(c.FormValue("document_type"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "document_type", Message: "must be one of government_id, proof_of_address, proof_of_income, bank_statement"}},
		})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
	}
	defer src.Close()

	url := h.uc.UploadDocument(c.Request().Context(), id, frappe.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     src,
	}, kind)
	if url == "" {
		return backendFailed(c)
	}
	return c.JSON(http.StatusCreated, map[string]string{"file_url": url, "document_type": string(kind)})
}

// Unattached lists uploads whose attach step failed.
func (h *ApplicationHandler) Unattached(c echo.Context) error {
	limit := defaultUnattachedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = n
	}
	rows, err := h.uc.Unattached(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "upload ledger unavailable"})
	}
	return c.JSON(http.StatusOK, rows)
}
