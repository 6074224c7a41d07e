package loan

import "loan-portal/internal/domain/document"

const (
	Doctype        = "Loan"
	PaymentDoctype = "Loan Payment"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusDefaulted Status = "Defaulted"
	StatusClosed    Status = "Closed"
)

// CanTransition reports whether the backend workflow allows from -> to.
func CanTransition(from, to Status) bool {
	return from == StatusActive && (to == StatusCompleted || to == StatusDefaulted || to == StatusClosed)
}

// Loan is a funded application. Terms are fixed at creation; payment
// counters move with each completed payment.
type Loan struct {
	document.Document
	LoanApplication string `json:"loan_application"`
	Customer        string `json:"customer"`
	CustomerName    string `json:"customer_name,omitempty"`

	LoanAmount     float64 `json:"loan_amount"`
	InterestRate   float64 `json:"interest_rate"`
	LoanTerm       int     `json:"loan_term"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalAmount    float64 `json:"total_amount"`

	LoanStatus       Status `json:"loan_status"`
	DisbursementDate string `json:"disbursement_date,omitempty"`
	MaturityDate     string `json:"maturity_date,omitempty"`

	NextPaymentDate   string  `json:"next_payment_date,omitempty"`
	RemainingBalance  float64 `json:"remaining_balance"`
	PaymentsMade      int     `json:"payments_made"`
	PaymentsRemaining int     `json:"payments_remaining"`

	DisbursementAccount   string `json:"disbursement_account,omitempty"`
	DisbursementReference string `json:"disbursement_reference,omitempty"`
}

// Paid is the principal already repaid.
func (l *Loan) Paid() float64 { return l.LoanAmount - l.RemainingBalance }
