package loan

import "loan-portal/internal/domain/document"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// CanTransitionPayment: pending -> {completed, failed} -> refunded.
func CanTransitionPayment(from, to PaymentStatus) bool {
	switch from {
	case PaymentPending:
		return to == PaymentCompleted || to == PaymentFailed
	case PaymentCompleted, PaymentFailed:
		return to == PaymentRefunded
	}
	return false
}

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodDebitCard    PaymentMethod = "Debit Card"
	MethodACH          PaymentMethod = "ACH"
	MethodCheck        PaymentMethod = "Check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodCreditCard, MethodDebitCard, MethodACH, MethodCheck:
		return true
	}
	return false
}

// Payment is one payment attempt against a loan.
type Payment struct {
	document.Document
	Loan     string `json:"loan"`
	Customer string `json:"customer"`

	PaymentAmount    float64       `json:"payment_amount"`
	PaymentDate      string        `json:"payment_date"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentReference string        `json:"payment_reference,omitempty"`

	PrincipalAmount float64 `json:"principal_amount"`
	InterestAmount  float64 `json:"interest_amount"`
	FeesAmount      float64 `json:"fees_amount,omitempty"`

	PaymentStatus   PaymentStatus `json:"payment_status"`
	ProcessingFee   float64       `json:"processing_fee,omitempty"`
	ProcessedBy     string        `json:"processed_by,omitempty"`
	ProcessingNotes string        `json:"processing_notes,omitempty"`
}
