package application

import (
	"errors"

	"loan-portal/internal/domain/document"
)

const Doctype = "Loan Application"

type Status string

const (
	StatusDraft       Status = "Draft"
	StatusSubmitted   Status = "Submitted"
	StatusUnderReview Status = "Under Review"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusDisbursed   Status = "Disbursed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

// Pending reports whether the application still awaits a decision.
func (s Status) Pending() bool { return s == StatusSubmitted || s == StatusUnderReview }

var transitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusDisbursed},
}

// CanTransition reports whether the backend workflow allows from -> to.
// Enforcement lives in the backend; callers only use this for diagnostics.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// DocumentKind names the attachment field on the application.
type DocumentKind string

const (
	GovernmentID   DocumentKind = "government_id"
	ProofOfAddress DocumentKind = "proof_of_address"
	ProofOfIncome  DocumentKind = "proof_of_income"
	BankStatement  DocumentKind = "bank_statement"
)

var ErrUnknownDocumentKind = errors.New("unknown document kind")

func ParseDocumentKind(s string) (DocumentKind, error) {
	switch k := DocumentKind(s); k {
	case GovernmentID, ProofOfAddress, ProofOfIncome, BankStatement:
		return k, nil
	}
	return "", ErrUnknownDocumentKind
}

type EmploymentType string

const (
	EmploymentFullTime     EmploymentType = "Full-time"
	EmploymentPartTime     EmploymentType = "Part-time"
	EmploymentGigWorker    EmploymentType = "Gig Worker"
	EmploymentSelfEmployed EmploymentType = "Self-employed"
	EmploymentContract     EmploymentType = "Contract"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentGigWorker, EmploymentSelfEmployed, EmploymentContract:
		return true
	}
	return false
}

// LoanApplication is a borrower's request, with a snapshot of personal,
// employment and banking data taken at submission time.
type LoanApplication struct {
	document.Document
	Applicant     string `json:"applicant"`
	ApplicantName string `json:"applicant_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`

	LoanAmount         float64 `json:"loan_amount"`
	LoanTerm           int     `json:"loan_term"`
	LoanPurpose        string  `json:"loan_purpose"`
	PurposeDescription string  `json:"purpose_description,omitempty"`
	InterestRate       float64 `json:"interest_rate,omitempty"`
	MonthlyPayment     float64 `json:"monthly_payment,omitempty"`

	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Nationality string `json:"nationality,omitempty"`

	EmployerName   string         `json:"employer_name"`
	JobTitle       string         `json:"job_title"`
	EmploymentType EmploymentType `json:"employment_type"`
	MonthlyIncome  float64        `json:"monthly_income"`
	WorkDuration   string         `json:"work_duration,omitempty"`

	BankName      string `json:"bank_name"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`

	ApplicationStatus Status `json:"application_status"`
	ApprovalDate      string `json:"approval_date,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`

	GovernmentID   string `json:"government_id,omitempty"`
	ProofOfAddress string `json:"proof_of_address,omitempty"`
	ProofOfIncome  string `json:"proof_of_income,omitempty"`
	BankStatement  string `json:"bank_statement,omitempty"`

	TermsAccepted      document.Flag `json:"terms_accepted"`
	CreditCheckConsent document.Flag `json:"credit_check_consent"`
	DataUsageConsent   document.Flag `json:"data_usage_consent"`
	MarketingConsent   document.Flag `json:"marketing_consent"`

	ApplicationDate string `json:"application_date"`
	ProcessedBy     string `json:"processed_by,omitempty"`
	ProcessingNotes string `json:"processing_notes,omitempty"`
}

// Attachment returns the file URL stored for kind.
func (a *LoanApplication) Attachment(kind DocumentKind) string {
	switch kind {
	case GovernmentID:
		return a.GovernmentID
	case ProofOfAddress:
		return a.ProofOfAddress
	case ProofOfIncome:
		return a.ProofOfIncome
	case BankStatement:
		return a.BankStatement
	}
	return ""
}
