package application

import (
	"loan-portal/internal/domain/application"
	"loan-portal/internal/domain/document"
	"loan-portal/internal/infrastructure/frappe"
)

type SubmitInput struct {
	Applicant          string                     `json:"applicant"`
	ApplicantName      string                     `json:"applicant_name"`
	Email              string                     `json:"email"`
	Phone              string                     `json:"phone"`
	LoanAmount         float64                    `json:"loan_amount"`
	LoanTerm           int                        `json:"loan_term"`
	LoanPurpose        string                     `json:"loan_purpose"`
	PurposeDescription string                     `json:"purpose_description"`
	DateOfBirth        string                     `json:"date_of_birth"`
	Address            string                     `json:"address"`
	Nationality        string                     `json:"nationality"`
	EmployerName       string                     `json:"employer_name"`
	JobTitle           string                     `json:"job_title"`
	EmploymentType     application.EmploymentType `json:"employment_type"`
	MonthlyIncome      float64                    `json:"monthly_income"`
	WorkDuration       string                     `json:"work_duration"`
	BankName           string                     `json:"bank_name"`
	AccountType        string                     `json:"account_type"`
	AccountNumber      string                     `json:"account_number"`
	RoutingNumber      string                     `json:"routing_number"`
	TermsAccepted      bool                       `json:"terms_accepted"`
	CreditCheckConsent bool                       `json:"credit_check_consent"`
	DataUsageConsent   bool                       `json:"data_usage_consent"`
	MarketingConsent   bool                       `json:"marketing_consent"`
}

type submitPayload struct {
	Applicant          string                     `json:"applicant"`
	ApplicantName      string                     `json:"applicant_name,omitempty"`
	Email              string                     `json:"email,omitempty"`
	Phone              string                     `json:"phone,omitempty"`
	LoanAmount         float64                    `json:"loan_amount"`
	LoanTerm           int                        `json:"loan_term"`
	LoanPurpose        string                     `json:"loan_purpose"`
	PurposeDescription string                     `json:"purpose_description,omitempty"`
	DateOfBirth        string                     `json:"date_of_birth"`
	Address            string                     `json:"address"`
	Nationality        string                     `json:"nationality,omitempty"`
	EmployerName       string                     `json:"employer_name"`
	JobTitle           string                     `json:"job_title"`
	EmploymentType     application.EmploymentType `json:"employment_type"`
	MonthlyIncome      float64                    `json:"monthly_income"`
	WorkDuration       string                     `json:"work_duration,omitempty"`
	BankName           string                     `json:"bank_name"`
	AccountType        string                     `json:"account_type"`
	AccountNumber      string                     `json:"account_number"`
	RoutingNumber      string                     `json:"routing_number"`
	TermsAccepted      document.Flag              `json:"terms_accepted"`
	CreditCheckConsent document.Flag              `json:"credit_check_consent"`
	DataUsageConsent   document.Flag              `json:"data_usage_consent"`
	MarketingConsent   document.Flag              `json:"marketing_consent"`
	ApplicationStatus  application.Status         `json:"application_status"`
	ApplicationDate    string                     `json:"application_date"`
}

func newSubmitPayload(in SubmitInput, date string) submitPayload {
	return submitPayload{
		Applicant:          in.Applicant,
		ApplicantName:      in.ApplicantName,
		Email:              in.Email,
		Phone:              in.Phone,
		LoanAmount:         in.LoanAmount,
		LoanTerm:           in.LoanTerm,
		LoanPurpose:        in.LoanPurpose,
		PurposeDescription: in.PurposeDescription,
		DateOfBirth:        in.DateOfBirth,
		Address:            in.Address,
		Nationality:        in.Nationality,
		EmployerName:       in.EmployerName,
		JobTitle:           in.JobTitle,
		EmploymentType:     in.EmploymentType,
		MonthlyIncome:      in.MonthlyIncome,
		WorkDuration:       in.WorkDuration,
		BankName:           in.BankName,
		AccountType:        in.AccountType,
		AccountNumber:      in.AccountNumber,
		RoutingNumber:      in.RoutingNumber,
		TermsAccepted:      document.FlagOf(in.TermsAccepted),
		CreditCheckConsent: document.FlagOf(in.CreditCheckConsent),
		DataUsageConsent:   document.FlagOf(in.DataUsageConsent),
		MarketingConsent:   document.FlagOf(in.MarketingConsent),
		ApplicationStatus:  application.StatusSubmitted,
		ApplicationDate:    date,
	}
}

type statusPayload struct {
	ApplicationStatus application.Status `json:"application_status"`
	ProcessingNotes   string             `json:"processing_notes,omitempty"`
}

// CustomerApplicationsQuery lists every application of a customer, newest
// first.
func CustomerApplicationsQuery(customerID string) frappe.ListOptions {
	return frappe.ListOptions{
		Fields:  []string{"*"},
		Filters: frappe.Filters{"applicant": customerID},
		OrderBy: "creation desc",
	}
}
