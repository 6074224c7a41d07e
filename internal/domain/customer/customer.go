package customer

import "loan-portal/internal/domain/document"

const Doctype = "Customer"

// Defaults applied to every borrower profile created here.
const (
	DefaultType      = "Individual"
	DefaultGroup     = "Individual"
	DefaultTerritory = "All Territories"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "Pending"
	VerificationVerified VerificationStatus = "Verified"
	VerificationRejected VerificationStatus = "Rejected"
)

// Customer is the borrower profile, linked by convention to one User.
type Customer struct {
	document.Document
	CustomerName           string             `json:"customer_name"`
	CustomerType           string             `json:"customer_type"`
	CustomerGroup          string             `json:"customer_group"`
	Territory              string             `json:"territory"`
	EmailID                string             `json:"email_id,omitempty"`
	MobileNo               string             `json:"mobile_no,omitempty"`
	Phone                  string             `json:"phone,omitempty"`
	Website                string             `json:"website,omitempty"`
	CustomerPrimaryAddress string             `json:"customer_primary_address,omitempty"`
	CustomerPrimaryContact string             `json:"customer_primary_contact,omitempty"`
	DefaultCurrency        string             `json:"default_currency,omitempty"`
	CreditLimit            float64            `json:"credit_limit,omitempty"`
	PaymentTerms           string             `json:"payment_terms,omitempty"`
	DateOfBirth            string             `json:"date_of_birth,omitempty"`
	Nationality            string             `json:"nationality,omitempty"`
	EmploymentType         string             `json:"employment_type,omitempty"`
	EmployerName           string             `json:"employer_name,omitempty"`
	JobTitle               string             `json:"job_title,omitempty"`
	MonthlyIncome          float64            `json:"monthly_income,omitempty"`
	BankName               string             `json:"bank_name,omitempty"`
	AccountNumber          string             `json:"account_number,omitempty"`
	RoutingNumber          string             `json:"routing_number,omitempty"`
	VerificationStatus     VerificationStatus `json:"verification_status,omitempty"`
}
