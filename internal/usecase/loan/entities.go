package loan

import (
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/infrastructure/frappe"
)

type PaymentInput struct {
	Loan             string             `json:"loan"`
	Customer         string             `json:"customer"`
	PaymentAmount    float64            `json:"payment_amount"`
	PaymentMethod    loan.PaymentMethod `json:"payment_method"`
	PaymentReference string             `json:"payment_reference"`
}

type paymentPayload struct {
	Loan             string             `json:"loan"`
	Customer         string             `json:"customer"`
	PaymentAmount    float64            `json:"payment_amount"`
	PaymentMethod    loan.PaymentMethod `json:"payment_method"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	PaymentDate      string             `json:"payment_date"`
	PaymentStatus    loan.PaymentStatus `json:"payment_status"`
}

// CustomerLoansQuery lists every loan of a customer, newest first.
func CustomerLoansQuery(customerID string) frappe.ListOptions {
	return frappe.ListOptions{
		Fields:  []string{"*"},
		Filters: frappe.Filters{"customer": customerID},
		OrderBy: "creation desc",
	}
}

// PaymentsQuery lists the payments of a loan, newest first.
func PaymentsQuery(loanID string) frappe.ListOptions {
	return frappe.ListOptions{
		Fields:  []string{"*"},
		Filters: frappe.Filters{"loan": loanID},
		OrderBy: "payment_date desc",
	}
}
