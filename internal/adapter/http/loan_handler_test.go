package http

import (
	stdhttp "net/http"
	"testing"

	"loan-portal/internal/domain/loan"
)

func TestGetLoan(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	id := te.fake.Seed("Loan", map[string]any{"customer": "CUST-0001", "loan_status": "Active", "loan_amount": 5000, "remaining_balance": 3500})

	rec := te.do(stdhttp.MethodGet, "/api/loans/"+id, nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var got loan.Loan
	decode(t, rec, &got)
	if got.LoanStatus != loan.StatusActive || got.Paid() != 1500 {
		t.Fatalf("unexpected loan: %+v", got)
	}

	rec = te.do(stdhttp.MethodGet, "/api/loans/LOAN-404", nil, nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestListCustomerLoans(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	te.fake.Seed("Loan", map[string]any{"customer": "CUST-0001", "loan_status": "Active", "loan_amount": 1000})
	te.fake.Seed("Loan", map[string]any{"customer": "CUST-0001", "loan_status": "Closed", "loan_amount": 2000})
	te.fake.Seed("Loan", map[string]any{"customer": "CUST-0002", "loan_status": "Active", "loan_amount": 3000})

	rec := te.do(stdhttp.MethodGet, "/api/customers/CUST-0001/loans", nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var got []loan.Loan
	decode(t, rec, &got)
	if len(got) != 2 || got[0].LoanAmount != 2000 {
		t.Fatalf("want newest first, got %+v", got)
	}
}

func TestLoanPayments(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	te.fake.Seed("Loan Payment", map[string]any{"loan": "LOAN-1", "payment_amount": 100, "payment_date": "2025-01-05"})
	te.fake.Seed("Loan Payment", map[string]any{"loan": "LOAN-1", "payment_amount": 100, "payment_date": "2025-02-05"})
	te.fake.Seed("Loan Payment", map[string]any{"loan": "LOAN-2", "payment_amount": 50, "payment_date": "2025-02-05"})

	rec := te.do(stdhttp.MethodGet, "/api/loans/LOAN-1/payments", nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var got []loan.Payment
	decode(t, rec, &got)
	if len(got) != 2 || got[0].PaymentDate != "2025-02-05" {
		t.Fatalf("unexpected payments: %+v", got)
	}
}

func TestLoanPayments_BackendDownIsEmpty(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	te.fake.Fail(stdhttp.MethodGet, "/api/resource/Loan Payment", stdhttp.StatusInternalServerError, "down", -1)

	rec := te.do(stdhttp.MethodGet, "/api/loans/LOAN-1/payments", nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	if rec.Body.String() != "[]\n" {
		t.Fatalf("want empty JSON array, got %q", rec.Body.String())
	}
}

func TestMakePayment(t *testing.T) {
	te := newTestEnv(t, tokenCfg())

	body := map[string]any{"customer": "CUST-0001", "payment_amount": 250.5, "payment_method": "ACH"}
	rec := te.do(stdhttp.MethodPost, "/api/loans/LOAN-1/payments", mustJSON(body), idemHeaders(idemKey, "CUST-0001"))
	wantStatus(t, rec, stdhttp.StatusCreated)

	var got loan.Payment
	decode(t, rec, &got)
	if got.Loan != "LOAN-1" || got.PaymentStatus != loan.PaymentPending || got.PaymentDate != "2025-03-14" {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if _, ok := te.fake.Doc("Loan Payment", got.Name)["payment_reference"]; ok {
		t.Fatalf("empty reference should not be sent")
	}
}

func TestMakePayment_Validation(t *testing.T) {
	te := newTestEnv(t, tokenCfg())

	cases := []struct {
		name string
		key  string
		body map[string]any
	}{
		{"zero amount", "11111111111111111111111111111111", map[string]any{"customer": "CUST-0001", "payment_amount": 0, "payment_method": "ACH"}},
		{"unknown method", "22222222222222222222222222222222", map[string]any{"customer": "CUST-0001", "payment_amount": 10, "payment_method": "Cash"}},
		{"fractional cents", "33333333333333333333333333333333", map[string]any{"customer": "CUST-0001", "payment_amount": 10.005, "payment_method": "ACH"}},
		{"no customer", "44444444444444444444444444444444", map[string]any{"payment_amount": 10, "payment_method": "ACH"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := te.do(stdhttp.MethodPost, "/api/loans/LOAN-1/payments", mustJSON(tc.body), idemHeaders(tc.key, "CUST-0001"))
			wantStatus(t, rec, stdhttp.StatusUnprocessableEntity)
		})
	}
	if n := te.fake.Count(stdhttp.MethodPost, "/api/resource/"); n != 0 {
		t.Fatalf("no create expected, got %d", n)
	}
}
