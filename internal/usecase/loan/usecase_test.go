package loan

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "loan-portal/internal/domain/loan"
	"loan-portal/internal/infrastructure/frappe"
	"loan-portal/internal/testutil/frappefake"
)

func newUsecase(t *testing.T) (*Usecase, *frappefake.Server) {
	t.Helper()
	s := frappefake.New()
	t.Cleanup(s.Close)
	c := frappe.New(frappe.Config{BaseURL: s.URL, AccessToken: "tok"})
	clock := func() time.Time { return time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC) }
	return NewUsecase(c, zap.NewNop(), WithClock(clock)), s
}

func TestListByCustomer(t *testing.T) {
	uc, s := newUsecase(t)
	s.Seed(domain.Doctype, map[string]any{"customer": "C1", "loan_amount": 1000.0, "loan_status": "Active"})
	s.Seed(domain.Doctype, map[string]any{"customer": "C2", "loan_amount": 9999.0, "loan_status": "Active"})
	s.Seed(domain.Doctype, map[string]any{"customer": "C1", "loan_amount": 2000.0, "loan_status": "Completed"})

	loans := uc.ListByCustomer(context.Background(), "C1")
	if len(loans) != 2 {
		t.Fatalf("want 2 loans, got %d", len(loans))
	}
	if loans[0].LoanAmount != 2000 || loans[0].LoanStatus != domain.StatusCompleted {
		t.Fatalf("want newest first: %+v", loans[0])
	}
}

func TestListByCustomer_FailureIsEmpty(t *testing.T) {
	uc, s := newUsecase(t)
	s.Fail(http.MethodGet, "/api/resource/Loan", http.StatusInternalServerError, "boom", 1)
	if loans := uc.ListByCustomer(context.Background(), "C1"); loans == nil || len(loans) != 0 {
		t.Fatalf("want empty slice, got %#v", loans)
	}
}

func TestGet(t *testing.T) {
	uc, s := newUsecase(t)
	name := s.Seed(domain.Doctype, map[string]any{"customer": "C1", "loan_amount": 1000.0, "remaining_balance": 400.0})

	l := uc.Get(context.Background(), name)
	if l == nil || l.Paid() != 600 {
		t.Fatalf("Get: got %+v", l)
	}
	if uc.Get(context.Background(), "LOAN-404") != nil {
		t.Fatalf("Get missing: want nil")
	}
}

func TestPayments_OrderedByDateDesc(t *testing.T) {
	uc, s := newUsecase(t)
	s.Seed(domain.PaymentDoctype, map[string]any{"loan": "L1", "payment_date": "2025-01-05", "payment_amount": 10.0})
	s.Seed(domain.PaymentDoctype, map[string]any{"loan": "L1", "payment_date": "2025-03-05", "payment_amount": 30.0})
	s.Seed(domain.PaymentDoctype, map[string]any{"loan": "L2", "payment_date": "2025-04-05", "payment_amount": 99.0})
	s.Seed(domain.PaymentDoctype, map[string]any{"loan": "L1", "payment_date": "2025-02-05", "payment_amount": 20.0})

	ps := uc.Payments(context.Background(), "L1")
	if len(ps) != 3 {
		t.Fatalf("want 3 payments, got %d", len(ps))
	}
	for i, want := range []float64{30, 20, 10} {
		if ps[i].PaymentAmount != want {
			t.Fatalf("payment %d: want %v, got %v", i, want, ps[i].PaymentAmount)
		}
	}
	if q := s.LastRequest().Query; q["order_by"][0] != "payment_date desc" {
		t.Fatalf("order_by: %v", q["order_by"])
	}
}

func TestMakePayment_PendingAndDated(t *testing.T) {
	uc, s := newUsecase(t)
	p := uc.MakePayment(context.Background(), PaymentInput{
		Loan:          "L1",
		Customer:      "C1",
		PaymentAmount: 250,
		PaymentMethod: domain.MethodACH,
	})
	if p == nil {
		t.Fatalf("MakePayment: want payment")
	}
	if p.PaymentStatus != domain.PaymentPending || p.PaymentDate != "2025-06-30" {
		t.Fatalf("payment: %+v", p)
	}

	var sent map[string]any
	_ = json.Unmarshal(s.LastRequest().Body, &sent)
	if _, ok := sent["payment_reference"]; ok {
		t.Fatalf("empty reference should be omitted: %v", sent)
	}
	if sent["payment_method"] != "ACH" || sent["payment_status"] != "Pending" {
		t.Fatalf("body: %v", sent)
	}
	for _, k := range []string{"principal_amount", "interest_amount"} {
		if _, ok := sent[k]; ok {
			t.Fatalf("%s must not be sent: %v", k, sent)
		}
	}
}

func TestMakePayment_DatedInUTC(t *testing.T) {
	s := frappefake.New()
	t.Cleanup(s.Close)
	c := frappe.New(frappe.Config{BaseURL: s.URL, AccessToken: "tok"})
	// 21:30 on the 30th in UTC-5 is already the 1st in UTC.
	late := func() time.Time { return time.Date(2025, 6, 30, 21, 30, 0, 0, time.FixedZone("EST", -5*3600)) }
	uc := NewUsecase(c, zap.NewNop(), WithClock(late))

	p := uc.MakePayment(context.Background(), PaymentInput{Loan: "L1", Customer: "C1", PaymentAmount: 10, PaymentMethod: domain.MethodACH})
	if p == nil || p.PaymentDate != "2025-07-01" {
		t.Fatalf("payment_date: got %+v", p)
	}
}

func TestMakePayment_BackendFailure(t *testing.T) {
	uc, s := newUsecase(t)
	s.Fail(http.MethodPost, "/api/resource/Loan Payment", http.StatusForbidden, "PermissionError", 1)
	if uc.MakePayment(context.Background(), PaymentInput{Loan: "L1"}) != nil {
		t.Fatalf("MakePayment: want nil")
	}
}
