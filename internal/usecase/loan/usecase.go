package loan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-portal/internal/domain/document"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/infrastructure/frappe"
)

type Store interface {
	GetDocument(ctx context.Context, doctype, name string, out any) error
	ListDocuments(ctx context.Context, doctype string, opts frappe.ListOptions, out any) error
	CreateDocument(ctx context.Context, doctype string, data, out any) error
}

type Usecase struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Usecase)

// WithClock overrides the clock used to date payments.
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(s Store, log *zap.Logger, opts ...Option) *Usecase {
	u := &Usecase{store: s, log: log, now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

// ListByCustomer returns the customer's loans, or an empty list when the
// backend call fails.
func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) []loan.Loan {
	out := []loan.Loan{}
	if err := u.store.ListDocuments(ctx, loan.Doctype, CustomerLoansQuery(customerID), &out); err != nil {
		u.log.Error("list loans failed", zap.String("customer", customerID), zap.Error(err))
		return []loan.Loan{}
	}
	return out
}

func (u *Usecase) Get(ctx context.Context, loanID string) *loan.Loan {
	var out loan.Loan
	if err := u.store.GetDocument(ctx, loan.Doctype, loanID, &out); err != nil {
		u.log.Error("get loan failed", zap.String("loan", loanID), zap.Error(err))
		return nil
	}
	return &out
}

func (u *Usecase) Payments(ctx context.Context, loanID string) []loan.Payment {
	out := []loan.Payment{}
	if err := u.store.ListDocuments(ctx, loan.PaymentDoctype, PaymentsQuery(loanID), &out); err != nil {
		u.log.Error("list payments failed", zap.String("loan", loanID), zap.Error(err))
		return []loan.Payment{}
	}
	return out
}

// MakePayment records a pending payment dated today (UTC). No principal or
// interest split is sent; the backend computes it.
func (u *Usecase) MakePayment(ctx context.Context, in PaymentInput) *loan.Payment {
	payload := paymentPayload{
		Loan:             in.Loan,
		Customer:         in.Customer,
		PaymentAmount:    in.PaymentAmount,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: in.PaymentReference,
		PaymentDate:      u.now().UTC().Format(document.DateLayout),
		PaymentStatus:    loan.PaymentPending,
	}
	var out loan.Payment
	if err := u.store.CreateDocument(ctx, loan.PaymentDoctype, payload, &out); err != nil {
		u.log.Error("create payment failed", zap.String("loan", in.Loan), zap.Error(err))
		return nil
	}
	return &out
}
