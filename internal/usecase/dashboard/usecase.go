package dashboard

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"loan-portal/internal/domain/application"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/infrastructure/frappe"
	applicationuc "loan-portal/internal/usecase/application"
	loanuc "loan-portal/internal/usecase/loan"
)

type Store interface {
	GetDocument(ctx context.Context, doctype, name string, out any) error
	ListDocuments(ctx context.Context, doctype string, opts frappe.ListOptions, out any) error
}

type Dashboard struct {
	Customer            *customer.Customer            `json:"customer"`
	ActiveLoans         []loan.Loan                   `json:"active_loans"`
	CompletedLoans      []loan.Loan                   `json:"completed_loans"`
	PendingApplications []application.LoanApplication `json:"pending_applications"`
	TotalBorrowed       float64                       `json:"total_borrowed"`
	TotalPaid           float64                       `json:"total_paid"`
}

type Usecase struct {
	store Store
	log   *zap.Logger
}

func NewUsecase(s Store, log *zap.Logger) *Usecase { return &Usecase{store: s, log: log} }

// Get loads the customer, their loans and their applications in parallel.
// Any failed fetch fails the whole dashboard.
func (u *Usecase) Get(ctx context.Context, customerID string) *Dashboard {
	var (
		c    customer.Customer
		ls   []loan.Loan
		apps []application.LoanApplication
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return u.store.GetDocument(gctx, customer.Doctype, customerID, &c)
	})
	g.Go(func() error {
		return u.store.ListDocuments(gctx, loan.Doctype, loanuc.CustomerLoansQuery(customerID), &ls)
	})
	g.Go(func() error {
		return u.store.ListDocuments(gctx, application.Doctype, applicationuc.CustomerApplicationsQuery(customerID), &apps)
	})
	if err := g.Wait(); err != nil {
		if frappe.IsNotFound(err) {
			u.log.Info("dashboard customer not found", zap.String("customer", customerID))
		} else {
			u.log.Error("load dashboard failed", zap.String("customer", customerID), zap.Error(err))
		}
		return nil
	}
	return build(&c, ls, apps)
}

func build(c *customer.Customer, ls []loan.Loan, apps []application.LoanApplication) *Dashboard {
	d := &Dashboard{
		Customer:            c,
		ActiveLoans:         []loan.Loan{},
		CompletedLoans:      []loan.Loan{},
		PendingApplications: []application.LoanApplication{},
	}
	for i := range ls {
		switch ls[i].LoanStatus {
		case loan.StatusActive:
			d.ActiveLoans = append(d.ActiveLoans, ls[i])
		case loan.StatusCompleted:
			d.CompletedLoans = append(d.CompletedLoans, ls[i])
		}
		d.TotalBorrowed += ls[i].LoanAmount
		d.TotalPaid += ls[i].Paid()
	}
	for _, a := range apps {
		if a.ApplicationStatus.Pending() {
			d.PendingApplications = append(d.PendingApplications, a)
		}
	}
	return d
}
