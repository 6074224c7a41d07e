package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-portal/internal/domain/application"
	"loan-portal/internal/domain/document"
	"loan-portal/internal/domain/upload"
	"loan-portal/internal/infrastructure/frappe"
	"loan-portal/pkg/id"
)

type Store interface {
	GetDocument(ctx context.Context, doctype, name string, out any) error
	ListDocuments(ctx context.Context, doctype string, opts frappe.ListOptions, out any) error
	CreateDocument(ctx context.Context, doctype string, data, out any) error
	UpdateDocument(ctx context.Context, doctype, name string, data, out any) error
	UploadFile(ctx context.Context, f frappe.File, opts frappe.UploadOptions, out any) error
}

type Usecase struct {
	store  Store
	ledger upload.Repository
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Usecase)

// WithClock overrides the clock used to date submissions.
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// WithLedger records every document upload and whether it got attached.
func WithLedger(r upload.Repository) Option { return func(u *Usecase) { u.ledger = r } }

func NewUsecase(s Store, log *zap.Logger, opts ...Option) *Usecase {
	u := &Usecase{store: s, log: log, now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Submit creates the application already in Submitted status, dated today.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) *application.LoanApplication {
	payload := newSubmitPayload(in, u.now().UTC().Format(document.DateLayout))
	var out application.LoanApplication
	if err := u.store.CreateDocument(ctx, application.Doctype, payload, &out); err != nil {
		u.log.Error("submit application failed", zap.String("applicant", in.Applicant), zap.Error(err))
		return nil
	}
	return &out
}

func (u *Usecase) Get(ctx context.Context, applicationID string) *application.LoanApplication {
	var out application.LoanApplication
	if err := u.store.GetDocument(ctx, application.Doctype, applicationID, &out); err != nil {
		u.log.Error("get application failed", zap.String("application", applicationID), zap.Error(err))
		return nil
	}
	return &out
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) []application.LoanApplication {
	out := []application.LoanApplication{}
	if err := u.store.ListDocuments(ctx, application.Doctype, CustomerApplicationsQuery(customerID), &out); err != nil {
		u.log.Error("list applications failed", zap.String("customer", customerID), zap.Error(err))
		return []application.LoanApplication{}
	}
	return out
}

// UpdateStatus writes the new status as-is; the backend owns the workflow.
func (u *Usecase) UpdateStatus(ctx context.Context, applicationID string, status application.Status, notes string) *application.LoanApplication {
	var out application.LoanApplication
	payload := statusPayload{ApplicationStatus: status, ProcessingNotes: notes}
	if err := u.store.UpdateDocument(ctx, application.Doctype, applicationID, payload, &out); err != nil {
		u.log.Error("update application status failed",
			zap.String("application", applicationID), zap.String("status", string(status)), zap.Error(err))
		return nil
	}
	return &out
}

// UploadDocument stores f privately against the application and points the
// field named by kind at it. The file URL is returned once the upload
// succeeds, even if the attach step fails afterwards. It returns "" when
// nothing was stored.
func (u *Usecase) UploadDocument(ctx context.Context, applicationID string, f frappe.File, kind application.DocumentKind) string {
	if _, err := application.ParseDocumentKind(string(kind)); err != nil {
		u.log.Warn("upload rejected", zap.String("application", applicationID), zap.String("kind", string(kind)), zap.Error(err))
		return ""
	}

	var stored document.File
	err := u.store.UploadFile(ctx, f, frappe.UploadOptions{
		Doctype:   application.Doctype,
		Docname:   applicationID,
		Fieldname: string(kind),
		IsPrivate: frappe.Bool(true),
	}, &stored)
	if err != nil {
		u.log.Error("upload document failed", zap.String("application", applicationID), zap.String("kind", string(kind)), zap.Error(err))
		return ""
	}

	rec := u.record(ctx, applicationID, kind, &stored)

	patch := map[string]string{string(kind): stored.FileURL}
	if err := u.store.UpdateDocument(ctx, application.Doctype, applicationID, patch, nil); err != nil {
		u.log.Error("attach document failed",
			zap.String("application", applicationID), zap.String("file_url", stored.FileURL), zap.Error(err))
		u.mark(ctx, rec, upload.StateUnattached, err.Error())
		return stored.FileURL
	}
	u.mark(ctx, rec, upload.StateAttached, "")
	return stored.FileURL
}

func (u *Usecase) record(ctx context.Context, applicationID string, kind application.DocumentKind, f *document.File) *upload.Record {
	if u.ledger == nil {
		return nil
	}
	rec := &upload.Record{
		UploadID:      id.NewID32(),
		ApplicationID: applicationID,
		DocumentKind:  string(kind),
		FileName:      f.FileName,
		FileURL:       f.FileURL,
		State:         upload.StateUploaded,
	}
	if err := u.ledger.Create(ctx, rec); err != nil {
		u.log.Warn("upload ledger create failed", zap.String("application", applicationID), zap.Error(err))
		return nil
	}
	return rec
}

func (u *Usecase) mark(ctx context.Context, rec *upload.Record, state upload.State, lastErr string) {
	if rec == nil {
		return
	}
	rec.State = state
	rec.LastError = lastErr
	if err := u.ledger.Save(ctx, rec); err != nil {
		u.log.Warn("upload ledger save failed", zap.String("upload_id", rec.UploadID), zap.Error(err))
	}
}

// Unattached returns uploads whose attach step failed, oldest first.
func (u *Usecase) Unattached(ctx context.Context, limit int) ([]upload.Record, error) {
	if u.ledger == nil {
		return []upload.Record{}, nil
	}
	return u.ledger.ListByState(ctx, upload.StateUnattached, limit)
}
