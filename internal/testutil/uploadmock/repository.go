package uploadmock

import (
	"context"

	domain "loan-portal/internal/domain/upload"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Record) error
	SaveFn          func(ctx context.Context, r *domain.Record) error
	GetByUploadIDFn func(ctx context.Context, uploadID string) (*domain.Record, error)
	ListByStateFn   func(ctx context.Context, state domain.State, limit int) ([]domain.Record, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByUploadID(ctx context.Context, uploadID string) (*domain.Record, error) {
	if m.GetByUploadIDFn != nil {
		return m.GetByUploadIDFn(ctx, uploadID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByState(ctx context.Context, state domain.State, limit int) ([]domain.Record, error) {
	if m.ListByStateFn != nil {
		return m.ListByStateFn(ctx, state, limit)
	}
	return []domain.Record{}, nil
}
