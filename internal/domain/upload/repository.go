package upload

import "context"

type Repository interface {
	// Create a ledger row for a freshly uploaded file
	Create(ctx context.Context, r *Record) error

	// Save persists state changes on an existing row
	Save(ctx context.Context, r *Record) error

	// Get by public upload_id
	GetByUploadID(ctx context.Context, uploadID string) (*Record, error)

	// ListByState returns rows in the given state, oldest first
	ListByState(ctx context.Context, state State, limit int) ([]Record, error)
}
