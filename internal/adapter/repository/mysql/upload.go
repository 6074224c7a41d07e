package mysql

import (
	"context"
	"errors"

	uploadDomain "loan-portal/internal/domain/upload"

	"gorm.io/gorm"
)

type UploadRepository struct{ db *gorm.DB }

func NewUploadRepository(db *gorm.DB) *UploadRepository { return &UploadRepository{db: db} }

// Migrate creates or updates the document_uploads table.
func (r *UploadRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&uploadDomain.Record{})
}

func (r *UploadRepository) Create(ctx context.Context, rec *uploadDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *UploadRepository) Save(ctx context.Context, rec *uploadDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *UploadRepository) GetByUploadID(ctx context.Context, uploadID string) (*uploadDomain.Record, error) {
	var out uploadDomain.Record
	err := r.db.WithContext(ctx).Where("upload_id = ?", uploadID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uploadDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UploadRepository) ListByState(ctx context.Context, state uploadDomain.State, limit int) ([]uploadDomain.Record, error) {
	out := []uploadDomain.Record{}
	q := r.db.WithContext(ctx).
		Where("state = ?", state).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
