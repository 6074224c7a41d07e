package upload

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("upload record not found")

type State string

const (
	// StateUploaded: file stored, attach patch not attempted yet.
	StateUploaded State = "uploaded"
	// StateAttached: the application field points at the file.
	StateAttached State = "attached"
	// StateUnattached: file stored but the patch failed; the file is orphaned.
	StateUnattached State = "unattached"
)

// Table: document_uploads
type Record struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	UploadID      string         `gorm:"column:upload_id;type:char(32);not null;uniqueIndex:ux_document_uploads_upload_id" json:"upload_id"`
	ApplicationID string         `gorm:"column:application_id;size:140;not null;index:idx_document_uploads_application" json:"application_id"`
	DocumentKind  string         `gorm:"column:document_kind;size:32;not null" json:"document_kind"`
	FileName      string         `gorm:"column:file_name;size:255" json:"file_name"`
	FileURL       string         `gorm:"column:file_url;type:text" json:"file_url"`
	State         State          `gorm:"column:state;size:16;not null;default:'uploaded';index:idx_document_uploads_state" json:"state"`
	LastError     string         `gorm:"column:last_error;type:text" json:"last_error,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Record) TableName() string { return "document_uploads" }
