package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is attachment metadata only; the bytes live in object storage
// under StorageKey.
type Document struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	LeaveID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_documents_leave"`
	UploaderID  uuid.UUID      `gorm:"type:uuid;not null"`
	FileName    string         `gorm:"type:varchar(255);not null"`
	ContentType string         `gorm:"type:varchar(100);not null"`
	SizeBytes   int64          `gorm:"not null"`
	StorageKey  string         `gorm:"type:varchar(512);not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
