package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaFile описывает загруженный файл (бриф, макет, скан договора).
type MediaFile struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UploadedBy *uuid.UUID `db:"uploaded_by" json:"uploaded_by,omitempty"`
	FilePath   string     `db:"file_path" json:"file_path"`
	FileType   string     `db:"file_type" json:"file_type"`
	FileSize   int64      `db:"file_size" json:"file_size"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
