package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded (or remotely referenced) candidate file.
// Immutable once received.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	MimeType         string    `gorm:"type:text" json:"mime_type"`
	Extension        string    `gorm:"type:text" json:"extension"`
	SizeBytes        int64     `gorm:"type:bigint" json:"size_bytes"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	SourceURL        string    `gorm:"type:text" json:"source_url,omitempty"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}

// Location returns where the document bytes live: the stored file path for
// uploads, or the source URL for remotely referenced documents.
func (d *Document) Location() string {
	if d.FilePath != "" {
		return d.FilePath
	}
	return d.SourceURL
}
