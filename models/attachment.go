package models

import "time"

// Attachment is an immutable stored-file record (document, thumbnail or
// avatar). A re-upload creates a new row; existing rows are never updated or
// deleted, so the full upload history stays queryable.
type Attachment struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Path      string    `gorm:"column:path" json:"path"`
	Type      string    `gorm:"column:type" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}

// IsImage reports whether the attachment holds an image media type.
func (a Attachment) IsImage() bool {
	validTypes := []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}
	for _, validType := range validTypes {
		if a.Type == validType {
			return true
		}
	}
	return false
}
