package models

import "time"

// ArticleLog is an immutable audit row recording a reviewer decision. Exactly
// one row is written per reviewer-initiated transition (approve, reject,
// return for revision); author actions never log. Rows are never updated or
// deleted, and review history is read back ordered by created_at.
type ArticleLog struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	ArticleID string    `gorm:"column:article_id;type:char(36)" json:"article_id"`
	Status    string    `gorm:"column:status" json:"status"`
	Message   *string   `gorm:"column:message" json:"message,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for ArticleLog
func (ArticleLog) TableName() string {
	return "article_logs"
}
