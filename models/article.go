package models

import "time"

// Article lifecycle statuses.
const (
	ArticleStatusDraft              = "DRAFT"
	ArticleStatusPending            = "PENDING"
	ArticleStatusApproved           = "APPROVED"
	ArticleStatusNeedAction         = "NEED_ACTION"
	ArticleStatusRejected           = "REJECTED"
	ArticleStatusCancelled          = "CANCELLED"
	ArticleStatusPermanentlyDeleted = "PERMANENTLY_DELETED"

	// ArticleStatusAll is the list-filter wildcard, not a persisted status.
	ArticleStatusAll = "ALL"
)

var articleStatuses = map[string]struct{}{
	ArticleStatusDraft:              {},
	ArticleStatusPending:            {},
	ArticleStatusApproved:           {},
	ArticleStatusNeedAction:         {},
	ArticleStatusRejected:           {},
	ArticleStatusCancelled:          {},
	ArticleStatusPermanentlyDeleted: {},
}

// IsArticleStatus reports whether s is one of the enumerated statuses.
func IsArticleStatus(s string) bool {
	_, ok := articleStatuses[s]
	return ok
}

// IsTerminalArticleStatus reports whether no transition is allowed out of s.
// CANCELLED is also terminal in practice, but the workflow guard is the coarse
// "not DRAFT, not APPROVED" check, so it is not listed here.
func IsTerminalArticleStatus(s string) bool {
	return s == ArticleStatusApproved || s == ArticleStatusPermanentlyDeleted
}

// Article represents a student's submission tracked through the review
// lifecycle. FacultyID is denormalized from the author at creation time and
// never changes afterwards. IsOverdue is a snapshot taken at submission or
// resubmission; it is not recomputed when the event deadline changes.
type Article struct {
	ID          string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Title       string     `gorm:"column:title" json:"title"`
	Content     *string    `gorm:"column:content" json:"content,omitempty"`
	Status      string     `gorm:"column:status" json:"status"`
	IsOverdue   bool       `gorm:"column:is_overdue" json:"is_overdue"`
	AuthorID    string     `gorm:"column:author_id;type:char(36)" json:"author_id"`
	FacultyID   string     `gorm:"column:faculty_id;type:char(36)" json:"faculty_id"`
	EventID     *string    `gorm:"column:event_id;type:char(36)" json:"event_id,omitempty"`
	ReviewerID  *string    `gorm:"column:reviewer_id;type:char(36)" json:"reviewer_id,omitempty"`
	DocumentID  *string    `gorm:"column:document_id;type:char(36)" json:"document_id,omitempty"`
	ThumbnailID *string    `gorm:"column:thumbnail_id;type:char(36)" json:"thumbnail_id,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Author    *Account     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Faculty   *Faculty     `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Event     *Event       `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Reviewer  *Account     `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Document  *Attachment  `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	Thumbnail *Attachment  `gorm:"foreignKey:ThumbnailID" json:"thumbnail,omitempty"`
	Logs      []ArticleLog `gorm:"foreignKey:ArticleID" json:"logs,omitempty"`
}

// TableName overrides the table name for Article
func (Article) TableName() string {
	return "articles"
}
