package models

import "time"

// Notification is an in-app message delivered to a student, typically after a
// reviewer decision on one of their articles.
type Notification struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	StudentID string    `gorm:"column:student_id;type:char(36)" json:"student_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Content   string    `gorm:"column:content" json:"content"`
	ArticleID *string   `gorm:"column:article_id;type:char(36)" json:"article_id,omitempty"`
	Seen      bool      `gorm:"column:seen" json:"seen"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
