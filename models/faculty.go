package models

import "time"

const (
	FacultyStatusActive             = "ACTIVE"
	FacultyStatusSuspended          = "SUSPENDED"
	FacultyStatusPermanentlyDeleted = "PERMANENTLY_DELETED"
)

// Faculty is the organizational unit that scopes students, coordinators and articles.
type Faculty struct {
	ID          string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	FacultyCode string     `gorm:"column:faculty_code" json:"faculty_code"`
	Status      string     `gorm:"column:status" json:"status"`
	AvatarID    *string    `gorm:"column:avatar_id;type:char(36)" json:"avatar_id,omitempty"`
	CreatedByID *string    `gorm:"column:created_by_id;type:char(36)" json:"created_by_id,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Avatar    *Attachment `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
	CreatedBy *Account    `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName overrides the table name for Faculty
func (Faculty) TableName() string {
	return "faculties"
}
