package models

import "time"

const (
	EventStatusActive    = "ACTIVE"
	EventStatusPending   = "PENDING"
	EventStatusCompleted = "COMPLETED"
	EventStatusSuspended = "SUSPENDED"
)

// Event is a time-boxed call for article submissions. The deadline is the
// instant used to compute the overdue flag at submission time.
type Event struct {
	ID          string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	StartDate   time.Time  `gorm:"column:start_date" json:"start_date"`
	ClosureDate time.Time  `gorm:"column:closure_date" json:"closure_date"`
	Deadline    time.Time  `gorm:"column:deadline" json:"deadline"`
	EndDate     time.Time  `gorm:"column:end_date" json:"end_date"`
	Status      string     `gorm:"column:status" json:"status"`
	AvatarID    *string    `gorm:"column:avatar_id;type:char(36)" json:"avatar_id,omitempty"`
	HostedByID  *string    `gorm:"column:hosted_by_id;type:char(36)" json:"hosted_by_id,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Avatar   *Attachment `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
	HostedBy *Account    `gorm:"foreignKey:HostedByID" json:"hosted_by,omitempty"`
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}
