package models

import "time"

const (
	NamespaceAdmin   = "ADMIN"
	NamespaceStudent = "STUDENT"
	NamespaceGuest   = "GUEST"

	AccountStatusActive             = "ACTIVE"
	AccountStatusPending            = "PENDING"
	AccountStatusRejected           = "REJECTED"
	AccountStatusPermanentlyDeleted = "PERMANENTLY_DELETED"

	// Permission levels carried on account_roles.permissions.
	PermissionAll         = "*"
	PermissionManager     = "manager"
	PermissionCoordinator = "coordinator"
)

// Account represents the accounts table. Passwords never leave the API.
type Account struct {
	ID              string     `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Username        string     `gorm:"column:username" json:"username"`
	Email           string     `gorm:"column:email" json:"email"`
	Password        string     `gorm:"column:password" json:"-"`
	AccountRoleType string     `gorm:"column:account_role_type" json:"account_role_type"`
	AccountStatus   string     `gorm:"column:account_status" json:"account_status"`
	AccountRoleID   *string    `gorm:"column:account_role_id;type:char(36)" json:"account_role_id,omitempty"`
	AccountInfoID   *string    `gorm:"column:account_info_id;type:char(36)" json:"account_info_id,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	AccountRole *AccountRole `gorm:"foreignKey:AccountRoleID" json:"account_role,omitempty"`
	AccountInfo *AccountInfo `gorm:"foreignKey:AccountInfoID" json:"account_info,omitempty"`
}

// AccountInfo holds profile data shared by students and admins.
type AccountInfo struct {
	ID        string  `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Name      string  `gorm:"column:name" json:"name"`
	FacultyID *string `gorm:"column:faculty_id;type:char(36)" json:"faculty_id,omitempty"`
	AvatarID  *string `gorm:"column:avatar_id;type:char(36)" json:"avatar_id,omitempty"`

	Faculty *Faculty    `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Avatar  *Attachment `gorm:"foreignKey:AvatarID" json:"avatar,omitempty"`
}

// AccountRole carries the permission level used for reviewer scoping.
type AccountRole struct {
	ID          string `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Permissions string `gorm:"column:permissions" json:"permissions"`
}

// FacultyAdmin links an admin account to the faculty it coordinates.
type FacultyAdmin struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	AccountID string    `gorm:"column:account_id;type:char(36)" json:"account_id"`
	FacultyID string    `gorm:"column:faculty_id;type:char(36)" json:"faculty_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

// TableName overrides
func (Account) TableName() string {
	return "accounts"
}

func (AccountInfo) TableName() string {
	return "account_infos"
}

func (AccountRole) TableName() string {
	return "account_roles"
}

func (FacultyAdmin) TableName() string {
	return "faculty_admins"
}

// IsAdmin reports whether the account belongs to the admin namespace.
func (a Account) IsAdmin() bool {
	return a.AccountRoleType == NamespaceAdmin
}
