package services

import (
	"errors"
	"fmt"
	"time"

	"article-portal-api/models"

	"gorm.io/gorm"
)

// EventDeadlineOracle resolves the submission deadline of an event. The
// workflow engine consults it exactly once per submission; the returned
// instant is frozen into the article's overdue flag.
type EventDeadlineOracle interface {
	DeadlineOf(eventID string) (time.Time, error)
}

// AccountDirectory resolves account facts the engine must not own or cache:
// the faculty a student belongs to and the permission level of a reviewer.
type AccountDirectory interface {
	FacultyOf(accountID string) (string, error)
	PermissionOf(accountID string) (string, error)
	AdminFacultyOf(accountID string) (string, error)
}

// Notice is the payload handed to the notification dispatcher after a
// reviewer decision.
type Notice struct {
	Title     string
	Content   string
	ArticleID string
}

// NotificationDispatcher delivers best-effort notifications. Implementations
// must swallow and log their own failures; a notification outage never blocks
// a workflow transition, which is why Notify returns nothing.
type NotificationDispatcher interface {
	Notify(accountID string, notice Notice)
}

type gormDeadlineOracle struct {
	db *gorm.DB
}

// NewEventDeadlineOracle returns the database-backed deadline oracle.
func NewEventDeadlineOracle(db *gorm.DB) EventDeadlineOracle {
	return &gormDeadlineOracle{db: db}
}

func (o *gormDeadlineOracle) DeadlineOf(eventID string) (time.Time, error) {
	var event models.Event
	if err := o.db.Select("id", "deadline").Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
		}
		return time.Time{}, fmt.Errorf("%w: load event: %v", ErrDependency, err)
	}
	return event.Deadline, nil
}

type gormAccountDirectory struct {
	db *gorm.DB
}

// NewAccountDirectory returns the database-backed account directory.
func NewAccountDirectory(db *gorm.DB) AccountDirectory {
	return &gormAccountDirectory{db: db}
}

// FacultyOf resolves the faculty a student account belongs to through its
// profile record.
func (d *gormAccountDirectory) FacultyOf(accountID string) (string, error) {
	var account models.Account
	err := d.db.Preload("AccountInfo").Where("id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: account %s", ErrNotFound, accountID)
		}
		return "", fmt.Errorf("%w: load account: %v", ErrDependency, err)
	}
	if account.AccountInfo == nil || account.AccountInfo.FacultyID == nil || *account.AccountInfo.FacultyID == "" {
		return "", fmt.Errorf("%w: account %s has no faculty", ErrNotFound, accountID)
	}
	return *account.AccountInfo.FacultyID, nil
}

// PermissionOf resolves the permission string carried on the account's role.
func (d *gormAccountDirectory) PermissionOf(accountID string) (string, error) {
	var account models.Account
	err := d.db.Preload("AccountRole").Where("id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: account %s", ErrNotFound, accountID)
		}
		return "", fmt.Errorf("%w: load account: %v", ErrDependency, err)
	}
	if account.AccountRole == nil {
		return "", fmt.Errorf("%w: account %s has no role", ErrNotFound, accountID)
	}
	return account.AccountRole.Permissions, nil
}

// AdminFacultyOf resolves the faculty an admin account coordinates via its
// faculty_admins link row.
func (d *gormAccountDirectory) AdminFacultyOf(accountID string) (string, error) {
	var link models.FacultyAdmin
	err := d.db.Where("account_id = ?", accountID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: account %s coordinates no faculty", ErrNotFound, accountID)
		}
		return "", fmt.Errorf("%w: load faculty admin: %v", ErrDependency, err)
	}
	return link.FacultyID, nil
}
