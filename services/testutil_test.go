package services

import (
	"fmt"
	"testing"
	"time"

	"article-portal-api/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each new pooled connection to ":memory:" gets its own empty database;
	// a uniquely named shared-cache memory DB keeps every connection on the
	// same database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	err = db.AutoMigrate(
		&models.AccountRole{},
		&models.Attachment{},
		&models.Faculty{},
		&models.AccountInfo{},
		&models.Account{},
		&models.FacultyAdmin{},
		&models.Event{},
		&models.Article{},
		&models.ArticleLog{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

type fakeNotifier struct {
	recipients []string
	notices    []Notice
}

func (f *fakeNotifier) Notify(accountID string, notice Notice) {
	f.recipients = append(f.recipients, accountID)
	f.notices = append(f.notices, notice)
}

func newEngine(db *gorm.DB, notifier NotificationDispatcher) *ArticleWorkflowService {
	return NewArticleWorkflowService(
		db,
		NewEventDeadlineOracle(db),
		NewAccountDirectory(db),
		notifier,
	)
}

func newQueries(db *gorm.DB) *ArticleQueryService {
	return NewArticleQueryService(db, NewScopeResolver(db, NewAccountDirectory(db)))
}

func seedFaculty(t *testing.T, db *gorm.DB, name string) *models.Faculty {
	t.Helper()
	faculty := &models.Faculty{
		ID:          uuid.NewString(),
		Name:        name,
		FacultyCode: name + "0001",
		Status:      models.FacultyStatusActive,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(faculty).Error; err != nil {
		t.Fatalf("failed to seed faculty: %v", err)
	}
	return faculty
}

func seedStudent(t *testing.T, db *gorm.DB, name string, facultyID string) *models.Account {
	t.Helper()

	info := &models.AccountInfo{ID: uuid.NewString(), Name: name}
	if facultyID != "" {
		info.FacultyID = &facultyID
	}
	if err := db.Create(info).Error; err != nil {
		t.Fatalf("failed to seed account info: %v", err)
	}

	account := &models.Account{
		ID:              uuid.NewString(),
		Username:        name,
		Email:           name + "@portal.edu",
		AccountRoleType: models.NamespaceStudent,
		AccountStatus:   models.AccountStatusActive,
		AccountInfoID:   &info.ID,
		CreatedAt:       time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return account
}

// seedAdmin creates an admin account with the given permission level. When
// facultyID is non-empty a faculty_admins link row is created as well.
func seedAdmin(t *testing.T, db *gorm.DB, name, permissions, facultyID string) *models.Account {
	t.Helper()

	role := &models.AccountRole{
		ID:          uuid.NewString(),
		Name:        name + " role",
		Permissions: permissions,
	}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}

	account := &models.Account{
		ID:              uuid.NewString(),
		Username:        name,
		Email:           name + "@portal.edu",
		AccountRoleType: models.NamespaceAdmin,
		AccountStatus:   models.AccountStatusActive,
		AccountRoleID:   &role.ID,
		CreatedAt:       time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	if facultyID != "" {
		link := &models.FacultyAdmin{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			FacultyID: facultyID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to seed faculty admin link: %v", err)
		}
	}
	return account
}

func seedEvent(t *testing.T, db *gorm.DB, title string, deadline time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:          uuid.NewString(),
		Title:       title,
		StartDate:   deadline.Add(-24 * time.Hour),
		ClosureDate: deadline,
		Deadline:    deadline,
		EndDate:     deadline.Add(24 * time.Hour),
		Status:      models.EventStatusActive,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event
}

func testDocument() *AttachmentDescriptor {
	return &AttachmentDescriptor{
		Name:      "essay.pdf",
		Path:      "uploads/essay.pdf",
		MediaType: "application/pdf",
	}
}

func countLogs(t *testing.T, db *gorm.DB, articleID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.ArticleLog{}).Where("article_id = ?", articleID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count article logs: %v", err)
	}
	return count
}
