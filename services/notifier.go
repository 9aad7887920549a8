package services

import (
	"log"
	"time"

	"article-portal-api/config"
	"article-portal-api/models"
	"article-portal-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailNotifier delivers review notices as in-app notification rows plus a
// best-effort email. Every failure is logged and swallowed: a mail or database
// outage on this path must never surface to the workflow transition that
// triggered it.
type MailNotifier struct {
	db       *gorm.DB
	sendMail func(to []string, subject, html string) error
}

// NewMailNotifier wires the notifier against the SMTP sender in config.
func NewMailNotifier(db *gorm.DB) *MailNotifier {
	return &MailNotifier{db: db, sendMail: config.SendMail}
}

// Notify records the notice for the student and emails them.
func (n *MailNotifier) Notify(accountID string, notice Notice) {
	row := models.Notification{
		ID:        uuid.NewString(),
		StudentID: accountID,
		Title:     notice.Title,
		Content:   notice.Content,
		Seen:      false,
		CreatedAt: time.Now(),
	}
	if notice.ArticleID != "" {
		articleID := notice.ArticleID
		row.ArticleID = &articleID
	}
	if err := n.db.Create(&row).Error; err != nil {
		log.Printf("Warning: failed to store notification for account %s: %v", accountID, err)
	}

	var account models.Account
	if err := n.db.Select("id", "email").Where("id = ?", accountID).First(&account).Error; err != nil {
		log.Printf("Warning: failed to resolve notification recipient %s: %v", accountID, err)
		return
	}
	if account.Email == "" {
		return
	}

	body := utils.DecisionMailBody(notice.Title, notice.Content)
	if err := n.sendMail([]string{account.Email}, notice.Title, body); err != nil {
		log.Printf("Warning: failed to send notification mail to %s: %v", account.Email, err)
	}
}
