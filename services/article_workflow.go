package services

import (
	"errors"
	"fmt"
	"time"

	"article-portal-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentDescriptor is what the attachment store hands back after writing
// the file body. The engine persists the descriptor and nothing else.
type AttachmentDescriptor struct {
	Name      string
	Path      string
	MediaType string
}

// ArticleWorkflowService owns every article status transition: it validates
// preconditions, computes the overdue snapshot, and appends the audit log on
// reviewer decisions.
type ArticleWorkflowService struct {
	db        *gorm.DB
	deadlines EventDeadlineOracle
	directory AccountDirectory
	notifier  NotificationDispatcher

	// GuardStatus enables a compare-and-swap on the article status during
	// reviewer decisions. Off by default: the stock behavior lets two
	// concurrent decisions both land, last write winning, with one audit row
	// per decision. With the guard on, the losing decision fails with
	// ErrConflict instead.
	GuardStatus bool
}

// NewArticleWorkflowService wires the workflow engine with its collaborators.
func NewArticleWorkflowService(db *gorm.DB, deadlines EventDeadlineOracle, directory AccountDirectory, notifier NotificationDispatcher) *ArticleWorkflowService {
	return &ArticleWorkflowService{
		db:        db,
		deadlines: deadlines,
		directory: directory,
		notifier:  notifier,
	}
}

// DraftInput carries an author-saved draft that has not been submitted.
type DraftInput struct {
	AuthorID string
	Title    string
	Content  *string
}

// SaveDraft creates a new article in DRAFT. The author must have a resolvable
// faculty affiliation; the faculty id is denormalized onto the article and
// never changes afterwards.
func (s *ArticleWorkflowService) SaveDraft(in DraftInput) (*models.Article, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	facultyID, err := s.directory.FacultyOf(in.AuthorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: student faculty not found", ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	article := models.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Status:    models.ArticleStatusDraft,
		AuthorID:  in.AuthorID,
		FacultyID: facultyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("%w: create draft: %v", ErrDependency, err)
	}
	return &article, nil
}

// SubmitInput carries an upload. ArticleID is empty for a fresh submission
// and set when resubmitting a draft or a revision request.
type SubmitInput struct {
	AuthorID  string
	ArticleID string
	Title     string
	Content   *string
	EventID   string
	Document  *AttachmentDescriptor
	Thumbnail *AttachmentDescriptor
}

// Submit moves an article to PENDING. The overdue flag is computed here, once,
// against the event deadline (strictly after; submitting exactly at the
// deadline is on time) and is never recomputed on later reads. Each upload
// creates new attachment rows; prior rows are kept untouched.
func (s *ArticleWorkflowService) Submit(in SubmitInput) (*models.Article, error) {
	if in.Document == nil {
		return nil, fmt.Errorf("%w: a document attachment is required", ErrValidation)
	}
	if in.EventID == "" {
		return nil, fmt.Errorf("%w: an event is required", ErrValidation)
	}
	if in.ArticleID == "" && in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	deadline, err := s.deadlines.DeadlineOf(in.EventID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: event not found", ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	overdue := now.After(deadline)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrDependency, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var article models.Article
	if in.ArticleID == "" {
		facultyID, err := s.directory.FacultyOf(in.AuthorID)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: student faculty not found", ErrValidation)
			}
			return nil, err
		}
		article = models.Article{
			ID:        uuid.NewString(),
			Title:     in.Title,
			Content:   in.Content,
			AuthorID:  in.AuthorID,
			FacultyID: facultyID,
			CreatedAt: now,
		}
	} else {
		if err := tx.Where("id = ?", in.ArticleID).First(&article).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: article %s", ErrNotFound, in.ArticleID)
			}
			return nil, fmt.Errorf("%w: load article: %v", ErrDependency, err)
		}
		if article.AuthorID != in.AuthorID {
			tx.Rollback()
			return nil, fmt.Errorf("%w: article does not belong to this account", ErrPermissionDenied)
		}
		if article.Status != models.ArticleStatusDraft && article.Status != models.ArticleStatusNeedAction {
			tx.Rollback()
			return nil, fmt.Errorf("%w: article with status %s cannot be submitted; only drafts and revision requests can", ErrInvalidTransition, article.Status)
		}
		if in.Title != "" {
			article.Title = in.Title
		}
		if in.Content != nil {
			article.Content = in.Content
		}
	}

	document := models.Attachment{
		ID:        uuid.NewString(),
		Name:      in.Document.Name,
		Path:      in.Document.Path,
		Type:      in.Document.MediaType,
		CreatedAt: now,
	}
	if err := tx.Create(&document).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: store document record: %v", ErrDependency, err)
	}
	article.DocumentID = &document.ID
	article.Document = &document

	if in.Thumbnail != nil {
		thumbnail := models.Attachment{
			ID:        uuid.NewString(),
			Name:      in.Thumbnail.Name,
			Path:      in.Thumbnail.Path,
			Type:      in.Thumbnail.MediaType,
			CreatedAt: now,
		}
		if err := tx.Create(&thumbnail).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: store thumbnail record: %v", ErrDependency, err)
		}
		article.ThumbnailID = &thumbnail.ID
		article.Thumbnail = &thumbnail
	}

	article.Status = models.ArticleStatusPending
	article.EventID = &in.EventID
	article.IsOverdue = overdue
	article.UpdatedAt = now

	if err := tx.Save(&article).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: save article: %v", ErrDependency, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: commit submission: %v", ErrDependency, err)
	}
	return &article, nil
}

// DeleteDraft permanently deletes a draft. Anything that has ever been
// uploaded is not deletable.
func (s *ArticleWorkflowService) DeleteDraft(authorID, articleID string) error {
	article, err := s.loadOwned(authorID, articleID)
	if err != nil {
		return err
	}
	if article.Status != models.ArticleStatusDraft {
		return fmt.Errorf("%w: uploaded article cannot be deleted", ErrInvalidTransition)
	}

	updates := map[string]interface{}{
		"status":     models.ArticleStatusPermanentlyDeleted,
		"updated_at": time.Now(),
	}
	if err := s.db.Model(&models.Article{}).Where("id = ?", article.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("%w: delete draft: %v", ErrDependency, err)
	}
	return nil
}

// Cancel withdraws a submitted article. Drafts have nothing to withdraw and
// approvals are final, so both are rejected; no audit row is written because
// cancelling is an author action.
func (s *ArticleWorkflowService) Cancel(authorID, articleID string) (*models.Article, error) {
	article, err := s.loadOwned(authorID, articleID)
	if err != nil {
		return nil, err
	}
	if err := transitionGuard(article.Status, "cancelled"); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     models.ArticleStatusCancelled,
		"updated_at": now,
	}
	if err := s.db.Model(&models.Article{}).Where("id = ?", article.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: cancel article: %v", ErrDependency, err)
	}
	article.Status = models.ArticleStatusCancelled
	article.UpdatedAt = now
	return article, nil
}

// Approve finalizes an article and appends the audit row.
func (s *ArticleWorkflowService) Approve(reviewerID, articleID, message string) (*models.Article, error) {
	return s.decide(reviewerID, articleID, models.ArticleStatusApproved, message)
}

// Reject declines an article and appends the audit row.
func (s *ArticleWorkflowService) Reject(reviewerID, articleID, message string) (*models.Article, error) {
	return s.decide(reviewerID, articleID, models.ArticleStatusRejected, message)
}

// RequestRevision returns an article to its author for another pass and
// appends the audit row.
func (s *ArticleWorkflowService) RequestRevision(reviewerID, articleID, message string) (*models.Article, error) {
	return s.decide(reviewerID, articleID, models.ArticleStatusNeedAction, message)
}

// decide applies a reviewer decision: one status write, one audit row, both in
// the same transaction, then a best-effort notification to the author.
func (s *ArticleWorkflowService) decide(reviewerID, articleID, target, message string) (*models.Article, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrDependency, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var article models.Article
	if err := tx.Where("id = ?", articleID).First(&article).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
		}
		return nil, fmt.Errorf("%w: load article: %v", ErrDependency, err)
	}

	if err := transitionGuard(article.Status, "reviewed"); err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if err := s.applyStatus(tx, &article, target, reviewerID, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	logRow := models.ArticleLog{
		ID:        uuid.NewString(),
		ArticleID: article.ID,
		Status:    target,
		CreatedAt: now,
	}
	if message != "" {
		logRow.Message = &message
	}
	if err := tx.Create(&logRow).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: write article log: %v", ErrDependency, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: commit decision: %v", ErrDependency, err)
	}

	article.Status = target
	article.ReviewerID = &reviewerID
	article.UpdatedAt = now

	if s.notifier != nil {
		s.notifier.Notify(article.AuthorID, decisionNotice(&article, message))
	}
	return &article, nil
}

// applyStatus writes the new status and reviewer stamp. With GuardStatus the
// update only lands if the status still equals the one observed at read time.
func (s *ArticleWorkflowService) applyStatus(tx *gorm.DB, article *models.Article, target, reviewerID string, now time.Time) error {
	updates := map[string]interface{}{
		"status":      target,
		"reviewer_id": reviewerID,
		"updated_at":  now,
	}

	query := tx.Model(&models.Article{}).Where("id = ?", article.ID)
	if s.GuardStatus {
		query = query.Where("status = ?", article.Status)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("%w: update article status: %v", ErrDependency, result.Error)
	}
	if s.GuardStatus && result.RowsAffected == 0 {
		return fmt.Errorf("%w: article status changed concurrently", ErrConflict)
	}
	return nil
}

func (s *ArticleWorkflowService) loadOwned(authorID, articleID string) (*models.Article, error) {
	var article models.Article
	if err := s.db.Where("id = ?", articleID).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
		}
		return nil, fmt.Errorf("%w: load article: %v", ErrDependency, err)
	}
	if article.AuthorID != authorID {
		return nil, fmt.Errorf("%w: article does not belong to this account", ErrPermissionDenied)
	}
	return &article, nil
}

// transitionGuard is the shared precondition for reviewer decisions and
// cancellation. It is deliberately coarse: drafts and approvals are the two
// states that must never be silently overwritten, and a permanently deleted
// article is gone for good; everything else (PENDING, NEED_ACTION, REJECTED)
// takes the action uniformly.
func transitionGuard(status, action string) error {
	switch status {
	case models.ArticleStatusDraft:
		return fmt.Errorf("%w: draft article has not been submitted and cannot be %s", ErrInvalidTransition, action)
	case models.ArticleStatusApproved:
		return fmt.Errorf("%w: approved article is finalized and cannot be %s", ErrInvalidTransition, action)
	case models.ArticleStatusPermanentlyDeleted:
		return fmt.Errorf("%w: permanently deleted article cannot be %s", ErrInvalidTransition, action)
	}
	return nil
}

func decisionNotice(article *models.Article, message string) Notice {
	var title, content string
	switch article.Status {
	case models.ArticleStatusApproved:
		title = "Article approved"
		content = fmt.Sprintf("Your article %q has been approved.", article.Title)
	case models.ArticleStatusRejected:
		title = "Article rejected"
		content = fmt.Sprintf("Your article %q has been rejected.", article.Title)
	case models.ArticleStatusNeedAction:
		title = "Revision requested"
		content = fmt.Sprintf("Your article %q needs another revision before it can be approved.", article.Title)
	}
	if message != "" {
		content = fmt.Sprintf("%s Reviewer remark: %s", content, message)
	}
	return Notice{Title: title, Content: content, ArticleID: article.ID}
}
