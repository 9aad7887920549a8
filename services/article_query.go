package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"article-portal-api/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageResult is the shared shape of every paginated article listing.
type PageResult struct {
	Items      []models.Article `json:"items"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// ReviewerListParams filters the reviewer-facing article listing. FacultyID is
// the caller-supplied override handed to the scope resolver; see ScopeResolver
// for the precedence rules.
type ReviewerListParams struct {
	Page      int
	PageSize  int
	Status    string
	FacultyID string
	EventID   string
	Search    string
}

// AuthorListParams filters a student's own article listing.
type AuthorListParams struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// PublicListParams filters the unauthenticated listing of approved articles.
type PublicListParams struct {
	Page     int
	PageSize int
	Search   string
}

// ArticleQueryService serves the read path: scoped reviewer listings, author
// listings, the public feed and single-article detail. It never mutates state.
type ArticleQueryService struct {
	db     *gorm.DB
	scopes *ScopeResolver
}

// NewArticleQueryService builds the query service over the database handle
// and scope resolver.
func NewArticleQueryService(db *gorm.DB, scopes *ScopeResolver) *ArticleQueryService {
	return &ArticleQueryService{db: db, scopes: scopes}
}

// ListForReviewer returns the articles a reviewer may see, most recently
// updated first. The visibility scope is applied before any caller-supplied
// filter, and the ALL view never includes drafts or permanently deleted rows.
func (s *ArticleQueryService) ListForReviewer(reviewerID string, p ReviewerListParams) (*PageResult, error) {
	page, pageSize := normalizePaging(p.Page, p.PageSize)

	status := p.Status
	if status == "" {
		status = models.ArticleStatusAll
	}
	if status != models.ArticleStatusAll && !models.IsArticleStatus(status) {
		return nil, fmt.Errorf("%w: unknown article status %s", ErrValidation, status)
	}

	scope, err := s.scopes.Resolve(reviewerID, p.FacultyID)
	if err != nil {
		return nil, err
	}
	if !scope.Unrestricted && len(scope.FacultyIDs) == 0 {
		// Fail closed: an empty scope matches nothing.
		return emptyPage(page, pageSize), nil
	}

	query := s.db.Model(&models.Article{})
	if !scope.Unrestricted {
		query = query.Where("articles.faculty_id IN ?", scope.FacultyIDs)
	}

	if status == models.ArticleStatusAll {
		query = query.Where("articles.status NOT IN ?", []string{
			models.ArticleStatusDraft,
			models.ArticleStatusPermanentlyDeleted,
		})
	} else {
		query = query.Where("articles.status = ?", status)
	}

	if p.EventID != "" {
		query = query.Where("articles.event_id = ?", p.EventID)
	}
	if p.Search != "" {
		pattern := searchPattern(p.Search)
		query = query.Where(
			"LOWER(articles.title) LIKE @q OR articles.author_id IN (SELECT accounts.id FROM accounts JOIN account_infos ON account_infos.id = accounts.account_info_id WHERE LOWER(account_infos.name) LIKE @q)",
			sql.Named("q", pattern),
		)
	}

	return s.paginate(query, page, pageSize, "articles.updated_at DESC")
}

// ListForAuthor returns a student's own articles, most recently created first.
// Permanently deleted rows are never returned, whatever the status filter.
func (s *ArticleQueryService) ListForAuthor(authorID string, p AuthorListParams) (*PageResult, error) {
	page, pageSize := normalizePaging(p.Page, p.PageSize)

	status := p.Status
	if status == "" {
		status = models.ArticleStatusAll
	}
	if status != models.ArticleStatusAll && !models.IsArticleStatus(status) {
		return nil, fmt.Errorf("%w: unknown article status %s", ErrValidation, status)
	}

	query := s.db.Model(&models.Article{}).
		Where("articles.author_id = ?", authorID).
		Where("articles.status <> ?", models.ArticleStatusPermanentlyDeleted)

	if status != models.ArticleStatusAll {
		query = query.Where("articles.status = ?", status)
	}
	if p.Search != "" {
		query = query.Where("LOWER(articles.title) LIKE ?", searchPattern(p.Search))
	}

	return s.paginate(query, page, pageSize, "articles.created_at DESC")
}

// ListPublic returns approved articles only; no authentication is required.
func (s *ArticleQueryService) ListPublic(p PublicListParams) (*PageResult, error) {
	page, pageSize := normalizePaging(p.Page, p.PageSize)

	query := s.db.Model(&models.Article{}).
		Where("articles.status = ?", models.ArticleStatusApproved)
	if p.Search != "" {
		query = query.Where("LOWER(articles.title) LIKE ?", searchPattern(p.Search))
	}

	return s.paginate(query, page, pageSize, "articles.created_at DESC")
}

// GetDetail returns one article with its full review history in chronological
// order. Ownership is not checked here; callers that need it enforce it.
func (s *ArticleQueryService) GetDetail(articleID string) (*models.Article, error) {
	var article models.Article
	err := s.db.
		Preload("Document").
		Preload("Thumbnail").
		Preload("Event").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", articleID).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
		}
		return nil, fmt.Errorf("%w: load article: %v", ErrDependency, err)
	}
	return &article, nil
}

func (s *ArticleQueryService) paginate(query *gorm.DB, page, pageSize int, order string) (*PageResult, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: count articles: %v", ErrDependency, err)
	}

	var items []models.Article
	err := query.
		Preload("Document").
		Preload("Thumbnail").
		Preload("Event").
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list articles: %v", ErrDependency, err)
	}

	return &PageResult{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func emptyPage(page, pageSize int) *PageResult {
	return &PageResult{
		Items:    []models.Article{},
		Page:     page,
		PageSize: pageSize,
	}
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
