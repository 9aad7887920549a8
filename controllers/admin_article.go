// controllers/admin_article.go - reviewer-facing article endpoints
package controllers

import (
	"net/http"
	"strings"

	"article-portal-api/models"
	"article-portal-api/services"

	"github.com/gin-gonic/gin"
)

type decisionRequest struct {
	Message string `json:"message"`
}

// GetReviewArticles lists the articles visible to the current reviewer. The
// visibility scope is computed from the reviewer's permission level before
// any caller-supplied faculty filter is applied.
func GetReviewArticles(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	page, limit := parsePagination(c)
	result, err := queryService().ListForReviewer(accountID, services.ReviewerListParams{
		Page:      page,
		PageSize:  limit,
		Status:    strings.ToUpper(c.DefaultQuery("status", models.ArticleStatusAll)),
		FacultyID: c.Query("faculty_id"),
		EventID:   c.Query("event_id"),
		Search:    c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ApproveArticle finalizes an article.
func ApproveArticle(c *gin.Context) {
	decide(c, models.ArticleStatusApproved)
}

// RejectArticle declines an article.
func RejectArticle(c *gin.Context) {
	decide(c, models.ArticleStatusRejected)
}

// RequestArticleRevision returns an article to its author for another pass.
func RequestArticleRevision(c *gin.Context) {
	decide(c, models.ArticleStatusNeedAction)
}

func decide(c *gin.Context, target string) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	message := strings.TrimSpace(req.Message)

	engine := workflowService()
	articleID := c.Param("id")

	var (
		article *models.Article
		err     error
	)
	switch target {
	case models.ArticleStatusApproved:
		article, err = engine.Approve(accountID, articleID, message)
	case models.ArticleStatusRejected:
		article, err = engine.Reject(accountID, articleID, message)
	case models.ArticleStatusNeedAction:
		article, err = engine.RequestRevision(accountID, articleID, message)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}
