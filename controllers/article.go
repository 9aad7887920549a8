// controllers/article.go - student-facing article endpoints
package controllers

import (
	"net/http"

	"article-portal-api/models"
	"article-portal-api/services"
	"article-portal-api/utils"

	"github.com/gin-gonic/gin"
)

type draftRequest struct {
	Title   string  `json:"title" binding:"required"`
	Content *string `json:"content"`
}

// SaveDraftArticle stores an unsubmitted draft for the current student.
func SaveDraftArticle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := workflowService().SaveDraft(services.DraftInput{
		AuthorID: accountID,
		Title:    utils.SanitizeInput(req.Title),
		Content:  req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"article": article,
	})
}

// UploadArticle submits a new article, or resubmits an existing draft or
// revision request when article_id is supplied. The document file is
// mandatory; a thumbnail is optional.
func UploadArticle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	title := utils.SanitizeInput(c.PostForm("title"))
	articleID := c.PostForm("article_id")
	eventID := c.PostForm("event_id")

	var content *string
	if raw, exists := c.GetPostForm("content"); exists {
		content = &raw
	}

	store := services.NewDiskAttachmentStore()

	documentFile, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A document file is required"})
		return
	}
	document, err := store.Store(documentFile)
	if err != nil {
		respondError(c, err)
		return
	}

	var thumbnail *services.AttachmentDescriptor
	if thumbnailFile, err := c.FormFile("thumbnail"); err == nil {
		stored, err := store.Store(thumbnailFile)
		if err != nil {
			respondError(c, err)
			return
		}
		thumbnail = &stored
	}

	article, err := workflowService().Submit(services.SubmitInput{
		AuthorID:  accountID,
		ArticleID: articleID,
		Title:     title,
		Content:   content,
		EventID:   eventID,
		Document:  &document,
		Thumbnail: thumbnail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// CancelArticle withdraws the student's submitted article.
func CancelArticle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	article, err := workflowService().Cancel(accountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// DeleteDraftArticle permanently deletes one of the student's drafts.
func DeleteDraftArticle(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	if err := workflowService().DeleteDraft(accountID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Draft deleted",
	})
}

// GetMyArticles lists the student's own articles.
func GetMyArticles(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	page, limit := parsePagination(c)
	result, err := queryService().ListForAuthor(accountID, services.AuthorListParams{
		Page:     page,
		PageSize: limit,
		Status:   c.DefaultQuery("status", models.ArticleStatusAll),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPublicArticles lists approved articles without authentication.
func GetPublicArticles(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := queryService().ListPublic(services.PublicListParams{
		Page:     page,
		PageSize: limit,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetArticleDetail returns one article with its full review history.
func GetArticleDetail(c *gin.Context) {
	article, err := queryService().GetDetail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}
