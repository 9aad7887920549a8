package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"article-portal-api/config"
	"article-portal-api/services"

	"github.com/gin-gonic/gin"
)

// Workflow collaborators are rebuilt per call: they are thin wrappers around
// the shared gorm handle and hold no state of their own.
func workflowService() *services.ArticleWorkflowService {
	return services.NewArticleWorkflowService(
		config.DB,
		services.NewEventDeadlineOracle(config.DB),
		services.NewAccountDirectory(config.DB),
		services.NewMailNotifier(config.DB),
	)
}

func queryService() *services.ArticleQueryService {
	return services.NewArticleQueryService(
		config.DB,
		services.NewScopeResolver(config.DB, services.NewAccountDirectory(config.DB)),
	)
}

// respondError maps the workflow error taxonomy onto HTTP statuses. The
// wrapped precondition message is passed through so the caller always learns
// which check failed.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrDependency):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func currentAccountID(c *gin.Context) (string, bool) {
	value, exists := c.Get("accountID")
	if !exists {
		return "", false
	}
	accountID, ok := value.(string)
	return accountID, ok && accountID != ""
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}
