// controllers/account.go - account master data (read side only; registration
// and password flows live in the external identity service)
package controllers

import (
	"net/http"

	"article-portal-api/config"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
)

// GetAccounts lists accounts of one namespace for the admin dashboard.
// Permanently deleted accounts are hidden.
func GetAccounts(c *gin.Context) {
	namespace := c.DefaultQuery("namespace", models.NamespaceStudent)
	switch namespace {
	case models.NamespaceAdmin, models.NamespaceStudent, models.NamespaceGuest:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid namespace"})
		return
	}

	var accounts []models.Account
	err := config.DB.
		Preload("AccountRole").
		Preload("AccountInfo.Faculty").
		Preload("AccountInfo.Avatar").
		Where("account_role_type = ?", namespace).
		Where("account_status <> ?", models.AccountStatusPermanentlyDeleted).
		Find(&accounts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accounts})
}
