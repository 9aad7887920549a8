// controllers/notification.go - in-app notifications for students
package controllers

import (
	"errors"
	"net/http"

	"article-portal-api/config"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetNotifications lists the current student's notifications, newest first.
func GetNotifications(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	var notifications []models.Notification
	err := config.DB.
		Where("student_id = ?", accountID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unseen int64
	config.DB.Model(&models.Notification{}).
		Where("student_id = ? AND seen = ?", accountID, false).
		Count(&unseen)

	c.JSON(http.StatusOK, gin.H{
		"data":   notifications,
		"unseen": unseen,
	})
}

// MarkNotificationSeen flags one of the student's notifications as seen.
func MarkNotificationSeen(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account context missing"})
		return
	}

	var notification models.Notification
	err := config.DB.
		Where("id = ? AND student_id = ?", c.Param("id"), accountID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification"})
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as seen",
	})
}
