// controllers/event.go - event master data
package controllers

import (
	"errors"
	"net/http"
	"time"

	"article-portal-api/config"
	"article-portal-api/models"
	"article-portal-api/services"
	"article-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var eventStatuses = map[string]struct{}{
	models.EventStatusActive:    {},
	models.EventStatusPending:   {},
	models.EventStatusCompleted: {},
	models.EventStatusSuspended: {},
}

// GetEvents lists events for the admin dashboard with pagination and search.
func GetEvents(c *gin.Context) {
	listEvents(c, models.NamespaceAdmin)
}

// GetPublicEvents lists events for the public site; suspended events are hidden.
func GetPublicEvents(c *gin.Context) {
	listEvents(c, "PUBLIC")
}

func listEvents(c *gin.Context, namespace string) {
	page, limit := parsePagination(c)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	status := c.DefaultQuery("status", "ALL")
	search := utils.SanitizeInput(c.Query("search"))

	query := config.DB.Model(&models.Event{}).Preload("Avatar").Preload("HostedBy.AccountInfo")

	if namespace == "PUBLIC" {
		query = query.Where("status <> ?", models.EventStatusSuspended)
	}
	if status != "ALL" {
		if _, ok := eventStatuses[status]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	var events []models.Event
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        events,
		"totalItems":  total,
		"currentPage": page,
		"limit":       limit,
		"totalPages":  totalPages,
	})
}

// GetActiveEvents returns active events without pagination, for submit forms.
func GetActiveEvents(c *gin.Context) {
	var events []models.Event
	if err := config.DB.Where("status = ?", models.EventStatusActive).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

type eventForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	StartDate   string `form:"start_date" binding:"required"`
	ClosureDate string `form:"closure_date" binding:"required"`
	Deadline    string `form:"deadline" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
}

func (f eventForm) parseDates() (start, closure, deadline, end time.Time, err error) {
	if start, err = time.Parse(time.RFC3339, f.StartDate); err != nil {
		return
	}
	if closure, err = time.Parse(time.RFC3339, f.ClosureDate); err != nil {
		return
	}
	if deadline, err = time.Parse(time.RFC3339, f.Deadline); err != nil {
		return
	}
	end, err = time.Parse(time.RFC3339, f.EndDate)
	return
}

// CreateEvent creates a new submission event with its avatar image.
func CreateEvent(c *gin.Context) {
	accountID, _ := currentAccountID(c)

	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, closure, deadline, end, err := form.parseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be RFC3339 timestamps"})
		return
	}

	avatarID, err := storeAvatar(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if avatarID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An event image is required"})
		return
	}

	now := time.Now()
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       utils.SanitizeInput(form.Title),
		Description: utils.SanitizeInput(form.Description),
		StartDate:   start,
		ClosureDate: closure,
		Deadline:    deadline,
		EndDate:     end,
		Status:      models.EventStatusActive,
		AvatarID:    avatarID,
		HostedByID:  &accountID,
		CreatedAt:   now,
	}

	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"event":   event,
	})
}

// UpdateEvent edits event master data. A new image, when supplied, is stored
// as a fresh attachment row; the old row stays untouched.
func UpdateEvent(c *gin.Context) {
	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, closure, deadline, end, err := form.parseDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be RFC3339 timestamps"})
		return
	}

	var event models.Event
	if err := config.DB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"title":        utils.SanitizeInput(form.Title),
		"description":  utils.SanitizeInput(form.Description),
		"start_date":   start,
		"closure_date": closure,
		"deadline":     deadline,
		"end_date":     end,
		"updated_at":   now,
	}

	avatarID, err := storeAvatar(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if avatarID != nil {
		updates["avatar_id"] = *avatarID
	}

	if err := config.DB.Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated",
	})
}

// SuspendEvent soft-deletes an event. Completed events stay on record and
// cannot be suspended.
func SuspendEvent(c *gin.Context) {
	var event models.Event
	if err := config.DB.Where("id = ?", c.Param("id")).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}

	if event.Status == models.EventStatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Completed event cannot be suspended"})
		return
	}

	updates := map[string]interface{}{
		"status":     models.EventStatusSuspended,
		"updated_at": time.Now(),
	}
	if err := config.DB.Model(&models.Event{}).Where("id = ?", event.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event suspended",
	})
}

// storeAvatar persists an optional "image" form file as an attachment row and
// returns its id, or nil when no file was sent.
func storeAvatar(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	stored, err := services.NewDiskAttachmentStore().Store(file)
	if err != nil {
		return nil, err
	}

	attachment := models.Attachment{
		ID:        uuid.NewString(),
		Name:      stored.Name,
		Path:      stored.Path,
		Type:      stored.MediaType,
		CreatedAt: time.Now(),
	}
	if err := config.DB.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment.ID, nil
}
