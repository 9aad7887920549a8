// controllers/faculty.go - faculty master data
package controllers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"article-portal-api/config"
	"article-portal-api/models"
	"article-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// facultyCode builds a short code from the faculty name initials plus a
// random 4-digit suffix, regenerating on the rare collision.
func facultyCode(name string) (string, error) {
	words := strings.Fields(strings.TrimSpace(name))

	var code string
	if len(words) == 1 {
		code = strings.ToUpper(words[0][:1]) + "N"
	} else {
		var initials strings.Builder
		for _, word := range words {
			initials.WriteString(strings.ToUpper(word[:1]))
		}
		code = initials.String()
	}

	for attempt := 0; attempt < 10; attempt++ {
		candidate := fmt.Sprintf("%s%04d", code, 1000+rand.Intn(9000))

		var count int64
		if err := config.DB.Model(&models.Faculty{}).Where("faculty_code = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a unique faculty code")
}

// GetFaculties lists faculties for the admin dashboard; permanently deleted
// rows are hidden.
func GetFaculties(c *gin.Context) {
	listFaculties(c, models.NamespaceAdmin)
}

// GetPublicFaculties lists active faculties for registration forms.
func GetPublicFaculties(c *gin.Context) {
	listFaculties(c, "PUBLIC")
}

func listFaculties(c *gin.Context, namespace string) {
	query := config.DB.Model(&models.Faculty{}).Preload("Avatar").Preload("CreatedBy.AccountInfo")
	if namespace == models.NamespaceAdmin {
		query = query.Where("status <> ?", models.FacultyStatusPermanentlyDeleted)
	} else {
		query = query.Where("status = ?", models.FacultyStatusActive)
	}

	var faculties []models.Faculty
	if err := query.Order("created_at ASC").Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch faculties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": faculties})
}

type facultyForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// CreateFaculty creates a faculty with a generated code and avatar image.
func CreateFaculty(c *gin.Context) {
	accountID, _ := currentAccountID(c)

	var form facultyForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := facultyCode(form.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate faculty code"})
		return
	}

	avatarID, err := storeAvatar(c)
	if err != nil {
		respondError(c, err)
		return
	}

	faculty := models.Faculty{
		ID:          uuid.NewString(),
		Name:        utils.SanitizeInput(form.Name),
		Description: utils.SanitizeInput(form.Description),
		FacultyCode: code,
		Status:      models.FacultyStatusActive,
		AvatarID:    avatarID,
		CreatedByID: &accountID,
		CreatedAt:   time.Now(),
	}

	if err := config.DB.Create(&faculty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create faculty"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"faculty": faculty,
	})
}

// UpdateFaculty edits faculty master data; the code is never regenerated.
func UpdateFaculty(c *gin.Context) {
	var form facultyForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var faculty models.Faculty
	if err := config.DB.Where("id = ?", c.Param("id")).First(&faculty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Faculty not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load faculty"})
		return
	}

	updates := map[string]interface{}{
		"name":        utils.SanitizeInput(form.Name),
		"description": utils.SanitizeInput(form.Description),
		"updated_at":  time.Now(),
	}

	avatarID, err := storeAvatar(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if avatarID != nil {
		updates["avatar_id"] = *avatarID
	}

	if err := config.DB.Model(&models.Faculty{}).Where("id = ?", faculty.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update faculty"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Faculty updated",
	})
}

// DeleteFaculty soft-deletes a faculty by status.
func DeleteFaculty(c *gin.Context) {
	var faculty models.Faculty
	if err := config.DB.Where("id = ?", c.Param("id")).First(&faculty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Faculty not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load faculty"})
		return
	}

	updates := map[string]interface{}{
		"status":     models.FacultyStatusPermanentlyDeleted,
		"updated_at": time.Now(),
	}
	if err := config.DB.Model(&models.Faculty{}).Where("id = ?", faculty.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete faculty"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Faculty deleted",
	})
}
