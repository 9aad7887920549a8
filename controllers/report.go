// controllers/report.go - dashboard reporting
package controllers

import (
	"net/http"

	"article-portal-api/config"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
)

type facultyReportRow struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Students     int64          `json:"students"`
	Coordinators int64          `json:"coordinators"`
	Articles     map[string]int `json:"articles"`
}

// GetFacultyReport returns per-faculty headcounts and article status totals
// for the admin dashboard.
func GetFacultyReport(c *gin.Context) {
	var faculties []models.Faculty
	if err := config.DB.
		Where("status <> ?", models.FacultyStatusPermanentlyDeleted).
		Order("name ASC").
		Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch faculties"})
		return
	}

	rows := make([]facultyReportRow, 0, len(faculties))
	for _, faculty := range faculties {
		row := facultyReportRow{
			ID:       faculty.ID,
			Name:     faculty.Name,
			Articles: make(map[string]int),
		}

		config.DB.Model(&models.AccountInfo{}).
			Joins("JOIN accounts ON accounts.account_info_id = account_infos.id").
			Where("account_infos.faculty_id = ?", faculty.ID).
			Where("accounts.account_role_type = ?", models.NamespaceStudent).
			Where("accounts.account_status = ?", models.AccountStatusActive).
			Count(&row.Students)

		config.DB.Model(&models.FacultyAdmin{}).
			Joins("JOIN accounts ON accounts.id = faculty_admins.account_id").
			Joins("JOIN account_roles ON account_roles.id = accounts.account_role_id").
			Where("faculty_admins.faculty_id = ?", faculty.ID).
			Where("accounts.account_status = ?", models.AccountStatusActive).
			Where("account_roles.permissions = ?", models.PermissionCoordinator).
			Count(&row.Coordinators)

		type statusCount struct {
			Status string
			Total  int
		}
		var counts []statusCount
		config.DB.Model(&models.Article{}).
			Select("status, COUNT(*) AS total").
			Where("faculty_id = ?", faculty.ID).
			Where("status <> ?", models.ArticleStatusPermanentlyDeleted).
			Group("status").
			Scan(&counts)
		for _, count := range counts {
			row.Articles[count.Status] = count.Total
		}

		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
