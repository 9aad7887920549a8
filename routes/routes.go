package routes

import (
	"article-portal-api/controllers"
	"article-portal-api/middleware"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Article Portal API is running",
				})
			})

			// Public listings
			public.GET("/articles/public", controllers.GetPublicArticles)
			public.GET("/events/public", controllers.GetPublicEvents)
			public.GET("/faculties/public", controllers.GetPublicFaculties)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", controllers.GetProfile)

			// Events visible to every signed-in account
			protected.GET("/events/active", controllers.GetActiveEvents)

			// Student article workflow
			student := protected.Group("")
			student.Use(middleware.RequireNamespace(models.NamespaceStudent))
			{
				student.POST("/articles/draft", controllers.SaveDraftArticle)
				student.POST("/articles", controllers.UploadArticle)
				student.GET("/articles", controllers.GetMyArticles)
				student.PUT("/articles/:id/cancel", controllers.CancelArticle)
				student.DELETE("/articles/:id", controllers.DeleteDraftArticle)

				student.GET("/notifications", controllers.GetNotifications)
				student.PUT("/notifications/:id/seen", controllers.MarkNotificationSeen)
			}

			// Article detail is shared between authors and reviewers
			protected.GET("/articles/:id", controllers.GetArticleDetail)

			// Reviewer / admin surface
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireNamespace(models.NamespaceAdmin))
			{
				admin.GET("/articles", controllers.GetReviewArticles)
				admin.POST("/articles/:id/approve", controllers.ApproveArticle)
				admin.POST("/articles/:id/reject", controllers.RejectArticle)
				admin.POST("/articles/:id/need-action", controllers.RequestArticleRevision)

				admin.GET("/events", controllers.GetEvents)
				admin.POST("/events", controllers.CreateEvent)
				admin.PUT("/events/:id", controllers.UpdateEvent)
				admin.DELETE("/events/:id", controllers.SuspendEvent)

				admin.GET("/faculties", controllers.GetFaculties)
				admin.POST("/faculties", controllers.CreateFaculty)
				admin.PUT("/faculties/:id", controllers.UpdateFaculty)
				admin.DELETE("/faculties/:id", controllers.DeleteFaculty)

				admin.GET("/accounts", controllers.GetAccounts)
				admin.GET("/reports/faculties", controllers.GetFacultyReport)
			}
		}
	}
}
