package middleware

import (
	"net/http"
	"os"
	"strings"

	"article-portal-api/config"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AccountID  string `json:"account_id"`
	Email      string `json:"email"`
	Namespace  string `json:"namespace"`
	Permission string `json:"permission"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check if the account still exists and has not been deactivated
		var account models.Account
		if err := config.DB.Where("id = ? AND account_status = ?", claims.AccountID, models.AccountStatusActive).First(&account).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}

		// Set account info in context
		c.Set("accountID", claims.AccountID)
		c.Set("email", claims.Email)
		c.Set("namespace", claims.Namespace)
		c.Set("permission", claims.Permission)

		c.Next()
	}
}

// RequireNamespace checks that the account belongs to one of the given
// namespaces (ADMIN, STUDENT, GUEST).
func RequireNamespace(namespaces ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("namespace")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Namespace not found"})
			c.Abort()
			return
		}

		namespace := value.(string)
		allowed := false
		for _, candidate := range namespaces {
			if namespace == candidate {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
