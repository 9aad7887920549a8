package controllers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"article-portal-api/config"
	"article-portal-api/middleware"
	"article-portal-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Account models.Account `json:"account"`
	Message string         `json:"message"`
}

// Login handles account authentication for every namespace.
func Login(c *gin.Context) {
	var req LoginRequest

	// Bind request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Find account by email
	var account models.Account
	if err := config.DB.Preload("AccountRole").Preload("AccountInfo").
		Where("email = ? AND account_status = ?", req.Email, models.AccountStatusActive).
		First(&account).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !CheckPasswordHash(req.Password, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Generate JWT token
	token, err := generateToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Response
	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Account: account,
		Message: "Login successful",
	})
}

// GetProfile returns current account profile
func GetProfile(c *gin.Context) {
	accountID, _ := currentAccountID(c)

	var account models.Account
	if err := config.DB.Preload("AccountRole").Preload("AccountInfo.Faculty").
		Where("id = ?", accountID).
		First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
	})
}

func generateToken(account models.Account) (string, error) {
	expireHours := 24
	if env := os.Getenv("JWT_EXPIRE_HOURS"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			expireHours = parsed
		}
	}

	permission := ""
	if account.AccountRole != nil {
		permission = account.AccountRole.Permissions
	}

	claims := middleware.Claims{
		AccountID:  account.ID,
		Email:      account.Email,
		Namespace:  account.AccountRoleType,
		Permission: permission,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
