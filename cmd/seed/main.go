package main

import (
	"log"
	"os"
	"time"

	"article-portal-api/config"
	"article-portal-api/models"
	"article-portal-api/utils"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the super admin role and the master admin account so a fresh
// deployment can log in.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	config.MigrateDB()

	db := config.DB

	var role models.AccountRole
	err := db.Where("name = ?", "Super Admin").First(&role).Error
	if err != nil {
		role = models.AccountRole{
			ID:          uuid.NewString(),
			Name:        "Super Admin",
			Description: "Super privilege",
			Permissions: models.PermissionAll,
		}
		if err := db.Create(&role).Error; err != nil {
			log.Fatal("Failed to seed super admin role:", err)
		}
		log.Println("Seeded role: Super Admin")
	}

	var admin models.Account
	err = db.Where("account_role_type = ?", models.NamespaceAdmin).First(&admin).Error
	if err == nil {
		log.Println("Admin account already present, nothing to do")
		return
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@portal.edu"
	}
	if !utils.ValidateEmail(email) {
		log.Fatal("SEED_ADMIN_EMAIL is not a valid email address")
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	} else if ok, msg := utils.ValidatePassword(password); !ok {
		log.Fatal("SEED_ADMIN_PASSWORD rejected: ", msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	info := models.AccountInfo{
		ID:   uuid.NewString(),
		Name: "Administrator",
	}
	if err := db.Create(&info).Error; err != nil {
		log.Fatal("Failed to seed admin profile:", err)
	}

	admin = models.Account{
		ID:              uuid.NewString(),
		Username:        "admin",
		Email:           email,
		Password:        string(hashed),
		AccountRoleType: models.NamespaceAdmin,
		AccountStatus:   models.AccountStatusActive,
		AccountRoleID:   &role.ID,
		AccountInfoID:   &info.ID,
		CreatedAt:       time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	log.Printf("Seeded master admin account %s", email)
}
