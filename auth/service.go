package auth

import (
	"errors"
	"net/mail"
	"time"

	"github.com/gallerai/gallerai/config"
	"github.com/gallerai/gallerai/database"
	"github.com/gallerai/gallerai/models"
	"github.com/go-pkgz/auth/v2"
	"github.com/go-pkgz/auth/v2/avatar"
	"github.com/go-pkgz/auth/v2/provider"
	"github.com/go-pkgz/auth/v2/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Issuer = "gallerai"

// Global auth service instance
var authService *auth.Service

// Initialize auth service
func SetupAuthService() *auth.Service {
	options := auth.Opts{
		SecretReader: token.SecretFunc(func(id string) (string, error) {
			return config.Config("JWT_SECRET"), nil
		}),
		TokenDuration:  time.Hour * 24,     // JWT token duration
		CookieDuration: time.Hour * 24 * 7, // Cookie duration
		Issuer:         Issuer,
		URL:            config.ConfigOr("APP_URL", "http://localhost:8000"),
		AvatarStore:    avatar.NewLocalFS("/tmp/avatars"),
	}

	service := auth.NewService(options)

	// Direct provider backed by the users table
	service.AddDirectProvider("local", provider.CredCheckerFunc(func(identity, password string) (bool, error) {
		return ValidateUserCredentials(identity, password)
	}))

	authService = service
	return service
}

// Get the auth service instance
func GetAuthService() *auth.Service {
	return authService
}

// ValidateUserCredentials validates user credentials against the database
func ValidateUserCredentials(identity, password string) (bool, error) {
	user, err := GetUserByIdentity(identity)
	if err != nil {
		return false, err
	}

	if user == nil {
		return false, nil // User not found
	}

	return CheckPasswordHash(password, user.Password), nil
}

// GetUserByIdentity looks a user up by email or username.
func GetUserByIdentity(identity string) (*models.User, error) {
	db := database.GetDB()
	var user models.User

	column := "username"
	if isEmail(identity) {
		column = "email"
	}

	if err := db.Where(column+" = ?", identity).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func isEmail(identity string) bool {
	_, err := mail.ParseAddress(identity)
	return err == nil
}
