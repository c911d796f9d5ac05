package handler

import (
	"strconv"
	"time"

	"github.com/gallerai/gallerai/auth"
	"github.com/go-pkgz/auth/v2/token"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Custom login handler that integrates with go-pkgz/auth
func Login(c *fiber.Ctx) error {
	type LoginData struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}

	type UserResponse struct {
		ID       uint   `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
		FullName string `json:"name"`
		Token    string `json:"token"`
	}

	input := new(LoginData)
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"status":  "error",
			"data":    nil,
		})
	}

	userModel, err := auth.GetUserByIdentity(input.Identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database error",
			"status":  "error",
			"data":    nil,
		})
	}

	if userModel == nil || !auth.CheckPasswordHash(input.Password, userModel.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid identity or password",
			"status":  "error",
			"data":    nil,
		})
	}

	// Create JWT token using go-pkgz/auth
	user := token.User{
		ID:    strconv.FormatUint(uint64(userModel.ID), 10),
		Name:  userModel.FullName,
		Email: userModel.Email,
		Attributes: map[string]interface{}{
			"username": userModel.Username,
		},
	}

	claims := token.Claims{
		User: &user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			Audience:  []string{auth.Issuer},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tokenStr, err := auth.GetAuthService().TokenService().Token(claims)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
			"status":  "error",
			"data":    nil,
		})
	}

	// Set JWT cookie (optional, for web clients)
	c.Cookie(&fiber.Cookie{
		Name:     "JWT",
		Value:    tokenStr,
		Expires:  time.Now().Add(time.Hour * 24 * 7),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	response := UserResponse{
		ID:       userModel.ID,
		Email:    userModel.Email,
		Username: userModel.Username,
		FullName: userModel.FullName,
		Token:    tokenStr,
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"status":  "success",
		"data":    response,
	})
}

func Logout(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "JWT",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logout successful",
		"status":  "success",
		"data":    nil,
	})
}
