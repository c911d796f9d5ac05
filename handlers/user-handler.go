package handler

import (
	"github.com/gallerai/gallerai/auth"
	"github.com/gallerai/gallerai/database"
	"github.com/gallerai/gallerai/models"
	"github.com/gofiber/fiber/v2"
)

func GetUser(c *fiber.Ctx) error {
	type UserResponse struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		FullName string `json:"name"`
	}

	id := c.Params("id")

	db := database.GetDB()
	user := models.User{}
	db.Find(&user, id)

	if user.Username == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "No user found with ID", "data": nil})
	}

	userResponse := UserResponse{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}

	return c.JSON(fiber.Map{"status": "success", "message": "User found", "data": userResponse})
}

func CreateUser(c *fiber.Ctx) error {
	type NewUser struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		FullName string `json:"name"`
	}

	db := database.GetDB()
	user := new(models.User)

	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Wrong Input Data Format", "data": nil})
	}

	if user.Username == "" || user.Email == "" || user.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Username, email and password are required", "data": nil})
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to hash password", "data": nil})
	}
	user.Password = hash

	if err := db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create user", "data": nil})
	}

	newUser := NewUser{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "User created successfully", "data": newUser})
}
