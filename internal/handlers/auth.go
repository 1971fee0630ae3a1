package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/syaoranea/FlowChat/internal/config"
)

// AuthHandler issues access tokens for the back-office API.
type AuthHandler struct {
	settings *config.Settings
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(settings *config.Settings) *AuthHandler {
	return &AuthHandler{settings: settings}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates admin credentials and returns a signed JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email e senha são obrigatórios",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email e senha são obrigatórios",
		})
	}

	if h.settings.AdminEmail == "" || req.Email != h.settings.AdminEmail || req.Password != h.settings.AdminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login inválido",
		})
	}

	claims := jwt.MapClaims{
		"sub": req.Email,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.settings.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sign token",
		})
	}

	return c.JSON(fiber.Map{
		"access_token": signed,
	})
}
