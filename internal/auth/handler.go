package auth

import (
	"strings"

	"github.com/mancil-la/OBLEAS/internal/config"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Usuario = strings.TrimSpace(strings.ToLower(body.Usuario))

		if body.Usuario == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Usuario y contraseña requeridos")
		}

		var t models.Trabajador
		if err := database.DB.Where("usuario = ? AND activo = ?", body.Usuario, true).First(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &t)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":     t.ID,
				"nombre": t.Nombre,
				"rol":    t.Rol,
			},
		})
	}
}

// POST /api/auth/logout
// Con JWT no hay estado de sesión en el servidor; el cliente descarta el token.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Sesión cerrada exitosamente"})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idVal := c.Locals(CtxTrabajadorIDKey)
		id, ok := idVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "No autenticado")
		}

		var t models.Trabajador
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario inactivo o no existe")
		}

		return c.JSON(fiber.Map{
			"id":     t.ID,
			"nombre": t.Nombre,
			"rol":    t.Rol,
		})
	}
}
