package auth

import (
	"fmt"
	"strings"

	"github.com/mancil-la/OBLEAS/internal/config"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxTrabajadorIDKey = "trabajador_id"
	CtxRolKey          = "rol"
	CtxNombreKey       = "nombre"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No autenticado")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "El formato de Authorization debe ser 'Bearer <token>'")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "No se pudo leer el token")
		}

		// Validar que el trabajador siga activo; un trabajador desactivado
		// pierde acceso aunque su token todavía no expire.
		var t models.Trabajador
		if err := database.DB.First(&t, "id = ?", claims.TrabajadorID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario inactivo o no existe")
		}
		if !t.Activo {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuario inactivo o no existe")
		}

		// Refrescar datos por si cambiaron después de emitir el token
		c.Locals(CtxTrabajadorIDKey, t.ID)
		c.Locals(CtxRolKey, t.Rol)
		c.Locals(CtxNombreKey, t.Nombre)

		return c.Next()
	}
}

func RequireRol(permitidos ...models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rolVal := c.Locals(CtxRolKey)
		rol, ok := rolVal.(models.Rol)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "No se pudo determinar el rol")
		}

		for _, r := range permitidos {
			if r == rol {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Acceso denegado. Solo administradores")
	}
}
