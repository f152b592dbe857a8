package auth

import (
	"net/http"
	"testing"

	"github.com/mancil-la/OBLEAS/internal/config"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "clave-de-prueba-suficientemente-larga-123"}
}

func appProtegida(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protegida", JWTMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestJWTMiddlewareRechazaPeticionesSinToken(t *testing.T) {
	app := appProtegida(testConfig())

	casos := []struct {
		nombre string
		header string
	}{
		{"sin header", ""},
		{"formato incorrecto", "token-sin-bearer"},
		{"esquema incorrecto", "Basic abc123"},
		{"token corrupto", "Bearer no.es.un.jwt"},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protegida", nil)
			if caso.header != "" {
				req.Header.Set("Authorization", caso.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("status = %d, se esperaba 401", resp.StatusCode)
			}
		})
	}
}

func TestJWTMiddlewareRechazaTokenDeOtraClave(t *testing.T) {
	otraClave := &config.Config{JWTSecret: "otra-clave-igual-de-larga-para-firmar-0"}
	trabajador := &models.Trabajador{ID: 1, Usuario: "admin", Rol: models.RolAdmin}

	token, err := GenerateToken(otraClave.JWTSecret, trabajador)
	if err != nil {
		t.Fatal(err)
	}

	app := appProtegida(testConfig())
	req, _ := http.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, se esperaba 401", resp.StatusCode)
	}
}

func TestRequireRol(t *testing.T) {
	appConRol := func(rol models.Rol) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(CtxRolKey, rol)
			return c.Next()
		})
		app.Get("/solo-admin", RequireRol(models.RolAdmin), func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
		return app
	}

	req, _ := http.NewRequest(http.MethodGet, "/solo-admin", nil)

	resp, err := appConRol(models.RolAdmin).Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("admin: status = %d, se esperaba 200", resp.StatusCode)
	}

	req2, _ := http.NewRequest(http.MethodGet, "/solo-admin", nil)
	resp, err = appConRol(models.RolTrabajador).Test(req2)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("trabajador: status = %d, se esperaba 403", resp.StatusCode)
	}
}
