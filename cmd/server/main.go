package main

import (
	"log"
	"strings"

	"github.com/mancil-la/OBLEAS/internal/admin"
	"github.com/mancil-la/OBLEAS/internal/audit"
	"github.com/mancil-la/OBLEAS/internal/auth"
	"github.com/mancil-la/OBLEAS/internal/config"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/inventario"
	"github.com/mancil-la/OBLEAS/internal/models"
	"github.com/mancil-la/OBLEAS/internal/reportes"
	"github.com/mancil-la/OBLEAS/internal/ventas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// El ciclo de vida del store de ventas vive aquí, no en un global
	ventasSvc := ventas.NewService(ventas.NewGormStore(database.DB))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Autenticación pública
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler())

	// Productos
	protected.Get("/productos", inventario.ListarProductosHandler())
	protected.Get("/productos/:id", inventario.ObtenerProductoHandler())

	soloAdmin := auth.RequireRol(models.RolAdmin)
	protected.Post("/productos", soloAdmin, inventario.CrearProductoHandler())
	protected.Put("/productos/:id", soloAdmin, inventario.ActualizarProductoHandler())
	protected.Post("/productos/:id/ajustar-stock", soloAdmin, inventario.AjustarStockHandler(ventasSvc))
	protected.Delete("/productos/:id", soloAdmin, inventario.EliminarProductoHandler())

	// Trabajadores
	protected.Get("/trabajadores", soloAdmin, admin.ListarTrabajadoresHandler())
	protected.Get("/trabajadores/:id", admin.ObtenerTrabajadorHandler())
	protected.Post("/trabajadores", soloAdmin, admin.CrearTrabajadorHandler())
	protected.Put("/trabajadores/:id", soloAdmin, admin.ActualizarTrabajadorHandler())
	protected.Delete("/trabajadores/:id", soloAdmin, admin.DesactivarTrabajadorHandler())

	// Ventas
	protected.Get("/ventas", ventas.ListarVentasHandler())
	protected.Get("/ventas/:id", ventas.ObtenerVentaHandler())
	protected.Post("/ventas", ventas.CrearVentaHandler(ventasSvc))

	// Reportes
	protected.Get("/reportes/ventas-por-trabajador", soloAdmin, reportes.VentasPorTrabajadorHandler())
	protected.Get("/reportes/productos-mas-vendidos", reportes.ProductosMasVendidosHandler())
	protected.Get("/reportes/resumen", reportes.ResumenHandler())

	// Auditoría
	protected.Get("/audit-logs", soloAdmin, audit.ListAuditLogsHandler())

	log.Println("Servidor corriendo en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
