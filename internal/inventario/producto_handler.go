package inventario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mancil-la/OBLEAS/internal/audit"
	"github.com/mancil-la/OBLEAS/internal/auth"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"
	"github.com/mancil-la/OBLEAS/internal/ventas"

	"github.com/gofiber/fiber/v2"
)

type ProductoResponse struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	Categoria string  `json:"categoria"`
	Precio    float64 `json:"precio"`
	Stock     int     `json:"stock"`
	Creado    string  `json:"fecha_creacion"`
}

type CrearProductoRequest struct {
	Nombre    string   `json:"nombre"`
	Categoria string   `json:"categoria"` // Opcional, default "General"
	Precio    *float64 `json:"precio"`
	Stock     *int     `json:"stock"` // Opcional, default 0
}

type ActualizarProductoRequest struct {
	Nombre    *string  `json:"nombre"`
	Categoria *string  `json:"categoria"`
	Precio    *float64 `json:"precio"`
	Stock     *int     `json:"stock"`
}

type AjustarStockRequest struct {
	Delta int `json:"delta"`
}

func productoToResponse(p models.Producto) ProductoResponse {
	return ProductoResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Categoria: p.Categoria,
		Precio:    p.Precio,
		Stock:     p.Stock,
		Creado:    p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Datos del usuario autenticado para el registro de auditoría
func usuarioActual(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals(auth.CtxTrabajadorIDKey).(uint)
	nombre, _ := c.Locals(auth.CtxNombreKey).(string)
	return id, nombre
}

// GET /api/productos (cualquier usuario autenticado)
func ListarProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productos []models.Producto
		if err := database.DB.Order("nombre asc").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		resp := make([]ProductoResponse, 0, len(productos))
		for _, p := range productos {
			resp = append(resp, productoToResponse(p))
		}
		return c.JSON(resp)
	}
}

// GET /api/productos/:id
func ObtenerProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Producto
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		return c.JSON(productoToResponse(p))
	}
}

// POST /api/productos (solo admin)
func CrearProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Categoria = strings.TrimSpace(body.Categoria)

		if body.Nombre == "" || body.Precio == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre y precio son requeridos")
		}
		if *body.Precio < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		p := models.Producto{
			Nombre:    body.Nombre,
			Categoria: body.Categoria,
			Precio:    *body.Precio,
		}
		if p.Categoria == "" {
			p.Categoria = "General"
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			p.Stock = *body.Stock
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: userID,
			Trabajador:   userName,
			Entidad:      "producto",
			EntidadID:    p.ID,
			Action:       models.AuditActionCreate,
			Descripcion:  fmt.Sprintf("Producto creado: %s ($%.2f)", p.Nombre, p.Precio),
			Despues:      p,
		})

		return c.Status(fiber.StatusCreated).JSON(productoToResponse(p))
	}
}

// PUT /api/productos/:id (solo admin)
func ActualizarProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Producto
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		antes := p

		var body ActualizarProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			p.Nombre = nombre
		}
		if body.Categoria != nil {
			categoria := strings.TrimSpace(*body.Categoria)
			if categoria == "" {
				categoria = "General"
			}
			p.Categoria = categoria
		}
		if body.Precio != nil {
			if *body.Precio < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			p.Precio = *body.Precio
		}
		if body.Stock != nil {
			if *body.Stock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
			}
			p.Stock = *body.Stock
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: userID,
			Trabajador:   userName,
			Entidad:      "producto",
			EntidadID:    p.ID,
			Action:       models.AuditActionUpdate,
			Descripcion:  fmt.Sprintf("Producto actualizado: %s", p.Nombre),
			Antes:        antes,
			Despues:      p,
		})

		return c.JSON(productoToResponse(p))
	}
}

// POST /api/productos/:id/ajustar-stock (solo admin)
// delta positivo suma unidades, negativo las resta. Nunca deja stock negativo.
func AjustarStockHandler(svc *ventas.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productoID uint
		if _, err := fmt.Sscan(c.Params("id"), &productoID); err != nil || productoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de producto inválido")
		}

		var body AjustarStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Delta inválido")
		}

		nuevoStock, err := svc.AjustarStock(productoID, body.Delta)
		if err != nil {
			return mapVentasError(err)
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: userID,
			Trabajador:   userName,
			Entidad:      "producto",
			EntidadID:    productoID,
			Action:       models.AuditActionUpdate,
			Descripcion:  fmt.Sprintf("Ajuste de stock: producto %d, delta %+d, stock %d", productoID, body.Delta, nuevoStock),
		})

		return c.JSON(fiber.Map{
			"message": "Stock actualizado",
			"stock":   nuevoStock,
		})
	}
}

// DELETE /api/productos/:id (solo admin)
func EliminarProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Producto
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}

		userID, userName := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: userID,
			Trabajador:   userName,
			Entidad:      "producto",
			EntidadID:    p.ID,
			Action:       models.AuditActionDelete,
			Descripcion:  fmt.Sprintf("Producto eliminado: %s", p.Nombre),
			Antes:        p,
		})

		return c.JSON(fiber.Map{"message": "Producto eliminado exitosamente"})
	}
}

func mapVentasError(err error) error {
	var insuf *ventas.StockInsuficienteError
	switch {
	case errors.As(err, &insuf):
		return fiber.NewError(fiber.StatusBadRequest, "Stock insuficiente para realizar el ajuste")
	case errors.Is(err, ventas.ErrProductoNoEncontrado):
		return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
	case errors.Is(err, ventas.ErrDatosInvalidos):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "No se pudo ajustar el stock")
}
