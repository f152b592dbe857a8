package ventas

import (
	"errors"
	"fmt"
	"time"

	"github.com/mancil-la/OBLEAS/internal/auth"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LineaVentaRequest struct {
	ID       uint    `json:"id"`
	Precio   float64 `json:"precio"`
	Cantidad int     `json:"cantidad"`
}

type CrearVentaRequest struct {
	TrabajadorID uint                `json:"trabajador_id"`
	Productos    []LineaVentaRequest `json:"productos"`
}

type VentaResponse struct {
	ID               uint    `json:"id"`
	TrabajadorID     uint    `json:"trabajador_id"`
	TrabajadorNombre string  `json:"trabajador_nombre"`
	Total            float64 `json:"total"`
	Fecha            string  `json:"fecha"`
}

type DetalleVentaResponse struct {
	ID             uint    `json:"id"`
	ProductoID     uint    `json:"producto_id"`
	ProductoNombre string  `json:"producto_nombre"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
}

type VentaConDetallesResponse struct {
	VentaResponse
	Detalles []DetalleVentaResponse `json:"detalles"`
}

// Traduce los errores del servicio a códigos HTTP: validación y stock
// insuficiente → 400, producto inexistente → 404, el resto → 500.
func mapServiceError(err error) error {
	var insuf *StockInsuficienteError
	switch {
	case errors.As(err, &insuf):
		return fiber.NewError(fiber.StatusBadRequest, insuf.Error())
	case errors.Is(err, ErrDatosInvalidos):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTrabajadorNoEncontrado):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProductoNoEncontrado):
		return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "No se pudo completar la operación")
}

// POST /api/ventas
func CrearVentaHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		rol, _ := c.Locals(auth.CtxRolKey).(models.Rol)
		userID, _ := c.Locals(auth.CtxTrabajadorIDKey).(uint)

		// Un trabajador solo puede registrar ventas a su propio nombre;
		// el admin puede asignarlas a cualquiera.
		trabajadorID := body.TrabajadorID
		if rol != models.RolAdmin || trabajadorID == 0 {
			trabajadorID = userID
		}

		if trabajadorID == 0 || len(body.Productos) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Trabajador y productos son requeridos")
		}

		lineas := make([]Linea, 0, len(body.Productos))
		for _, p := range body.Productos {
			lineas = append(lineas, Linea{
				ProductoID: p.ID,
				Cantidad:   p.Cantidad,
				Precio:     p.Precio,
			})
		}

		resultado, err := svc.CrearVenta(trabajadorID, lineas)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      resultado.ID,
			"total":   resultado.Total,
			"message": "Venta registrada exitosamente",
		})
	}
}

// GET /api/ventas?trabajador_id=&fecha_inicio=&fecha_fin=
func ListarVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, _ := c.Locals(auth.CtxRolKey).(models.Rol)
		userID, _ := c.Locals(auth.CtxTrabajadorIDKey).(uint)

		dbq := database.DB.Model(&models.Venta{}).Preload("Trabajador")

		// Un trabajador solo ve sus propias ventas
		if rol != models.RolAdmin {
			dbq = dbq.Where("trabajador_id = ?", userID)
		} else if tidStr := c.Query("trabajador_id"); tidStr != "" {
			var tid uint
			if _, err := fmt.Sscan(tidStr, &tid); err != nil || tid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "trabajador_id inválido")
			}
			dbq = dbq.Where("trabajador_id = ?", tid)
		}

		if desde := c.Query("fecha_inicio"); desde != "" {
			d, err := time.Parse("2006-01-02", desde)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_inicio debe tener formato 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("fecha >= ?", d)
		}
		if hasta := c.Query("fecha_fin"); hasta != "" {
			d, err := time.Parse("2006-01-02", hasta)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_fin debe tener formato 'YYYY-MM-DD'")
			}
			dbq = dbq.Where("fecha < ?", d.AddDate(0, 0, 1))
		}

		var ventas []models.Venta
		if err := dbq.Order("fecha DESC").Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas")
		}

		resp := make([]VentaResponse, 0, len(ventas))
		for _, v := range ventas {
			resp = append(resp, VentaResponse{
				ID:               v.ID,
				TrabajadorID:     v.TrabajadorID,
				TrabajadorNombre: v.Trabajador.Nombre,
				Total:            v.Total,
				Fecha:            v.Fecha.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/ventas/:id
func ObtenerVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var venta models.Venta
		if err := database.DB.
			Preload("Trabajador").
			Preload("Detalles.Producto").
			First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		detalles := make([]DetalleVentaResponse, 0, len(venta.Detalles))
		for _, d := range venta.Detalles {
			detalles = append(detalles, DetalleVentaResponse{
				ID:             d.ID,
				ProductoID:     d.ProductoID,
				ProductoNombre: d.Producto.Nombre,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
				Subtotal:       d.Subtotal,
			})
		}

		return c.JSON(VentaConDetallesResponse{
			VentaResponse: VentaResponse{
				ID:               venta.ID,
				TrabajadorID:     venta.TrabajadorID,
				TrabajadorNombre: venta.Trabajador.Nombre,
				Total:            venta.Total,
				Fecha:            venta.Fecha.Format("2006-01-02 15:04:05"),
			},
			Detalles: detalles,
		})
	}
}
