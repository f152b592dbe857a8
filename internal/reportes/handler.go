package reportes

import (
	"time"

	"github.com/mancil-la/OBLEAS/internal/auth"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VentasPorTrabajadorRow struct {
	ID           uint    `json:"id"`
	Nombre       string  `json:"nombre"`
	TotalVentas  int64   `json:"total_ventas"`
	TotalVendido float64 `json:"total_vendido"`
}

type TopProductoRow struct {
	ID              uint    `json:"id"`
	Nombre          string  `json:"nombre"`
	Categoria       string  `json:"categoria"`
	CantidadVendida int64   `json:"cantidad_vendida"`
	TotalVendido    float64 `json:"total_vendido"`
}

type ResumenResponse struct {
	TotalProductos      int64   `json:"total_productos"`
	TrabajadoresActivos int64   `json:"trabajadores_activos"`
	VentasHoy           int64   `json:"ventas_hoy"`
	TotalHoy            float64 `json:"total_hoy"`
	VentasTotales       int64   `json:"ventas_totales"`
	TotalGeneral        float64 `json:"total_general"`
}

// Lee fecha_inicio / fecha_fin del query string y devuelve el rango
// [desde, hasta) ya normalizado. Un extremo vacío queda en cero.
func rangoDeFechas(c *fiber.Ctx) (time.Time, time.Time, error) {
	var desde, hasta time.Time

	if s := c.Query("fecha_inicio"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return desde, hasta, fiber.NewError(fiber.StatusBadRequest, "fecha_inicio debe tener formato 'YYYY-MM-DD'")
		}
		desde = d
	}
	if s := c.Query("fecha_fin"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return desde, hasta, fiber.NewError(fiber.StatusBadRequest, "fecha_fin debe tener formato 'YYYY-MM-DD'")
		}
		hasta = d.AddDate(0, 0, 1)
	}
	return desde, hasta, nil
}

// GET /api/reportes/ventas-por-trabajador (solo admin)
func VentasPorTrabajadorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		desde, hasta, err := rangoDeFechas(c)
		if err != nil {
			return err
		}

		join := "LEFT JOIN ventas v ON v.trabajador_id = trabajadores.id"
		args := []interface{}{}
		if !desde.IsZero() {
			join += " AND v.fecha >= ?"
			args = append(args, desde)
		}
		if !hasta.IsZero() {
			join += " AND v.fecha < ?"
			args = append(args, hasta)
		}

		var rows []VentasPorTrabajadorRow
		err = database.DB.Model(&models.Trabajador{}).
			Select("trabajadores.id, trabajadores.nombre, COUNT(v.id) as total_ventas, COALESCE(SUM(v.total), 0) as total_vendido").
			Joins(join, args...).
			Group("trabajadores.id, trabajadores.nombre").
			Order("total_vendido DESC").
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		return c.JSON(rows)
	}
}

// GET /api/reportes/productos-mas-vendidos
func ProductosMasVendidosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		desde, hasta, err := rangoDeFechas(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Producto{}).
			Select("productos.id, productos.nombre, productos.categoria, SUM(dv.cantidad) as cantidad_vendida, SUM(dv.subtotal) as total_vendido").
			Joins("JOIN detalle_ventas dv ON dv.producto_id = productos.id").
			Joins("JOIN ventas v ON dv.venta_id = v.id")

		if !desde.IsZero() {
			dbq = dbq.Where("v.fecha >= ?", desde)
		}
		if !hasta.IsZero() {
			dbq = dbq.Where("v.fecha < ?", hasta)
		}

		var rows []TopProductoRow
		err = dbq.Group("productos.id, productos.nombre, productos.categoria").
			Order("cantidad_vendida DESC").
			Limit(10).
			Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		return c.JSON(rows)
	}
}

// GET /api/reportes/resumen
// El admin ve el resumen global; un trabajador solo sus propias ventas.
func ResumenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, _ := c.Locals(auth.CtxRolKey).(models.Rol)
		userID, _ := c.Locals(auth.CtxTrabajadorIDKey).(uint)

		var resumen ResumenResponse

		if err := database.DB.Model(&models.Producto{}).Count(&resumen.TotalProductos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el resumen")
		}
		if err := database.DB.Model(&models.Trabajador{}).Where("activo = ?", true).Count(&resumen.TrabajadoresActivos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el resumen")
		}

		// Query nueva por consulta: reutilizar el builder acumularía condiciones
		ventasBase := func() *gorm.DB {
			q := database.DB.Model(&models.Venta{})
			if rol != models.RolAdmin {
				q = q.Where("trabajador_id = ?", userID)
			}
			return q
		}

		hoyInicio := time.Now()
		hoyInicio = time.Date(hoyInicio.Year(), hoyInicio.Month(), hoyInicio.Day(), 0, 0, 0, 0, hoyInicio.Location())

		type agregado struct {
			Total int64
			Suma  float64
		}

		var deHoy agregado
		if err := ventasBase().
			Where("fecha >= ? AND fecha < ?", hoyInicio, hoyInicio.AddDate(0, 0, 1)).
			Select("COUNT(*) as total, COALESCE(SUM(total), 0) as suma").
			Scan(&deHoy).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el resumen")
		}

		var totales agregado
		if err := ventasBase().
			Select("COUNT(*) as total, COALESCE(SUM(total), 0) as suma").
			Scan(&totales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el resumen")
		}

		resumen.VentasHoy = deHoy.Total
		resumen.TotalHoy = deHoy.Suma
		resumen.VentasTotales = totales.Total
		resumen.TotalGeneral = totales.Suma

		return c.JSON(resumen)
	}
}
