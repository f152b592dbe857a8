package admin

import (
	"fmt"
	"strings"

	"github.com/mancil-la/OBLEAS/internal/audit"
	"github.com/mancil-la/OBLEAS/internal/auth"
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type TrabajadorResponse struct {
	ID       uint   `json:"id"`
	Nombre   string `json:"nombre"`
	Usuario  string `json:"usuario"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono"`
	Activo   bool   `json:"activo"`
	Creado   string `json:"fecha_creacion"`
}

type CrearTrabajadorRequest struct {
	Nombre   string `json:"nombre"`
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
	Rol      string `json:"rol"`      // Opcional, default "trabajador"
	Telefono string `json:"telefono"` // Opcional
	Activo   *bool  `json:"activo"`   // Opcional, default true
}

type ActualizarTrabajadorRequest struct {
	Nombre   *string `json:"nombre"`
	Usuario  *string `json:"usuario"`
	Password *string `json:"password"`
	Rol      *string `json:"rol"`
	Telefono *string `json:"telefono"`
	Activo   *bool   `json:"activo"`
}

func trabajadorToResponse(t models.Trabajador) TrabajadorResponse {
	return TrabajadorResponse{
		ID:       t.ID,
		Nombre:   t.Nombre,
		Usuario:  t.Usuario,
		Rol:      string(t.Rol),
		Telefono: t.Telefono,
		Activo:   t.Activo,
		Creado:   t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func usuarioActual(c *fiber.Ctx) (uint, string) {
	id, _ := c.Locals(auth.CtxTrabajadorIDKey).(uint)
	nombre, _ := c.Locals(auth.CtxNombreKey).(string)
	return id, nombre
}

// GET /api/trabajadores (solo admin)
func ListarTrabajadoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var trabajadores []models.Trabajador
		if err := database.DB.Order("nombre asc").Find(&trabajadores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los trabajadores")
		}

		resp := make([]TrabajadorResponse, 0, len(trabajadores))
		for _, t := range trabajadores {
			resp = append(resp, trabajadorToResponse(t))
		}
		return c.JSON(resp)
	}
}

// GET /api/trabajadores/:id
func ObtenerTrabajadorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var t models.Trabajador
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Trabajador no encontrado")
		}
		return c.JSON(trabajadorToResponse(t))
	}
}

// POST /api/trabajadores (solo admin)
func CrearTrabajadorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearTrabajadorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.Usuario = strings.TrimSpace(strings.ToLower(body.Usuario))

		if body.Nombre == "" || body.Usuario == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, usuario y contraseña son requeridos")
		}

		rol := models.RolTrabajador
		if body.Rol != "" {
			if body.Rol != string(models.RolAdmin) && body.Rol != string(models.RolTrabajador) {
				return fiber.NewError(fiber.StatusBadRequest, "Rol inválido")
			}
			rol = models.Rol(body.Rol)
		}

		var existente models.Trabajador
		if err := database.DB.Where("usuario = ?", body.Usuario).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El usuario ya existe")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
		}

		t := models.Trabajador{
			Nombre:       body.Nombre,
			Usuario:      body.Usuario,
			PasswordHash: string(hash),
			Rol:          rol,
			Telefono:     body.Telefono,
			Activo:       true,
		}
		if body.Activo != nil {
			t.Activo = *body.Activo
		}

		if err := database.DB.Create(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el trabajador")
		}

		adminID, adminNombre := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: adminID,
			Trabajador:   adminNombre,
			Entidad:      "trabajador",
			EntidadID:    t.ID,
			Action:       models.AuditActionCreate,
			Descripcion:  fmt.Sprintf("Trabajador creado: %s (%s)", t.Nombre, t.Usuario),
		})

		return c.Status(fiber.StatusCreated).JSON(trabajadorToResponse(t))
	}
}

// PUT /api/trabajadores/:id (solo admin)
func ActualizarTrabajadorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var t models.Trabajador
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Trabajador no encontrado")
		}

		var body ActualizarTrabajadorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			t.Nombre = nombre
		}
		if body.Usuario != nil {
			usuario := strings.TrimSpace(strings.ToLower(*body.Usuario))
			if usuario == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El usuario no puede quedar vacío")
			}
			var existente models.Trabajador
			if err := database.DB.Where("usuario = ? AND id <> ?", usuario, t.ID).First(&existente).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "El usuario ya existe")
			}
			t.Usuario = usuario
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
			}
			t.PasswordHash = string(hash)
		}
		if body.Rol != nil {
			if *body.Rol != string(models.RolAdmin) && *body.Rol != string(models.RolTrabajador) {
				return fiber.NewError(fiber.StatusBadRequest, "Rol inválido")
			}
			t.Rol = models.Rol(*body.Rol)
		}
		if body.Telefono != nil {
			t.Telefono = *body.Telefono
		}
		if body.Activo != nil {
			t.Activo = *body.Activo
		}

		if err := database.DB.Save(&t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el trabajador")
		}

		adminID, adminNombre := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: adminID,
			Trabajador:   adminNombre,
			Entidad:      "trabajador",
			EntidadID:    t.ID,
			Action:       models.AuditActionUpdate,
			Descripcion:  fmt.Sprintf("Trabajador actualizado: %s", t.Nombre),
		})

		return c.JSON(trabajadorToResponse(t))
	}
}

// DELETE /api/trabajadores/:id (solo admin)
// No borra la fila: desactiva la cuenta para conservar las ventas históricas.
func DesactivarTrabajadorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var t models.Trabajador
		if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Trabajador no encontrado")
		}

		if err := database.DB.Model(&t).Update("activo", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo desactivar el trabajador")
		}

		adminID, adminNombre := usuarioActual(c)
		_ = audit.WriteLog(audit.LogOptions{
			TrabajadorID: adminID,
			Trabajador:   adminNombre,
			Entidad:      "trabajador",
			EntidadID:    t.ID,
			Action:       models.AuditActionDelete,
			Descripcion:  fmt.Sprintf("Trabajador desactivado: %s", t.Nombre),
		})

		return c.JSON(fiber.Map{"message": "Trabajador desactivado exitosamente"})
	}
}
