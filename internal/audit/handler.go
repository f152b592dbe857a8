package audit

import (
	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entidad=&limit=
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entidad := c.Query("entidad"); entidad != "" {
			dbq = dbq.Where("entidad = ?", entidad)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros de auditoría")
		}

		return c.JSON(logs)
	}
}
