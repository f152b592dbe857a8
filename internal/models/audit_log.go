package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog registra las mutaciones administrativas (productos, trabajadores,
// ajustes de stock). Solo lectura después de creado.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"fecha"`

	TrabajadorID uint   `json:"trabajador_id"`
	Trabajador   string `gorm:"size:100" json:"trabajador"` // nombre denormalizado

	// Entidad afectada (ej: "producto", "trabajador")
	Entidad   string `gorm:"size:50;index" json:"entidad"`
	EntidadID uint   `gorm:"index" json:"entidad_id"`

	Action      AuditAction `gorm:"size:20" json:"accion"`
	Descripcion string      `gorm:"size:255" json:"descripcion"`

	// Estado anterior y posterior (JSON)
	AntesData   string `gorm:"type:jsonb" json:"antes_data"`
	DespuesData string `gorm:"type:jsonb" json:"despues_data"`
}
