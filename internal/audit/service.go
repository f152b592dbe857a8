package audit

import (
	"encoding/json"
	"fmt"

	"github.com/mancil-la/OBLEAS/internal/database"
	"github.com/mancil-la/OBLEAS/internal/models"
)

type LogOptions struct {
	TrabajadorID uint
	Trabajador   string
	Entidad      string
	EntidadID    uint
	Action       models.AuditAction
	Descripcion  string
	Antes        any
	Despues      any
}

func WriteLog(opts LogOptions) error {
	// Para jsonb de PostgreSQL hay que guardar "null", no cadena vacía
	antesStr := "null"
	despuesStr := "null"

	if opts.Antes != nil {
		if b, err := json.Marshal(opts.Antes); err == nil {
			antesStr = string(b)
		}
	}
	if opts.Despues != nil {
		if b, err := json.Marshal(opts.Despues); err == nil {
			despuesStr = string(b)
		}
	}

	entry := models.AuditLog{
		TrabajadorID: opts.TrabajadorID,
		Trabajador:   opts.Trabajador,
		Entidad:      opts.Entidad,
		EntidadID:    opts.EntidadID,
		Action:       opts.Action,
		Descripcion:  opts.Descripcion,
		AntesData:    antesStr,
		DespuesData:  despuesStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el registro de auditoría: %w", err)
	}

	return nil
}
