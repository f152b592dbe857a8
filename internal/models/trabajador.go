package models

import "time"

type Rol string

const (
	RolAdmin      Rol = "admin"
	RolTrabajador Rol = "trabajador"
)

// Trabajador nunca se borra de la tabla: se desactiva con Activo=false
// para que las ventas históricas conserven su referencia.
type Trabajador struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"size:100;not null"`
	Usuario      string `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Rol          Rol    `gorm:"size:20;not null;default:'trabajador'"`
	Telefono     string `gorm:"size:20"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// El pluralizador de GORM produciría "trabajadors"
func (Trabajador) TableName() string { return "trabajadores" }
