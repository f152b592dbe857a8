package models

import "time"

type Producto struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"size:100;not null"`
	Categoria string  `gorm:"size:50;not null;default:'General'"`
	Precio    float64 `gorm:"not null"`
	Stock     int     `gorm:"not null;default:0"` // nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Producto) TableName() string { return "productos" }
