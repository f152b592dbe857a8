package models

import "time"

// Venta se crea una sola vez por cobro y nunca se actualiza ni se borra.
// El invariante es Total == suma de los subtotales de sus detalles.
type Venta struct {
	ID           uint `gorm:"primaryKey"`
	TrabajadorID uint `gorm:"index;not null"`
	Trabajador   Trabajador
	Total        float64        `gorm:"not null"`
	Fecha        time.Time      `gorm:"index;not null"`
	Detalles     []DetalleVenta `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta congela el precio unitario al momento de la venta:
// los reportes históricos no cambian aunque el producto cambie de precio.
type DetalleVenta struct {
	ID             uint `gorm:"primaryKey"`
	VentaID        uint `gorm:"index;not null"`
	ProductoID     uint `gorm:"index;not null"`
	Producto       Producto
	Cantidad       int     `gorm:"not null"`
	PrecioUnitario float64 `gorm:"not null"`
	Subtotal       float64 `gorm:"not null"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }
