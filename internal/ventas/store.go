package ventas

import "github.com/mancil-la/OBLEAS/internal/models"

// Linea es una línea de venta ya parseada: producto, cantidad y el precio
// unitario congelado que envió el cliente.
type Linea struct {
	ProductoID uint
	Cantidad   int
	Precio     float64
}

// Store agrupa las operaciones de persistencia que necesita el registro de
// ventas. EnTransaccion entrega un Store ligado a una transacción: todo lo
// que se haga dentro del callback se confirma o se revierte como una unidad.
type Store interface {
	EnTransaccion(fn func(tx Store) error) error

	// Trabajadores
	TrabajadorActivo(id uint) (bool, error)

	// Productos
	ObtenerStock(productoID uint) (int, error)
	// DescontarStock resta cantidad solo si hay stock suficiente, en una
	// sola operación condicional. Devuelve StockInsuficienteError o
	// ErrProductoNoEncontrado según el caso.
	DescontarStock(productoID uint, cantidad int) error
	// AjustarStock suma delta (puede ser negativo) sin dejar el stock por
	// debajo de cero y devuelve el stock resultante.
	AjustarStock(productoID uint, delta int) (int, error)

	// Ventas
	InsertarVenta(v *models.Venta) error
	InsertarDetalle(d *models.DetalleVenta) error
}
