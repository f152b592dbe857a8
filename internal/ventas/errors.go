package ventas

import (
	"errors"
	"fmt"
)

var (
	// ErrDatosInvalidos cubre entradas mal formadas; siempre se devuelve
	// antes de tocar la base de datos.
	ErrDatosInvalidos = errors.New("datos inválidos")

	ErrProductoNoEncontrado   = errors.New("producto no encontrado")
	ErrTrabajadorNoEncontrado = errors.New("trabajador no existe o está inactivo")
)

// StockInsuficienteError indica qué producto no alcanzó y cuánto había
// disponible al momento del commit.
type StockInsuficienteError struct {
	ProductoID uint
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %d: disponible %d, solicitado %d",
		e.ProductoID, e.Disponible, e.Solicitado)
}
