package ventas

import (
	"fmt"
	"time"

	"github.com/mancil-la/OBLEAS/internal/models"
)

// Service registra ventas y ajustes de stock. El Store se inyecta desde el
// punto de entrada del proceso; el servicio no conoce la conexión global.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type ResultadoVenta struct {
	ID    uint
	Total float64
}

// CrearVenta registra una venta completa: cabecera, un detalle por línea y
// el descuento de stock de cada producto, todo dentro de una misma
// transacción. Cualquier fallo revierte todo; nunca queda una venta a medias.
func (s *Service) CrearVenta(trabajadorID uint, lineas []Linea) (*ResultadoVenta, error) {
	if trabajadorID == 0 {
		return nil, fmt.Errorf("%w: trabajador requerido", ErrDatosInvalidos)
	}
	if len(lineas) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un producto", ErrDatosInvalidos)
	}
	for _, l := range lineas {
		if l.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero (producto %d)", ErrDatosInvalidos, l.ProductoID)
		}
		if l.Precio < 0 {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo (producto %d)", ErrDatosInvalidos, l.ProductoID)
		}
	}

	activo, err := s.store.TrabajadorActivo(trabajadorID)
	if err != nil {
		return nil, err
	}
	if !activo {
		return nil, ErrTrabajadorNoEncontrado
	}

	// El total sale de los precios congelados de la petición, no de los
	// precios actuales del catálogo.
	total := 0.0
	for _, l := range lineas {
		total += l.Precio * float64(l.Cantidad)
	}

	var venta models.Venta
	err = s.store.EnTransaccion(func(tx Store) error {
		venta = models.Venta{
			TrabajadorID: trabajadorID,
			Total:        total,
			Fecha:        time.Now(),
		}
		if err := tx.InsertarVenta(&venta); err != nil {
			return err
		}

		for _, l := range lineas {
			if err := tx.DescontarStock(l.ProductoID, l.Cantidad); err != nil {
				return err
			}
			detalle := models.DetalleVenta{
				VentaID:        venta.ID,
				ProductoID:     l.ProductoID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.Precio,
				Subtotal:       l.Precio * float64(l.Cantidad),
			}
			if err := tx.InsertarDetalle(&detalle); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ResultadoVenta{ID: venta.ID, Total: total}, nil
}

// AjustarStock suma o resta unidades de un producto (entradas de mercancía,
// mermas). El ajuste y la lectura del stock resultante van en una sola
// transacción para que dos ajustes concurrentes no se pisen.
func (s *Service) AjustarStock(productoID uint, delta int) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf("%w: delta inválido", ErrDatosInvalidos)
	}

	nuevo := 0
	err := s.store.EnTransaccion(func(tx Store) error {
		n, err := tx.AjustarStock(productoID, delta)
		if err != nil {
			return err
		}
		nuevo = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return nuevo, nil
}
