package ventas

import (
	"errors"

	"github.com/mancil-la/OBLEAS/internal/models"

	"gorm.io/gorm"
)

// GormStore implementa Store sobre Postgres. Los descuentos de stock son
// UPDATEs condicionales de una sola fila, de modo que dos peticiones
// concurrentes sobre el mismo producto nunca pueden sobrevender.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) EnTransaccion(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) TrabajadorActivo(id uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Trabajador{}).
		Where("id = ? AND activo = ?", id, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ObtenerStock(productoID uint) (int, error) {
	var p models.Producto
	if err := s.db.Select("stock").First(&p, "id = ?", productoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductoNoEncontrado
		}
		return 0, err
	}
	return p.Stock, nil
}

func (s *GormStore) DescontarStock(productoID uint, cantidad int) error {
	res := s.db.Model(&models.Producto{}).
		Where("id = ? AND stock >= ?", productoID, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Cero filas: o el producto no existe o no alcanzó el stock
		disponible, err := s.ObtenerStock(productoID)
		if err != nil {
			return err
		}
		return &StockInsuficienteError{
			ProductoID: productoID,
			Disponible: disponible,
			Solicitado: cantidad,
		}
	}
	return nil
}

func (s *GormStore) AjustarStock(productoID uint, delta int) (int, error) {
	res := s.db.Model(&models.Producto{}).
		Where("id = ? AND stock + ? >= 0", productoID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		disponible, err := s.ObtenerStock(productoID)
		if err != nil {
			return 0, err
		}
		return 0, &StockInsuficienteError{
			ProductoID: productoID,
			Disponible: disponible,
			Solicitado: -delta,
		}
	}
	return s.ObtenerStock(productoID)
}

func (s *GormStore) InsertarVenta(v *models.Venta) error {
	return s.db.Create(v).Error
}

func (s *GormStore) InsertarDetalle(d *models.DetalleVenta) error {
	return s.db.Create(d).Error
}
