package ventas

import (
	"errors"
	"sync"
	"testing"

	"github.com/mancil-la/OBLEAS/internal/models"
)

// ---------------------------------------------------------------------------
// Store en memoria para las pruebas
// ---------------------------------------------------------------------------

type memStore struct {
	mu sync.Mutex

	stocks       map[uint]int
	trabajadores map[uint]bool // id -> activo
	ventas       []models.Venta
	detalles     []models.DetalleVenta
	nextVentaID  uint

	insertarVentaErr   error // si está definido, InsertarVenta falla
	insertarDetalleErr error
}

func newMemStore() *memStore {
	return &memStore{
		stocks:       make(map[uint]int),
		trabajadores: make(map[uint]bool),
	}
}

// EnTransaccion mantiene el lock durante toda la transacción (equivalente a
// serializable) y restaura el estado completo si el callback falla.
func (s *memStore) EnTransaccion(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapStocks := make(map[uint]int, len(s.stocks))
	for k, v := range s.stocks {
		snapStocks[k] = v
	}
	snapVentas := append([]models.Venta(nil), s.ventas...)
	snapDetalles := append([]models.DetalleVenta(nil), s.detalles...)
	snapNextID := s.nextVentaID

	if err := fn(s); err != nil {
		s.stocks = snapStocks
		s.ventas = snapVentas
		s.detalles = snapDetalles
		s.nextVentaID = snapNextID
		return err
	}
	return nil
}

func (s *memStore) TrabajadorActivo(id uint) (bool, error) {
	return s.trabajadores[id], nil
}

func (s *memStore) ObtenerStock(productoID uint) (int, error) {
	stock, ok := s.stocks[productoID]
	if !ok {
		return 0, ErrProductoNoEncontrado
	}
	return stock, nil
}

func (s *memStore) DescontarStock(productoID uint, cantidad int) error {
	stock, ok := s.stocks[productoID]
	if !ok {
		return ErrProductoNoEncontrado
	}
	if stock < cantidad {
		return &StockInsuficienteError{ProductoID: productoID, Disponible: stock, Solicitado: cantidad}
	}
	s.stocks[productoID] = stock - cantidad
	return nil
}

func (s *memStore) AjustarStock(productoID uint, delta int) (int, error) {
	stock, ok := s.stocks[productoID]
	if !ok {
		return 0, ErrProductoNoEncontrado
	}
	nuevo := stock + delta
	if nuevo < 0 {
		return 0, &StockInsuficienteError{ProductoID: productoID, Disponible: stock, Solicitado: -delta}
	}
	s.stocks[productoID] = nuevo
	return nuevo, nil
}

func (s *memStore) InsertarVenta(v *models.Venta) error {
	if s.insertarVentaErr != nil {
		return s.insertarVentaErr
	}
	s.nextVentaID++
	v.ID = s.nextVentaID
	s.ventas = append(s.ventas, *v)
	return nil
}

func (s *memStore) InsertarDetalle(d *models.DetalleVenta) error {
	if s.insertarDetalleErr != nil {
		return s.insertarDetalleErr
	}
	s.detalles = append(s.detalles, *d)
	return nil
}

// ---------------------------------------------------------------------------
// CrearVenta
// ---------------------------------------------------------------------------

func TestCrearVentaDescuentaStockYCalculaTotal(t *testing.T) {
	store := newMemStore()
	store.trabajadores[2] = true
	store.stocks[1] = 10

	svc := NewService(store)

	resultado, err := svc.CrearVenta(2, []Linea{{ProductoID: 1, Cantidad: 3, Precio: 20.00}})
	if err != nil {
		t.Fatalf("CrearVenta devolvió error: %v", err)
	}

	if resultado.Total != 60.00 {
		t.Errorf("total = %.2f, se esperaba 60.00", resultado.Total)
	}
	if store.stocks[1] != 7 {
		t.Errorf("stock = %d, se esperaba 7", store.stocks[1])
	}
	if len(store.ventas) != 1 {
		t.Fatalf("ventas registradas = %d, se esperaba 1", len(store.ventas))
	}
	if len(store.detalles) != 1 {
		t.Fatalf("detalles registrados = %d, se esperaba 1", len(store.detalles))
	}

	d := store.detalles[0]
	if d.VentaID != resultado.ID || d.ProductoID != 1 || d.Cantidad != 3 {
		t.Errorf("detalle inesperado: %+v", d)
	}
	if d.PrecioUnitario != 20.00 || d.Subtotal != 60.00 {
		t.Errorf("detalle con precio %.2f y subtotal %.2f, se esperaba 20.00 y 60.00", d.PrecioUnitario, d.Subtotal)
	}
}

func TestCrearVentaMultilineaTotalEsSumaDeSubtotales(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.stocks[1] = 10
	store.stocks[2] = 10
	store.stocks[3] = 10

	svc := NewService(store)

	lineas := []Linea{
		{ProductoID: 1, Cantidad: 2, Precio: 30.00},
		{ProductoID: 2, Cantidad: 1, Precio: 20.00},
		{ProductoID: 3, Cantidad: 4, Precio: 20.00},
	}
	resultado, err := svc.CrearVenta(1, lineas)
	if err != nil {
		t.Fatalf("CrearVenta devolvió error: %v", err)
	}

	suma := 0.0
	for _, d := range store.detalles {
		suma += d.Subtotal
	}
	if resultado.Total != suma {
		t.Errorf("total %.2f != suma de subtotales %.2f", resultado.Total, suma)
	}
	if resultado.Total != 160.00 {
		t.Errorf("total = %.2f, se esperaba 160.00", resultado.Total)
	}

	if store.stocks[1] != 8 || store.stocks[2] != 9 || store.stocks[3] != 6 {
		t.Errorf("stocks = %d/%d/%d, se esperaba 8/9/6", store.stocks[1], store.stocks[2], store.stocks[3])
	}
}

func TestCrearVentaDosVecesNoDeduplica(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.stocks[1] = 10

	svc := NewService(store)
	lineas := []Linea{{ProductoID: 1, Cantidad: 2, Precio: 20.00}}

	r1, err := svc.CrearVenta(1, lineas)
	if err != nil {
		t.Fatalf("primera venta falló: %v", err)
	}
	r2, err := svc.CrearVenta(1, lineas)
	if err != nil {
		t.Fatalf("segunda venta falló: %v", err)
	}

	if r1.ID == r2.ID {
		t.Errorf("las dos ventas comparten el ID %d", r1.ID)
	}
	if len(store.ventas) != 2 {
		t.Errorf("ventas registradas = %d, se esperaba 2", len(store.ventas))
	}
	if store.stocks[1] != 6 {
		t.Errorf("stock = %d, se esperaba 6 (dos descuentos independientes)", store.stocks[1])
	}
}

func TestCrearVentaStockInsuficienteNoDejaRastro(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.stocks[1] = 5

	svc := NewService(store)

	_, err := svc.CrearVenta(1, []Linea{{ProductoID: 1, Cantidad: 6, Precio: 20.00}})

	var insuf *StockInsuficienteError
	if !errors.As(err, &insuf) {
		t.Fatalf("se esperaba StockInsuficienteError, se obtuvo %v", err)
	}
	if insuf.ProductoID != 1 || insuf.Disponible != 5 || insuf.Solicitado != 6 {
		t.Errorf("detalle del error inesperado: %+v", insuf)
	}

	if store.stocks[1] != 5 {
		t.Errorf("stock = %d, debía quedar en 5", store.stocks[1])
	}
	if len(store.ventas) != 0 || len(store.detalles) != 0 {
		t.Errorf("quedaron %d ventas y %d detalles, debía quedar cero de ambos", len(store.ventas), len(store.detalles))
	}
}

func TestCrearVentaProductoInexistenteRevierteTodo(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.stocks[1] = 10
	// el producto 99 no existe

	svc := NewService(store)

	lineas := []Linea{
		{ProductoID: 1, Cantidad: 2, Precio: 20.00},
		{ProductoID: 99, Cantidad: 1, Precio: 20.00},
	}
	_, err := svc.CrearVenta(1, lineas)
	if !errors.Is(err, ErrProductoNoEncontrado) {
		t.Fatalf("se esperaba ErrProductoNoEncontrado, se obtuvo %v", err)
	}

	// La primera línea ya había descontado stock: debe revertirse
	if store.stocks[1] != 10 {
		t.Errorf("stock = %d, debía quedar en 10", store.stocks[1])
	}
	if len(store.ventas) != 0 || len(store.detalles) != 0 {
		t.Errorf("quedaron %d ventas y %d detalles tras el rollback", len(store.ventas), len(store.detalles))
	}
}

func TestCrearVentaFalloDeStorageRevierteTodo(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.stocks[1] = 10
	store.insertarDetalleErr = errors.New("conexión perdida")

	svc := NewService(store)

	_, err := svc.CrearVenta(1, []Linea{{ProductoID: 1, Cantidad: 2, Precio: 20.00}})
	if err == nil {
		t.Fatal("se esperaba un error de storage")
	}

	if store.stocks[1] != 10 {
		t.Errorf("stock = %d, debía quedar en 10", store.stocks[1])
	}
	if len(store.ventas) != 0 {
		t.Errorf("quedó una cabecera de venta sin detalles")
	}
}

func TestCrearVentaValidaciones(t *testing.T) {
	store := newMemStore()
	store.trabajadores[1] = true
	store.trabajadores[5] = false // inactivo
	store.stocks[1] = 10

	svc := NewService(store)

	casos := []struct {
		nombre       string
		trabajadorID uint
		lineas       []Linea
		esperado     error
	}{
		{"sin trabajador", 0, []Linea{{ProductoID: 1, Cantidad: 1, Precio: 20}}, ErrDatosInvalidos},
		{"sin lineas", 1, nil, ErrDatosInvalidos},
		{"cantidad cero", 1, []Linea{{ProductoID: 1, Cantidad: 0, Precio: 20}}, ErrDatosInvalidos},
		{"cantidad negativa", 1, []Linea{{ProductoID: 1, Cantidad: -2, Precio: 20}}, ErrDatosInvalidos},
		{"precio negativo", 1, []Linea{{ProductoID: 1, Cantidad: 1, Precio: -1}}, ErrDatosInvalidos},
		{"trabajador inexistente", 9, []Linea{{ProductoID: 1, Cantidad: 1, Precio: 20}}, ErrTrabajadorNoEncontrado},
		{"trabajador inactivo", 5, []Linea{{ProductoID: 1, Cantidad: 1, Precio: 20}}, ErrTrabajadorNoEncontrado},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			_, err := svc.CrearVenta(caso.trabajadorID, caso.lineas)
			if !errors.Is(err, caso.esperado) {
				t.Errorf("error = %v, se esperaba %v", err, caso.esperado)
			}
		})
	}

	// Ninguna validación fallida debe tocar el estado
	if store.stocks[1] != 10 || len(store.ventas) != 0 {
		t.Errorf("una validación fallida modificó el estado del store")
	}
}

// ---------------------------------------------------------------------------
// AjustarStock
// ---------------------------------------------------------------------------

func TestAjustarStock(t *testing.T) {
	store := newMemStore()
	store.stocks[1] = 10

	svc := NewService(store)

	nuevo, err := svc.AjustarStock(1, 5)
	if err != nil || nuevo != 15 {
		t.Errorf("AjustarStock(+5) = (%d, %v), se esperaba (15, nil)", nuevo, err)
	}

	nuevo, err = svc.AjustarStock(1, -12)
	if err != nil || nuevo != 3 {
		t.Errorf("AjustarStock(-12) = (%d, %v), se esperaba (3, nil)", nuevo, err)
	}

	_, err = svc.AjustarStock(1, -4)
	var insuf *StockInsuficienteError
	if !errors.As(err, &insuf) {
		t.Errorf("se esperaba StockInsuficienteError, se obtuvo %v", err)
	}
	if store.stocks[1] != 3 {
		t.Errorf("stock = %d, debía quedar en 3", store.stocks[1])
	}

	if _, err := svc.AjustarStock(99, 1); !errors.Is(err, ErrProductoNoEncontrado) {
		t.Errorf("se esperaba ErrProductoNoEncontrado, se obtuvo %v", err)
	}

	if _, err := svc.AjustarStock(1, 0); !errors.Is(err, ErrDatosInvalidos) {
		t.Errorf("delta cero: se esperaba ErrDatosInvalidos, se obtuvo %v", err)
	}
}

func TestAjustarStockConcurrenteNuncaQuedaNegativo(t *testing.T) {
	store := newMemStore()
	store.stocks[1] = 10

	svc := NewService(store)

	// Cada ajuste cabe por sí solo, pero juntos dejarían el stock en -5:
	// exactamente uno debe fallar.
	deltas := []int{-8, -7}
	resultados := make([]error, len(deltas))

	var wg sync.WaitGroup
	for i, delta := range deltas {
		wg.Add(1)
		go func(i, delta int) {
			defer wg.Done()
			_, resultados[i] = svc.AjustarStock(1, delta)
		}(i, delta)
	}
	wg.Wait()

	exitos := 0
	for _, err := range resultados {
		if err == nil {
			exitos++
			continue
		}
		var insuf *StockInsuficienteError
		if !errors.As(err, &insuf) {
			t.Errorf("error inesperado: %v", err)
		}
	}

	if exitos != 1 {
		t.Errorf("ajustes exitosos = %d, se esperaba exactamente 1", exitos)
	}
	if store.stocks[1] < 0 {
		t.Errorf("el stock quedó negativo: %d", store.stocks[1])
	}
	if store.stocks[1] != 2 && store.stocks[1] != 3 {
		t.Errorf("stock final = %d, se esperaba 2 o 3", store.stocks[1])
	}
}
