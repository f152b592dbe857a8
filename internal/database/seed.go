package database

import (
	"log"

	"github.com/mancil-la/OBLEAS/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Crea las cuentas iniciales si la tabla está vacía.
// Por defecto: admin + trabajador1/2/3, contraseña 123456.
func seedTrabajadores() {
	var count int64
	DB.Model(&models.Trabajador{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("No se pudo generar el hash de la contraseña inicial: %v", err)
	}

	iniciales := []models.Trabajador{
		{Nombre: "Administrador", Usuario: "admin", PasswordHash: string(hash), Rol: models.RolAdmin, Activo: true},
		{Nombre: "Trabajador 1", Usuario: "trabajador1", PasswordHash: string(hash), Rol: models.RolTrabajador, Activo: true},
		{Nombre: "Trabajador 2", Usuario: "trabajador2", PasswordHash: string(hash), Rol: models.RolTrabajador, Activo: true},
		{Nombre: "Trabajador 3", Usuario: "trabajador3", PasswordHash: string(hash), Rol: models.RolTrabajador, Activo: true},
	}

	if err := DB.Create(&iniciales).Error; err != nil {
		log.Fatalf("No se pudieron crear los trabajadores iniciales: %v", err)
	}

	log.Println("Trabajadores iniciales creados (admin, trabajador1/2/3, contraseña 123456)")
}

// Carga el catálogo real de la tienda si no hay productos.
func seedProductos() {
	var count int64
	DB.Model(&models.Producto{}).Count(&count)
	if count > 0 {
		return
	}

	catalogo := []models.Producto{
		// Obleas y especialidades $30.00
		{Nombre: "Obleas", Categoria: "Obleas", Precio: 30.00, Stock: 50},
		{Nombre: "Semillas Cristalizadas", Categoria: "Semillas", Precio: 30.00, Stock: 30},
		{Nombre: "Semillas Horneadas", Categoria: "Semillas", Precio: 30.00, Stock: 30},
		{Nombre: "Ciruelas con Nuez", Categoria: "Frutos Secos", Precio: 30.00, Stock: 25},
		{Nombre: "Galletas de Amaranto", Categoria: "Galletas", Precio: 30.00, Stock: 40},
		{Nombre: "Doraditas de Nata", Categoria: "Galletas", Precio: 30.00, Stock: 35},
		{Nombre: "Verdura Deshidratada", Categoria: "Verduras", Precio: 30.00, Stock: 20},

		// Gomitas $20.00
		{Nombre: "Gomitas de Guayaba", Categoria: "Gomitas", Precio: 20.00, Stock: 50},
		{Nombre: "Gomitas de Maracuyá", Categoria: "Gomitas", Precio: 20.00, Stock: 50},
		{Nombre: "Gomitas de Lichi", Categoria: "Gomitas", Precio: 20.00, Stock: 45},
		{Nombre: "Gomitas de Guanábana", Categoria: "Gomitas", Precio: 20.00, Stock: 45},
		{Nombre: "Gomitas de Mango", Categoria: "Gomitas", Precio: 20.00, Stock: 50},

		// Dulces $20.00
		{Nombre: "Bombón con Nuez", Categoria: "Dulces", Precio: 20.00, Stock: 40},
		{Nombre: "Pasas con Chocolate", Categoria: "Dulces", Precio: 20.00, Stock: 35},
		{Nombre: "Huesitos de Chocolate", Categoria: "Dulces", Precio: 20.00, Stock: 40},

		// Alegrías $20.00
		{Nombre: "Alegrías de Miel", Categoria: "Alegrías", Precio: 20.00, Stock: 45},
		{Nombre: "Alegrías de Chocolate", Categoria: "Alegrías", Precio: 20.00, Stock: 45},
		{Nombre: "Alegrías Choco Menta", Categoria: "Alegrías", Precio: 20.00, Stock: 40},

		// Botanas $20.00
		{Nombre: "Choco Hojuela", Categoria: "Botanas", Precio: 20.00, Stock: 35},
		{Nombre: "Enjambres", Categoria: "Botanas", Precio: 20.00, Stock: 30},
		{Nombre: "Muéganos", Categoria: "Botanas", Precio: 20.00, Stock: 30},

		// Churros $20.00
		{Nombre: "Churros de Sal", Categoria: "Churros", Precio: 20.00, Stock: 40},
		{Nombre: "Churros de Chipotle", Categoria: "Churros", Precio: 20.00, Stock: 40},
		{Nombre: "Churros de Tajín", Categoria: "Churros", Precio: 20.00, Stock: 40},

		// Cacahuates $20.00
		{Nombre: "Hot Nuts", Categoria: "Cacahuates", Precio: 20.00, Stock: 50},
		{Nombre: "Cacahuates Queso", Categoria: "Cacahuates", Precio: 20.00, Stock: 50},
		{Nombre: "Cacahuates Español con Ajo", Categoria: "Cacahuates", Precio: 20.00, Stock: 45},
		{Nombre: "Abas", Categoria: "Cacahuates", Precio: 20.00, Stock: 40},
		{Nombre: "Botanero", Categoria: "Cacahuates", Precio: 20.00, Stock: 50},
		{Nombre: "Papatinas", Categoria: "Cacahuates", Precio: 20.00, Stock: 45},
	}

	if err := DB.Create(&catalogo).Error; err != nil {
		log.Fatalf("No se pudo crear el catálogo de productos: %v", err)
	}

	log.Printf("Catálogo de productos creado (%d productos)", len(catalogo))
}
