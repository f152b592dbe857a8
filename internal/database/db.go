package database

import (
	"log"

	"github.com/mancil-la/OBLEAS/internal/config"
	"github.com/mancil-la/OBLEAS/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Producto{},
		&models.Trabajador{},
		&models.Venta{},
		&models.DetalleVenta{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	seedTrabajadores()
	seedProductos()

	log.Println("Base de datos inicializada. Migración completada.")
}
