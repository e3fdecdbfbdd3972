package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentflow-portal/internal/config"
	"rentflow-portal/internal/models"
)

type DB struct {
	db *gorm.DB
}

// New opens a database connection for the configured driver. SQLite is the
// demo default; MySQL and PostgreSQL are selected via config.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "mysql":
		c := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Database)
		dialector = mysql.Open(dsn)
	case "postgres":
		c := cfg.Postgres
		sslmode := c.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Database, sslmode)
		dialector = postgres.Open(dsn)
	default:
		path := cfg.SQLite.Path
		if path == "" {
			path = "rentflow.db"
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

// NewFromGorm wraps an existing gorm.DB instance (used by tests).
func NewFromGorm(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Gorm returns the underlying gorm.DB instance
func (d *DB) Gorm() *gorm.DB {
	return d.db
}

func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (d *DB) InitSchema() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.MeterReading{},
		&models.Penalty{},
	)
}
