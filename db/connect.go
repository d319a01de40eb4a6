package db

import (
	"energy-monitor/confs"
	"energy-monitor/entities"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect opens the store selected by configuration: SQLite when SQLITE_PATH
// is set, Postgres otherwise. Migrations and meter seeding run on every start.
func Connect(cfg *confs.Config) (Database, error) {
	if cfg.Database.SQLitePath != "" {
		log.Printf("Connecting to SQLite database at %s...", cfg.Database.SQLitePath)
		return OpenSQLite(cfg.Database.SQLitePath)
	}

	dsn, err := postgresDSN(&cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Info),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Database connection established successfully!")

	if err := migrateAndSeed(db); err != nil {
		return nil, err
	}

	return &GormDatabase{DB: db}, nil
}

// OpenSQLite opens a local SQLite database, migrates and seeds it. In-memory databases are pinned to a single connection so every session sees
// the same data.
func OpenSQLite(path string) (Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	if err := migrateAndSeed(db); err != nil {
		return nil, err
	}

	return &GormDatabase{DB: db}, nil
}

func postgresDSN(cfg *confs.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		// Hosted Postgres usually requires SSL; add it when the URL omits it
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		log.Println("Connecting to database using DB_URL...")
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
	log.Printf("Connecting to database using individual parameters (sslmode=%s)...", sslMode)
	return dsn, nil
}

func migrateAndSeed(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&entities.Meter{}, &entities.MeterReading{}, &entities.MeterStatus{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedMeters(db); err != nil {
		return fmt.Errorf("failed to seed meters: %w", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// seedMeters inserts the default meter set if absent. Existing rows are left
// untouched.
func seedMeters(db *gorm.DB) error {
	seed := []entities.Meter{
		{ID: "meter_001", Description: "Primary energy meter", IsActive: true},
		{ID: "meter_002", Description: "Secondary meter A", IsActive: true},
		{ID: "meter_003", Description: "Secondary meter B", IsActive: true},
		{ID: "meter_004", Description: "Secondary meter C", IsActive: true},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
}
