package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libraryhub/internal/entities"
	"github.com/mrlokans/libraryhub/internal/mapping"
)

type Database struct {
	DB *gorm.DB
}

// Option tweaks how the connection is opened.
type Option func(*gorm.Config)

// WithLogLevel sets gorm's SQL log level.
func WithLogLevel(level logger.LogLevel) Option {
	return func(c *gorm.Config) {
		c.Logger = logger.Default.LogMode(level)
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Profile{},
		&entities.UserRole{},
		&entities.Sale{},
		&entities.Loan{},
		&entities.Setting{},
		&entities.Slot{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedSettings(); err != nil {
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedSettings inserts the default document for every settings key that has none yet.
func (d *Database) seedSettings() error {
	for _, row := range mapping.DefaultSettingRows() {
		var existing entities.Setting
		err := d.DB.Where("key = ?", row.Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := d.DB.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create setting %s: %w", row.Key, err)
			}
			log.Printf("Created default setting: %s", row.Key)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
