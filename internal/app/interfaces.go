package app

import (
	"context"

	"github.com/salesdash/salesdash/config"
	"github.com/salesdash/salesdash/internal/report"
	"github.com/salesdash/salesdash/internal/store"
	"gorm.io/gorm"
)

// DBProvider provides relational database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the transaction store
type StoreProvider interface {
	Store() store.TransactionStore
}

// ReportProvider provides the listing and statistics service
type ReportProvider interface {
	Report() *report.Service
}

// SeedProvider loads seed data into the store
type SeedProvider interface {
	// InitializeDatabase fetches the configured seed document and replaces the
	// store contents with it, returning the number of records inserted.
	InitializeDatabase(ctx context.Context) (int, error)
	// LoadSeed replaces the store contents with an already downloaded document.
	LoadSeed(ctx context.Context, data []byte) (int, error)
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	ReportProvider
	SeedProvider

	MigrateDB(track bool) error
}
