package config

// DefaultDatabasePath is the default path for the application database.
const DefaultDatabasePath = "./libraryhub.db"

// Storage backends for client-side slots.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
	StorageNone   = "none"
)
