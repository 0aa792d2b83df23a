// Package database is the remote data service the application talks to.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, settings seeding
//	├── books/           # Catalog rows
//	├── sales/           # Purchases
//	├── loans/           # Loans and renewals
//	├── users/           # Profiles and role grants
//	├── settings/        # One JSON document per settings key
//	└── slots/           # Durable key-value slots behind internal/storage
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type working on rows from internal/entities:
//
//	db, err := database.NewDatabase("./library.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	rows, err := booksRepo.GetBooks(ctx)
//
// Rows are never handed to the rest of the application directly; internal/mapping turns them
// into internal/domain records and internal/resources does that at the boundary.
//
// # Interface Implementations
//
//   - books.Repository: implements resources.BookStore
//   - sales.Repository: implements resources.SaleStore
//   - loans.Repository: implements resources.LoanStore
//   - users.Repository: implements resources.UserStore
//   - settings.Repository: implements resources.SettingStore
//   - slots.Repository: implements storage.Backend
package database
