// Command generate_demo creates a demo database with a small catalog of public domain books,
// a few profiles and some loans and purchases.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/database"
	"github.com/mrlokans/libraryhub/internal/database/books"
	"github.com/mrlokans/libraryhub/internal/database/loans"
	"github.com/mrlokans/libraryhub/internal/database/sales"
	"github.com/mrlokans/libraryhub/internal/database/settings"
	"github.com/mrlokans/libraryhub/internal/database/slots"
	"github.com/mrlokans/libraryhub/internal/database/users"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/notify"
	"github.com/mrlokans/libraryhub/internal/query"
	"github.com/mrlokans/libraryhub/internal/resources"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	q := query.NewClient(time.Minute)
	// Activity goes to the same slot the server reads
	activityLog := activity.NewLog(slots.NewRepository(db.DB), activity.DefaultSlotKey, activity.Options{})

	bookRepo := books.NewRepository(db.DB)
	bookRes := resources.NewBooks(bookRepo, q, notify.Discard)
	userRes := resources.NewUsers(users.NewRepository(db.DB), q, notify.Discard)
	settingsRes := resources.NewSettings(settings.NewRepository(db.DB), q, notify.Discard)
	loanRes := resources.NewLoans(loans.NewRepository(db.DB), bookRepo, db, settingsRes, activityLog, q, notify.Discard)
	saleRes := resources.NewSales(sales.NewRepository(db.DB), bookRepo, db, activityLog, q, notify.Discard)

	var catalog []domain.Book
	for _, b := range getPublicDomainBooks() {
		book, err := bookRes.Create(ctx, b)
		if err != nil {
			log.Printf("Failed to save book %s: %v", b.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (%d copies)", book.Title, book.Author, book.Quantity)
		catalog = append(catalog, book)
	}

	var members []domain.User
	for _, u := range getProfiles() {
		user, err := userRes.Create(ctx, u)
		if err != nil {
			log.Printf("Failed to create profile %s: %v", u.Email, err)
			continue
		}
		log.Printf("Created profile %s %v", user.Email, user.Roles)
		if user.HasRole(domain.RoleMember) {
			members = append(members, user)
		}
	}

	// Every member borrows one book and buys another
	for i, member := range members {
		if len(catalog) < 2 {
			break
		}
		borrow := catalog[i%len(catalog)]
		buy := catalog[(i+1)%len(catalog)]

		if _, err := loanRes.Create(ctx, member.ID, borrow.ID); err != nil {
			log.Printf("Failed to lend %s to %s: %v", borrow.Title, member.Email, err)
		}
		if _, err := saleRes.Create(ctx, domain.NewSale{UserID: member.ID, BookID: buy.ID, Quantity: 1, PaymentMethod: "card"}); err != nil {
			log.Printf("Failed to sell %s to %s: %v", buy.Title, member.Email, err)
		}
	}

	if _, err := settingsRes.Update(ctx, "library_info", map[string]any{
		"name":  "Public Domain Reading Room",
		"email": "desk@example.org",
	}); err != nil {
		log.Printf("Failed to save library info: %v", err)
	}

	log.Printf("Recorded %d activity entries", activityLog.Len())
	log.Println("Demo database generated successfully!")
}

func getPublicDomainBooks() []domain.Book {
	return []domain.Book{
		{Title: "Meditations", Author: "Marcus Aurelius", ISBN: "9780140449334", Category: "philosophy", PublicationYear: 180, Price: 9.5, Quantity: 3},
		{Title: "Letters from a Stoic", Author: "Seneca", ISBN: "9780140442106", Category: "philosophy", PublicationYear: 65, Price: 11, Quantity: 2},
		{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Category: "fiction", PublicationYear: 1813, Price: 7.99, Quantity: 4},
		{Title: "Moby-Dick", Author: "Herman Melville", ISBN: "9780142437247", Category: "fiction", PublicationYear: 1851, Price: 12.5, Quantity: 1},
		{Title: "On the Origin of Species", Author: "Charles Darwin", ISBN: "9780451529060", Category: "science", PublicationYear: 1859, Price: 8.25, Quantity: 2},
	}
}

func getProfiles() []domain.User {
	return []domain.User{
		{FullName: "Ada Admin", Email: "admin@example.org", Roles: []domain.Role{domain.RoleAdmin}},
		{FullName: "Lena Librarian", Email: "librarian@example.org", Roles: []domain.Role{domain.RoleLibrarian}},
		{FullName: "Milo Reader", Email: "milo@example.org", Roles: []domain.Role{domain.RoleMember}},
		{FullName: "Iris Reader", Email: "iris@example.org", Roles: []domain.Role{domain.RoleMember}},
	}
}
