package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transaction runs fn in one database transaction. Repositories given the context fn receives
// join the transaction; an error from fn rolls every write back.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return Conn(ctx, d.DB).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction carried by ctx, or db when there is none, bound to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
