package storage

import "github.com/rizqapp/rizq/internal/storage/sqlite"

// SQLiteStore adapts the sqlite package's store to the Provider interface.
type SQLiteStore struct {
	*sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		Store: sqlite.NewStore(path),
	}
}
