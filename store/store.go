// Package store persists table snapshots. Two backends are provided:
// FileStore writes single-table JSON files, SQLiteStore keeps a named
// collection of tables in one database file.
package store

import (
	"time"

	"github.com/google/uuid"
)

// DocumentInfo describes one stored table without its cell content.
type DocumentInfo struct {
	ID      uuid.UUID
	Name    string
	SavedAt time.Time
}
