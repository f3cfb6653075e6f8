// Package database holds the sqlite-backed record store and the schema
// reconciliation that keeps the live table in line with the descriptor.
package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core"
)

// Open connects to the sqlite database file (created on demand). The portal
// assumes a single process and at most one writer at a time; no cross
// process locking is layered on top of sqlite's own.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", conf.Database.Path)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to sqlite")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enabling foreign keys")
	}
	return db, nil
}
