package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core/student"
)

const tableName = "students"

// Reconcile brings the live table structure in line with the schema
// descriptor without touching existing data: it creates the table when
// absent and adds any missing columns as nullable text. Columns are never
// removed or renamed, and re-running with nothing to do is a no-op, so the
// routine is safe to run unconditionally at every startup.
func Reconcile(db *sqlx.DB) error {
	exists, err := tableExists(db)
	if err != nil {
		return errors.Wrap(err, "checking table")
	}

	if !exists {
		defs := make([]string, 0, len(student.Schema()))
		for _, col := range student.Schema() {
			defs = append(defs, col.Name+" "+col.Type)
		}
		q := fmt.Sprintf("CREATE TABLE %s (%s)", tableName, strings.Join(defs, ", "))
		if _, err := db.Exec(q); err != nil {
			return errors.Wrap(err, "creating table")
		}
		return nil
	}

	live, err := liveColumns(db)
	if err != nil {
		return errors.Wrap(err, "reading live columns")
	}
	for _, col := range student.Schema() {
		if _, ok := live[col.Name]; ok {
			continue
		}
		// constraints cannot be added to an existing table; added columns
		// are plain text, backfilled empty for existing rows
		q := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT DEFAULT ''", tableName, col.Name)
		if _, err := db.Exec(q); err != nil {
			return errors.Wrapf(err, "adding column %s", col.Name)
		}
	}
	return nil
}

func tableExists(db *sqlx.DB) (bool, error) {
	var name string
	err := db.Get(&name, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", tableName)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func liveColumns(db *sqlx.DB) (map[string]struct{}, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]struct{})
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}
