package database

import (
	"database/sql"
	"fmt"
	"os"
)

func Migrate(db *sql.DB) error {
	b, err := os.ReadFile("docs/schema.sql")
	if err != nil {
		return fmt.Errorf("read docs/schema.sql: %w", err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// MigrateSQL applies schema DDL from a string. Used by tests that run on an
// in-memory database without touching the repo checkout.
func MigrateSQL(db *sql.DB, ddl string) error {
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
