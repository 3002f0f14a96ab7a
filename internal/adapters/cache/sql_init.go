package cache

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the route geometry cache table if it is missing.
// The DDL is deliberately portable between sqlite and postgres.
func InitSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS route_cache (
		waypoints TEXT PRIMARY KEY,
		geometry  TEXT NOT NULL
	);
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init route cache schema: %w", err)
	}

	return nil
}
