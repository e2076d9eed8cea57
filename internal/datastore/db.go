package datastore

import (
	"database/sql"
	"fmt"

	// pq is the PostgreSQL driver.
	_ "github.com/lib/pq"
)

// DB is the shared database connection pool. Stores in this package guard
// against it being nil so handlers fail loudly if InitDB was skipped.
var DB *sql.DB

// InitDB opens and pings the Postgres connection. Called once at startup.
func InitDB(dataSourceName string) error {
	var err error
	DB, err = sql.Open("postgres", dataSourceName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
