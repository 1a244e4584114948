package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InMemoryDSN keeps the run store entirely in process memory; nothing
// outlives the server. A file path can be passed instead for debugging.
const InMemoryDSN = ":memory:"

// InitDB opens the SQLite run store and ensures all tables exist.
func InitDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = InMemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// The store is filled by one run at a time and read by handlers; a single
	// connection avoids separate in-memory databases per pooled connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			generated_at DATETIME NOT NULL,
			records_processed INTEGER NOT NULL,
			report_json TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			date TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			region TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL,
			amount REAL NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_region ON transactions(region)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id)`,

		`CREATE TABLE IF NOT EXISTS rejections (
			run_id TEXT NOT NULL,
			line INTEGER NOT NULL,
			transaction_id TEXT,
			violations TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,

		`CREATE TABLE IF NOT EXISTS enriched (
			transaction_id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			status TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			supplier TEXT NOT NULL,
			rating REAL NOT NULL,
			list_price REAL,
			list_price_delta REAL NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id),
			FOREIGN KEY (transaction_id) REFERENCES transactions(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_enriched_status ON enriched(status)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}
