package db

import (
	"database/sql"

	"denken-plus-api/utils"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func InitDB(dbPath string) (*DB, error) {
	utils.LogStartup("Initializing database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		utils.LogError("Failed to open database: %v", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		utils.LogError("Failed to ping database: %v", err)
		return nil, err
	}

	utils.LogStartup("Database connection established")

	if err := createTables(db); err != nil {
		utils.LogError("Failed to create tables: %v", err)
		return nil, err
	}

	utils.LogStartup("Database tables initialized successfully")
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	// One key-value table: the profile is a single JSON document, the
	// same shape the web client kept in local storage.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS app_data (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
