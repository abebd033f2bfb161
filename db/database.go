package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"aws-sap-quiz/utils"
)

// DB wraps the local SQLite database backing durable app storage. It plays
// the role browser localStorage plays for the web version: a local,
// synchronous key-value store with last-writer-wins semantics.
type DB struct {
	*sql.DB
}

func InitDB(dbPath string) (*DB, error) {
	utils.LogStartup("Initializing storage database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		utils.LogError("Failed to open database: %v", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		utils.LogError("Failed to ping database: %v", err)
		return nil, err
	}

	if err := createTables(db); err != nil {
		utils.LogError("Failed to create tables: %v", err)
		return nil, err
	}

	utils.LogStartup("Storage database ready")
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS app_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create app_storage table: %w", err)
	}
	return nil
}

// Get returns the stored value for key, or an empty string if the key has
// never been written.
func (db *DB) Get(key string) (string, error) {
	var value string

	err := db.QueryRow("SELECT value FROM app_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		utils.LogError("Get(%q) failed: %v", key, err)
		return "", err
	}
	return value, nil
}

// Set writes the value for key, replacing any previous value.
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
        INSERT INTO app_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
    `, key, value)
	if err != nil {
		utils.LogError("Set(%q) failed: %v", key, err)
		return err
	}
	return nil
}
