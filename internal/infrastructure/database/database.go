// Package database provides the connection to the hosted listings backend.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Config selects the hosted libSQL backend when credentials are present,
// otherwise a local SQLite file.
type Config struct {
	TursoDatabase string
	TursoToken    string
	SQLitePath    string
}

// ConfigFromEnv builds a database config from the environment.
func ConfigFromEnv() *Config {
	return &Config{
		TursoDatabase: os.Getenv("TURSO_DATABASE_URL"),
		TursoToken:    os.Getenv("TURSO_AUTH_TOKEN"),
		SQLitePath:    envOr("SQLITE_PATH", "data/bartlett.db"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Database wraps the single site connection.
type Database struct {
	Conn     *sql.DB
	UseTurso bool
}

// New opens the database connection and applies pool tuning.
func New(cfg *Config) (*Database, error) {
	var conn *sql.DB
	var err error
	var useTurso bool

	if cfg.TursoDatabase != "" && cfg.TursoToken != "" {
		connStr := cfg.TursoDatabase + "?authToken=" + cfg.TursoToken
		conn, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		useTurso = true
	} else {
		dbDir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		conn, err = sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite ping failed: %w", err)
		}
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)

	return &Database{Conn: conn, UseTurso: useTurso}, nil
}

// Close closes the underlying connection.
func (db *Database) Close() error {
	if db.Conn != nil {
		return db.Conn.Close()
	}
	return nil
}

// GetConnectionInfo describes the active backend for status reporting.
func (db *Database) GetConnectionInfo() string {
	if db.UseTurso {
		return "Turso (hosted)"
	}
	return "SQLite (local)"
}

// Status reports pool statistics and health.
func (db *Database) Status() map[string]any {
	stats := db.Conn.Stats()
	return map[string]any{
		"backend":      db.GetConnectionInfo(),
		"healthy":      db.Conn.Ping() == nil,
		"maxOpen":      stats.MaxOpenConnections,
		"open":         stats.OpenConnections,
		"inUse":        stats.InUse,
		"idle":         stats.Idle,
		"waitCount":    stats.WaitCount,
		"waitDuration": stats.WaitDuration.String(),
	}
}
