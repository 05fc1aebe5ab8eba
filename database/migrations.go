package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded schema change, named "<version>_<name>.sql".
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// parseMigrationName splits "0001_page_journal.sql" into 1 and "0001_page_journal".
func parseMigrationName(file string) (int64, string, error) {
	if path.Ext(file) != ".sql" {
		return 0, "", fmt.Errorf("non-migration file in migrations: %s", file)
	}
	name := strings.TrimSuffix(file, ".sql")
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, "", fmt.Errorf("malformed migration filename: %s", file)
	}
	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("migration %s: bad version: %w", file, err)
	}
	return version, name, nil
}

// getMigrations loads the embedded migrations ordered by version.
// Two files sharing a version is an error.
func getMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	byVersion := make(map[int64]string, len(entries))
	for _, entry := range entries {
		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, name)
		}
		byVersion[version] = name

		content, err := fs.ReadFile(migrationFiles, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

func (d *Database) appliedVersions(ctx context.Context) (map[int64]bool, error) {
	rows, err := d.writeDB.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// runMigrations applies every embedded migration not yet recorded in
// schema_migrations, each in its own transaction.
func (d *Database) runMigrations(ctx context.Context) error {
	if _, err := d.writeDB.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	migrations, err := getMigrations()
	if err != nil {
		return err
	}
	applied, err := d.appliedVersions(ctx)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		d.logger.Database("Applying migration", "version", m.Version, "name", m.Name)
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		pending++
	}

	d.logger.Database("Schema up to date", "applied", pending, "total", len(migrations))
	return nil
}

// checkDatabaseExists reports whether path names a non-empty database file
func checkDatabaseExists(dbPath string) bool {
	if dbPath == ":memory:" {
		return false
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return false
	}
	stat, err := os.Stat(abs)
	return err == nil && stat.Size() > 0
}
