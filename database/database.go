package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"

	"sppages/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path              string        `env:"DB_PATH" default:"./sppages.db"`
	MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns      int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime   time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"15m"`
	BusyTimeoutMs     int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableForeignKeys bool          `env:"DB_ENABLE_FOREIGN_KEYS" default:"true"`
	EnableWAL         bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// Database holds the read pool and the single connection write pool of the
// page journal store.
type Database struct {
	readDB  *sql.DB
	writeDB *sql.DB
	config  Config
	logger  *logging.Logger
}

// New opens the database at config.Path with a read pool and a single
// connection write pool, then applies pending migrations.
func New(config Config, logger *logging.Logger) (*Database, error) {
	dsn := buildDSN(config)
	existed := checkDatabaseExists(config.Path)

	logger.Database("Opening database", "path", config.Path, "exists", existed)

	readDB, err := openPool(dsn, config.MaxOpenConns, config.MaxIdleConns, config)
	if err != nil {
		return nil, fmt.Errorf("open read pool: %w", err)
	}
	// one connection serializes writers ahead of sqlite's own lock
	writeDB, err := openPool(dsn, 1, 1, config)
	if err != nil {
		readDB.Close()
		return nil, fmt.Errorf("open write pool: %w", err)
	}

	d := &Database{readDB: readDB, writeDB: writeDB, config: config, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()
	if err := d.initialize(ctx); err != nil {
		d.closePools()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := d.runMigrations(ctx); err != nil {
		d.closePools()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Database("Database ready", "path", config.Path, "existed", existed, "wal", config.EnableWAL)
	return d, nil
}

// openTimeout bounds the pings and migrations run by New.
const openTimeout = 30 * time.Second

func openPool(dsn string, maxOpen, maxIdle int, config Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)
	return db, nil
}

// buildDSN constructs the SQLite data source name. modernc applies each
// _pragma on every new connection, so both pools get the same settings.
func buildDSN(config Config) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", config.BusyTimeoutMs))
	if config.EnableWAL {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	if config.EnableForeignKeys {
		params.Add("_pragma", "foreign_keys(1)")
	}
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "temp_store(MEMORY)")
	params.Add("_pragma", "cache_size(-64000)") // 64MB
	params.Add("_txlock", "immediate")

	return "file:" + config.Path + "?" + params.Encode()
}

// initialize pings both pools and checks the journal mode the DSN asked for.
func (d *Database) initialize(ctx context.Context) error {
	pools := []struct {
		name string
		db   *sql.DB
	}{{"read", d.readDB}, {"write", d.writeDB}}

	for _, pool := range pools {
		if err := pool.db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping %s pool: %w", pool.name, err)
		}
		if !d.config.EnableWAL {
			continue
		}
		var mode string
		if err := pool.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
			return fmt.Errorf("read journal mode on %s pool: %w", pool.name, err)
		}
		if mode != "wal" {
			d.logger.Warn("WAL mode not enabled", "pool", pool.name, "journal_mode", mode)
		}
	}
	return nil
}

// ReadDB returns the read database connection
func (d *Database) ReadDB() *sql.DB {
	return d.readDB
}

// WriteDB returns the write database connection
func (d *Database) WriteDB() *sql.DB {
	return d.writeDB
}

// Close checkpoints the WAL and closes both pools.
func (d *Database) Close() error {
	d.logger.Database("Closing database")
	if d.config.EnableWAL {
		if _, err := d.writeDB.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			d.logger.Warn("Failed to checkpoint WAL", "error", err)
		}
	}
	return d.closePools()
}

func (d *Database) closePools() error {
	var errs *multierror.Error
	if err := d.readDB.Close(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("read pool: %w", err))
	}
	if err := d.writeDB.Close(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("write pool: %w", err))
	}
	return errs.ErrorOrNil()
}

// Health pings both pools and returns their statistics.
func (d *Database) Health(ctx context.Context) (map[string]any, error) {
	if err := d.readDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping read pool: %w", err)
	}
	if err := d.writeDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping write pool: %w", err)
	}
	return map[string]any{
		"read_pool":  poolStats(d.readDB.Stats(), d.config.MaxOpenConns),
		"write_pool": poolStats(d.writeDB.Stats(), 1),
	}, nil
}

func poolStats(s sql.DBStats, maxOpen int) map[string]any {
	return map[string]any{
		"open_connections": s.OpenConnections,
		"in_use":           s.InUse,
		"idle":             s.Idle,
		"wait_count":       s.WaitCount,
		"wait_duration":    s.WaitDuration.String(),
		"max_open_conns":   maxOpen,
	}
}

// WithTx executes fn within a transaction on the write connection
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			d.logger.Error("Failed to rollback transaction", "error", rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
