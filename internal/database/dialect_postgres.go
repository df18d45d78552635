package database

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDialect numbers its placeholders
type PostgresDialect struct{}

func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) DSN(config DialectConfig) string { return config.URL }

func (d *PostgresDialect) RewriteQuery(query string) string { return numberPlaceholders(query) }

func (d *PostgresDialect) MigrationsSubdir() string { return "postgres" }

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	serverPool.apply(db)
	return nil
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id BIGSERIAL PRIMARY KEY,
	filename TEXT UNIQUE NOT NULL,
	executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`
}

func (d *PostgresDialect) UpsertSettingQuery() string {
	return upsertSetting("ON CONFLICT (setting_key) DO UPDATE SET " +
		"setting_value = EXCLUDED.setting_value, updated_at = CURRENT_TIMESTAMP")
}
