package database

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect shares ? placeholders with SQLite
type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string { return "mysql" }

func (d *MySQLDialect) DSN(config DialectConfig) string { return config.URL }

func (d *MySQLDialect) RewriteQuery(query string) string { return query }

func (d *MySQLDialect) MigrationsSubdir() string { return "mysql" }

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	serverPool.apply(db)
	return nil
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	filename VARCHAR(255) UNIQUE NOT NULL,
	executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
)`
}

func (d *MySQLDialect) UpsertSettingQuery() string {
	return upsertSetting("ON DUPLICATE KEY UPDATE " +
		"setting_value = VALUES(setting_value), updated_at = CURRENT_TIMESTAMP")
}
