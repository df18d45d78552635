package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect hides the differences between the supported SQL engines
type Dialect interface {
	DriverName() string
	DSN(config DialectConfig) string

	// RewriteQuery adapts a query written with ? placeholders
	RewriteQuery(query string) string

	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the directory under the migrations path
	MigrationsSubdir() string
	CreateMigrationsTableQuery() string

	// UpsertSettingQuery takes (key, value) and inserts or replaces the row
	UpsertSettingQuery() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	Path string // SQLite file
	URL  string // PostgreSQL/MySQL connection URL
}

type poolLimits struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

// serverPool suits a networked database shared by one process
var serverPool = poolLimits{
	maxOpen:     5,
	maxIdle:     2,
	maxLifetime: 5 * time.Minute,
	maxIdleTime: time.Minute,
}

func (p poolLimits) apply(db *sql.DB) {
	db.SetMaxOpenConns(p.maxOpen)
	db.SetMaxIdleConns(p.maxIdle)
	db.SetConnMaxLifetime(p.maxLifetime)
	db.SetConnMaxIdleTime(p.maxIdleTime)
}

// upsertSetting builds the settings upsert around an engine's conflict clause
func upsertSetting(onConflict string) string {
	return "INSERT INTO settings (setting_key, setting_value, updated_at) " +
		"VALUES (?, ?, CURRENT_TIMESTAMP) " + onConflict
}

// numberPlaceholders turns ? into $1, $2, ... leaving quoted literals alone
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
