package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection settings of the vector store database
type DatabaseConfiguration struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// NewDatabaseConfiguration reads the configuration from the DATABASE_URL environment variable
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, NewError("database configuration", fmt.Errorf("environment variable DATABASE_URL is not set"))
	}
	return NewDatabaseConfigurationFromURL(url), nil
}

// NewDatabaseConfigurationFromURL creates a configuration with default pool settings
func NewDatabaseConfigurationFromURL(url string) *DatabaseConfiguration {
	return &DatabaseConfiguration{
		URL:             url,
		MaxOpenConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// ConnectionString returns the URL in a form lib/pq understands.
// SQLAlchemy style schemes like postgresql+psycopg:// lose their driver suffix.
func (c *DatabaseConfiguration) ConnectionString() string {
	scheme, rest, ok := strings.Cut(c.URL, "://")
	if !ok {
		return c.URL
	}
	if base, _, found := strings.Cut(scheme, "+"); found {
		scheme = base
	}
	return scheme + "://" + rest
}

// Database bundles the connection pool with its logger
type Database struct {
	Name     string
	Logger   *slog.Logger
	Instance *sql.DB
}

// NewDatabase opens and pings the database described by config
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, NewError("database configuration validation", fmt.Errorf("database configuration is nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	instance, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		return nil, NewError("open database", err)
	}
	if config.MaxOpenConns > 0 {
		instance.SetMaxOpenConns(config.MaxOpenConns)
		instance.SetMaxIdleConns(config.MaxOpenConns)
	}
	if config.ConnMaxLifetime > 0 {
		instance.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := instance.PingContext(ctx); err != nil {
		_ = instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name))

	return &Database{
		Name:     name,
		Logger:   logger,
		Instance: instance,
	}, nil
}

// Close closes the connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}
