package postgres

import (
	"context"
	"embed"
	"fmt"
	"net"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Username string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" json:"-" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"lending"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `yaml:"maxConns" envconfig:"DB_MAX_CONNS" default:"20"`
}

func (d *DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.Username, d.Password, net.JoinHostPort(d.Host, d.Port), d.NameDB, d.SSLMode)
}

const migrationsDir = "."

// NewPostgresDB opens a pool, checks connectivity and applies the embedded migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrations embed.FS) (*sqlx.DB, error) {
	db, err := Connect(ctx, cfg.DSN(), cfg.MaxConns)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Connect(ctx context.Context, dsn string, maxConns int) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns / 2)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "db.Ping")
	}
	return db, nil
}

func Migrate(db *sqlx.DB, migrations embed.FS) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "goose.SetDialect")
	}
	if err := goose.Up(db.DB, migrationsDir); err != nil {
		return errors.Wrap(err, "goose.Up")
	}
	return nil
}
