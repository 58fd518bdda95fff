// Package store implements the catalog, nominee, and settings persistence
// over Postgres.
//
// Expected schema:
//
//	CREATE TABLE categories (
//	    id BIGSERIAL PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    ceremony_year INT NOT NULL,
//	    is_active BOOLEAN NOT NULL DEFAULT TRUE,
//	    max_nominees INT NOT NULL DEFAULT 10
//	);
//
//	CREATE TABLE nominees (
//	    id BIGSERIAL PRIMARY KEY,
//	    category_id BIGINT NOT NULL REFERENCES categories(id),
//	    name TEXT NOT NULL,
//	    meta TEXT NOT NULL DEFAULT '',
//	    ceremony_year INT NOT NULL,
//	    is_winner BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
//	CREATE TABLE settings (
//	    key TEXT PRIMARY KEY,
//	    value TEXT NOT NULL
//	);
//
// Case- and diacritic-insensitive nominee uniqueness is enforced by the
// import engine's dedup set, not by a constraint here.
package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gavital/oscar-betting-app-sub000/internal/awards"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is the slice of pgxpool.Pool the store uses; pgxmock implements it for
// tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// Postgres implements awards.Store.
type Postgres struct {
	db DB
}

var _ awards.Store = (*Postgres)(nil)

// New connects a pooled Postgres store and verifies the connection.
func New(ctx context.Context, cfg Config) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s := &Postgres{db: pool}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB constructs a store from an existing pool, primarily for tests.
func NewWithDB(db DB) (*Postgres, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &Postgres{db: db}, nil
}

// Ping verifies the connection is alive.
func (s *Postgres) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Postgres) Close() {
	if s != nil && s.db != nil {
		s.db.Close()
	}
}

// ListCategories returns every category of a ceremony year.
func (s *Postgres) ListCategories(ctx context.Context, year int) ([]awards.Category, error) {
	query, args, err := psql.
		Select("id", "name", "ceremony_year", "is_active", "max_nominees").
		From("categories").
		Where(sq.Eq{"ceremony_year": year}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []awards.Category
	for rows.Next() {
		var c awards.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CeremonyYear, &c.IsActive, &c.MaxNominees); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// GetCategory fetches one category by id.
func (s *Postgres) GetCategory(ctx context.Context, id int64) (awards.Category, error) {
	query, args, err := psql.
		Select("id", "name", "ceremony_year", "is_active", "max_nominees").
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return awards.Category{}, fmt.Errorf("build get category query: %w", err)
	}

	var c awards.Category
	err = s.db.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.CeremonyYear, &c.IsActive, &c.MaxNominees)
	if err != nil {
		return awards.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// InsertCategory creates a category row and returns it with its id.
func (s *Postgres) InsertCategory(ctx context.Context, cat awards.Category) (awards.Category, error) {
	query, args, err := psql.
		Insert("categories").
		Columns("name", "ceremony_year", "is_active", "max_nominees").
		Values(cat.Name, cat.CeremonyYear, cat.IsActive, cat.MaxNominees).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return awards.Category{}, fmt.Errorf("build insert category query: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&cat.ID); err != nil {
		return awards.Category{}, fmt.Errorf("insert category %q: %w", cat.Name, err)
	}
	return cat, nil
}

// ListNominees returns the nominees of one category and year.
func (s *Postgres) ListNominees(ctx context.Context, categoryID int64, year int) ([]awards.Nominee, error) {
	query, args, err := psql.
		Select("id", "category_id", "name", "meta", "ceremony_year", "is_winner").
		From("nominees").
		Where(sq.Eq{"category_id": categoryID, "ceremony_year": year}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list nominees query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list nominees: %w", err)
	}
	defer rows.Close()

	var out []awards.Nominee
	for rows.Next() {
		var n awards.Nominee
		if err := rows.Scan(&n.ID, &n.CategoryID, &n.Name, &n.Meta, &n.CeremonyYear, &n.IsWinner); err != nil {
			return nil, fmt.Errorf("scan nominee: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nominees: %w", err)
	}
	return out, nil
}

// InsertNominees batch-inserts nominee rows. An empty batch is a no-op.
func (s *Postgres) InsertNominees(ctx context.Context, batch []awards.Nominee) error {
	if len(batch) == 0 {
		return nil
	}
	builder := psql.
		Insert("nominees").
		Columns("category_id", "name", "meta", "ceremony_year", "is_winner")
	for _, n := range batch {
		builder = builder.Values(n.CategoryID, n.Name, n.Meta, n.CeremonyYear, n.IsWinner)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert nominees query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d nominees: %w", len(batch), err)
	}
	return nil
}

// GetSetting fetches one settings row by key.
func (s *Postgres) GetSetting(ctx context.Context, key string) (string, error) {
	query, args, err := psql.
		Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build get setting query: %w", err)
	}

	var value string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}
