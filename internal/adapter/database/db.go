package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	"goalsapp/pkg/config"
)

// DB is the storage handle shared by the repositories. Both dialects use
// dollar placeholders.
type DB struct {
	*sqlx.DB
	QueryBuilder *squirrel.StatementBuilderType
	Dialect      string

	pool *pgxpool.Pool
}

type options struct {
	name         string
	maxOpenConns int
	queryLogger  *zerolog.Logger
}

type Option func(*options)

func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		o.maxOpenConns = n
	}
}

// WithQueryLogger logs every statement through sqldb-logger.
func WithQueryLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.queryLogger = &logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		name:         "goalsapp",
		maxOpenConns: 10,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// NewDB opens the database selected by cfg and brings its schema up to date.
func NewDB(ctx context.Context, cfg *config.AppConfig) (*DB, error) {
	var opts []Option

	if cfg.LogQueries {
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.DebugLevel)
		opts = append(opts, WithQueryLogger(logger))
	}

	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL, opts...)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DatabasePath, opts...)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// OpenSQLite opens path (a file name or a file: URI) with foreign keys on.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*DB, error) {
	o := newOptions(opts)
	dsn := sqliteDSN(path)

	sqlDB, err := otelsql.Open("sqlite3", dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName(o.name),
	)

	if err != nil {
		return nil, err
	}

	if o.queryLogger != nil {
		traced := sqlDB
		sqlDB = sqldblogger.OpenDriver(dsn, traced.Driver(), zerologadapter.New(*o.queryLogger))
		traced.Close()
	}

	sqlDB.SetMaxOpenConns(o.maxOpenConns)
	sqlDB.SetMaxIdleConns(o.maxOpenConns)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := RunMigrations(sqlDB, config.DriverSQLite); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running sqlite migrations: %w", err)
	}

	return newDB(sqlx.NewDb(sqlDB, "sqlite3"), config.DriverSQLite, nil), nil
}

// OpenPostgres connects a pgx pool to url and exposes it through database/sql.
func OpenPostgres(ctx context.Context, url string, opts ...Option) (*DB, error) {
	o := newOptions(opts)

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(o.maxOpenConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := RunMigrations(stdlib.OpenDBFromPool(pool), config.DriverPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running postgres migrations: %w", err)
	}

	var sqlDB *sql.DB

	if o.queryLogger != nil {
		// statement logging needs a driver, so connections are dialed by DSN
		// instead of being borrowed from the pool
		traced, err := otelsql.Open("pgx", url,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(o.name),
		)
		if err != nil {
			pool.Close()
			return nil, err
		}

		sqlDB = sqldblogger.OpenDriver(url, traced.Driver(), zerologadapter.New(*o.queryLogger))
		traced.Close()
		sqlDB.SetMaxOpenConns(o.maxOpenConns)
	} else {
		sqlDB = otelsql.OpenDB(stdlib.GetPoolConnector(pool),
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(o.name),
		)

		// pgxpool owns idle connections
		sqlDB.SetMaxIdleConns(0)
	}

	return newDB(sqlx.NewDb(sqlDB, "pgx"), config.DriverPostgres, pool), nil
}

func newDB(db *sqlx.DB, dialect string, pool *pgxpool.Pool) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
		Dialect:      dialect,
		pool:         pool,
	}
}

func (db *DB) Close() error {
	err := db.DB.Close()

	if db.pool != nil {
		db.pool.Close()
	}

	return err
}

// Ping checks that storage answers within a short deadline.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// InsertReturningID runs an insert and returns the generated id.
func (db *DB) InsertReturningID(ctx context.Context, insert squirrel.InsertBuilder) (int64, error) {
	var id int64

	if db.Dialect == config.DriverPostgres {
		query, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, err
		}

		if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, translateError(err)
		}

		return id, nil
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}

	return result.LastInsertId()
}

// ExecAffected runs a write and returns the number of rows it matched.
func (db *DB) ExecAffected(ctx context.Context, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}

	return result.RowsAffected()
}

// QueryOne scans the first row of builder into dest. sql.ErrNoRows is returned as is.
func (db *DB) QueryOne(ctx context.Context, dest interface{}, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	return translateError(db.GetContext(ctx, dest, query, args...))
}

func (db *DB) QueryAll(ctx context.Context, dest interface{}, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	return translateError(db.SelectContext(ctx, dest, query, args...))
}

func sqliteDSN(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"

	if strings.Contains(path, "?") {
		return path + "&" + params
	}

	return path + "?" + params
}
