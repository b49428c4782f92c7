package database

import (
	"context"
	"fmt"
	"time"

	"kennel-registry/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgxIface is the slice of pgxpool the repositories depend on.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

const slowQuery = 250 * time.Millisecond

type queryStartKey struct{}

// queryTracer logs failed and slow statements, and every statement at debug.
type queryTracer struct {
	log *zap.Logger
}

type queryStart struct {
	sql string
	at  time.Time
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	fields := []zap.Field{
		zap.String("sql", start.sql),
		zap.Duration("duration", elapsed),
		zap.String("tag", data.CommandTag.String()),
	}
	switch {
	case data.Err != nil:
		t.log.Debug("Query failed", append(fields, zap.Error(data.Err))...)
	case elapsed >= slowQuery:
		t.log.Warn("Slow query", fields...)
	default:
		t.log.Debug("Query", fields...)
	}
}

// InitDB opens the connection pool and verifies it with a ping.
func InitDB(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) (PgxIface, error) {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	connStr := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=%s host=%s port=%s",
		config.User, config.Password, config.Name, sslMode, config.Host, config.Port)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	maxConns := config.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = min(2, maxConns)
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.ConnConfig.Tracer = &queryTracer{log: log.With(zap.String("component", "postgres"))}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Database pool ready",
		zap.String("host", config.Host),
		zap.String("database", config.Name),
		zap.Int32("max_conns", maxConns))
	return pool, nil
}
