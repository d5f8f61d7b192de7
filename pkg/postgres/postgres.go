package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Options - параметры пула соединений; нулевые значения оставляют настройки pgxpool
type Options struct {
	MaxConns        int32
	MaxConnLifetime time.Duration
	// ApplicationName виден в pg_stat_activity
	ApplicationName string
}

// PoolConfig разбирает DSN и накладывает на него Options
func PoolConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}

	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
		if poolCfg.MinConns > poolCfg.MaxConns {
			poolCfg.MinConns = poolCfg.MaxConns
		}
	}
	if opts.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = opts.ApplicationName
	}
	return poolCfg, nil
}

// NewPostgresDB создает пул соединений и проверяет доступность базы
func NewPostgresDB(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}
	return pool, nil
}
