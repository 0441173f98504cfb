package cron

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sweeper drops state that is no longer needed and reports how much it removed.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

func SweepJob(name string, s Sweeper) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := s.Sweep(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("Swept idle entries", "job", name, "dropped", n)
		}
		return nil
	}
}

// PoolStater is satisfied by *pgxpool.Pool.
type PoolStater interface {
	Stat() *pgxpool.Stat
}

// poolSaturationWarn is the share of acquired connections above which the
// pool stats are logged as a warning.
const poolSaturationWarn = 0.8

// PoolStatsJob logs the connection pool usage. Requests that time out waiting
// for a connection surface as 503s, so a saturated pool is worth a warning.
func PoolStatsJob(pool PoolStater) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		stat := pool.Stat()
		if stat == nil || stat.MaxConns() == 0 {
			return nil
		}
		attrs := []any{
			"acquired", stat.AcquiredConns(),
			"idle", stat.IdleConns(),
			"max", stat.MaxConns(),
			"empty_acquire_count", stat.EmptyAcquireCount(),
			"canceled_acquire_count", stat.CanceledAcquireCount(),
		}
		if float64(stat.AcquiredConns())/float64(stat.MaxConns()) >= poolSaturationWarn {
			slog.WarnContext(ctx, "Database pool near saturation", attrs...)
			return nil
		}
		slog.DebugContext(ctx, "Database pool stats", attrs...)
		return nil
	}
}
