// Package archive keeps a history of snapshots in Postgres. Each row stores
// one game's encoded state plus enough denormalized columns to query the
// archive without decoding.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scorewire/gamefeed/pkg/gamestate"
)

// Archive writes snapshots through a pgxpool connection pool.
type Archive struct {
	pool *pgxpool.Pool
}

// New creates and validates the archive's connection pool.
func New(ctx context.Context, databaseURL string) (*Archive, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Archive{pool: pool}, nil
}

// Store archives one snapshot. Rows for a whole slate go in a single batch.
func (a *Archive) Store(ctx context.Context, sportID string, games []gamestate.Game) error {
	batch := &pgx.Batch{}
	for i := range games {
		g := &games[i]
		data, err := g.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode game %d: %w", g.GameID, err)
		}
		batch.Queue("insert_snapshot",
			sportID, int64(g.GameID), g.Status.String(),
			int64(g.HomeTeamScore), int64(g.AwayTeamScore), data)
	}
	if err := a.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("archive %s snapshot: %w", sportID, err)
	}
	return nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (a *Archive) HealthCheck(ctx context.Context) error {
	var n int
	return a.pool.QueryRow(ctx, "health_check").Scan(&n)
}

// Close shuts down the connection pool.
func (a *Archive) Close() {
	a.pool.Close()
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		"insert_snapshot": `INSERT INTO game_snapshots
			(sport, game_id, status, home_score, away_score, state, captured_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())`,
	}
	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
