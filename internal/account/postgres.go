package account

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/blackjacklab/internal/game"
	"github.com/lox/blackjacklab/internal/rules"
)

//go:embed schema.sql
var schema embed.FS

// PostgresStore is the durable profile store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects a pool and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, string(sqlBytes))
	return err
}

func (s *PostgresStore) Create(ctx context.Context, id, name string, bankroll int) (Account, error) {
	var acct Account
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accounts(id, name, bankroll)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, bankroll, total_hands, total_wins, total_losses,
		          biggest_win, biggest_loss,
		          COALESCE(last_played, 'epoch'::timestamptz), created_at
	`, id, name, bankroll).Scan(
		&acct.ID, &acct.Name, &acct.Bankroll,
		&acct.Stats.TotalHands, &acct.Stats.TotalWins, &acct.Stats.TotalLosses,
		&acct.Stats.BiggestWin, &acct.Stats.BiggestLoss,
		&acct.Stats.LastPlayed, &acct.CreatedAt,
	)
	return acct, err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Account, error) {
	var acct Account
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, bankroll, total_hands, total_wins, total_losses,
		       biggest_win, biggest_loss,
		       COALESCE(last_played, 'epoch'::timestamptz), created_at
		  FROM accounts WHERE id = $1
	`, id).Scan(
		&acct.ID, &acct.Name, &acct.Bankroll,
		&acct.Stats.TotalHands, &acct.Stats.TotalWins, &acct.Stats.TotalLosses,
		&acct.Stats.BiggestWin, &acct.Stats.BiggestLoss,
		&acct.Stats.LastPlayed, &acct.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return acct, err
}

func (s *PostgresStore) AdjustBankroll(ctx context.Context, id string, delta int) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accounts SET bankroll = bankroll + $2 WHERE id = $1
	`, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Append writes the round to the log and folds it into the career counters
// in one transaction.
func (s *PostgresStore) Append(ctx context.Context, rec game.GameRecord) error {
	handsJSON, err := json.Marshal(rec.Hands)
	if err != nil {
		return err
	}
	wins, losses := 0, 0
	for _, h := range rec.Hands {
		switch h.Outcome {
		case rules.OutcomeWin, rules.OutcomeBlackjack:
			wins++
		case rules.OutcomeLose:
			losses++
		}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed

	if _, err := tx.Exec(ctx, `
		INSERT INTO game_log(player_id, hands, outcome, total_bet, net_payout, played_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.PlayerID, handsJSON, string(rec.Outcome), rec.TotalBet, rec.NetPayout, rec.Timestamp); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		   SET total_hands  = total_hands + $2,
		       total_wins   = total_wins + $3,
		       total_losses = total_losses + $4,
		       biggest_win  = GREATEST(biggest_win, $5),
		       biggest_loss = LEAST(biggest_loss, $5),
		       last_played  = $6
		 WHERE id = $1
	`, rec.PlayerID, len(rec.Hands), wins, losses, rec.NetPayout, rec.Timestamp)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) History(ctx context.Context, id string, limit int) ([]game.GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT hands, outcome, total_bet, net_payout, played_at
		  FROM game_log
		 WHERE player_id = $1
		 ORDER BY played_at DESC
		 LIMIT $2
	`, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.GameRecord
	for rows.Next() {
		rec := game.GameRecord{PlayerID: id}
		var handsJSON []byte
		var outcome string
		if err := rows.Scan(&handsJSON, &outcome, &rec.TotalBet, &rec.NetPayout, &rec.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(handsJSON, &rec.Hands); err != nil {
			return nil, err
		}
		rec.Outcome = rules.Outcome(outcome)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveSettings(ctx context.Context, id string, set Settings) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO settings(player_id, data)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE
		  SET data = EXCLUDED.data, updated_at = now()
	`, id, data)
	return err
}

func (s *PostgresStore) LoadSettings(ctx context.Context, id string) (Settings, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `
		SELECT data FROM settings WHERE player_id = $1
	`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, ErrNotFound
	}
	if err != nil {
		return Settings{}, err
	}
	set := DefaultSettings()
	if err := json.Unmarshal(data, &set); err != nil {
		return Settings{}, err
	}
	return set, nil
}
