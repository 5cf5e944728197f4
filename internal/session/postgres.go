package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/easycod/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Statements are named constants so the schema test can cross-check every
// referenced column against the sessions migration.
const (
	sqlSessionFlag = `SELECT COALESCE((flags ->> $2)::boolean, false) FROM sessions WHERE session_id = $1`

	sqlSetSessionFlag = `
		INSERT INTO sessions (session_id, flags)
		VALUES ($1, jsonb_build_object($2::text, true))
		ON CONFLICT (session_id) DO UPDATE
		SET flags = sessions.flags || jsonb_build_object($2::text, true),
		    updated_at = now()`

	sqlSessionCart = `SELECT cart FROM sessions WHERE session_id = $1`

	sqlSaveSessionCart = `
		INSERT INTO sessions (session_id, cart)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO UPDATE
		SET cart = EXCLUDED.cart, updated_at = now()`
)

// PGStore is a Postgres-backed Store. Sessions are upserted lazily on first
// write; reads against unknown sessions return zero values, not errors.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres session store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Flag(ctx context.Context, sessionID, name string) (bool, error) {
	var set bool
	err := s.pool.QueryRow(ctx, sqlSessionFlag, sessionID, name).Scan(&set)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session flag: %w", err)
	}
	return set, nil
}

func (s *PGStore) SetFlag(ctx context.Context, sessionID, name string) error {
	_, err := s.pool.Exec(ctx, sqlSetSessionFlag, sessionID, name)
	if err != nil {
		return fmt.Errorf("set session flag: %w", err)
	}
	return nil
}

func (s *PGStore) Cart(ctx context.Context, sessionID string) (*domain.CartSnapshot, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, sqlSessionCart, sessionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session cart: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var snap domain.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode session cart: %w", err)
	}
	return &snap, nil
}

func (s *PGStore) SaveCart(ctx context.Context, sessionID string, snap domain.CartSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session cart: %w", err)
	}
	_, err = s.pool.Exec(ctx, sqlSaveSessionCart, sessionID, raw)
	if err != nil {
		return fmt.Errorf("save session cart: %w", err)
	}
	return nil
}
