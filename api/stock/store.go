package stock

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"SellerPulse/internal/stockledger"
)

// LedgerStore persists the per-tenant balance table. Every write replaces
// the full row attributes; field-level patches are not supported.
type LedgerStore struct {
	pool *pgxpool.Pool
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Load returns the tenant's balance rows ordered by key.
func (s *LedgerStore) Load(ctx context.Context, ownerID string) ([]stockledger.BalanceRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT article_group, size, quantity, item_name, location, note
		FROM stock_ledger WHERE owner_id = $1
		ORDER BY article_group, size`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stockledger.BalanceRow
	for rows.Next() {
		var b stockledger.BalanceRow
		if err := rows.Scan(&b.Key.ArticleGroup, &b.Key.Size, &b.Quantity, &b.Name, &b.Location, &b.Note); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Replace swaps the tenant's whole balance table for the given rows inside
// one transaction, so a concurrent reconciliation for the same tenant never
// observes the gap between delete and insert.
func (s *LedgerStore) Replace(ctx context.Context, ownerID string, balance []stockledger.BalanceRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			log.Printf("[ERROR] rollback failed: %v", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM stock_ledger WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to clear balance: %w", err)
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO stock_ledger
		(owner_id, article_group, size, quantity, item_name, location, note, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	for _, b := range balance {
		batch.Queue(query, ownerID, b.Key.ArticleGroup, b.Key.Size, b.Quantity, b.Name, b.Location, b.Note)
	}
	br := tx.SendBatch(ctx, batch)
	for range balance {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert balance row: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Upsert merges the given rows into the tenant's balance without touching
// keys outside the set.
func (s *LedgerStore) Upsert(ctx context.Context, ownerID string, balance []stockledger.BalanceRow) error {
	batch := &pgx.Batch{}
	query := `INSERT INTO stock_ledger
		(owner_id, article_group, size, quantity, item_name, location, note, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (owner_id, article_group, size)
		DO UPDATE SET quantity = EXCLUDED.quantity, item_name = EXCLUDED.item_name,
			location = EXCLUDED.location, note = EXCLUDED.note, updated_at = now()`
	for _, b := range balance {
		batch.Queue(query, ownerID, b.Key.ArticleGroup, b.Key.Size, b.Quantity, b.Name, b.Location, b.Note)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range balance {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert balance row: %w", err)
		}
	}
	return nil
}

// Reset deletes the tenant's whole balance table.
func (s *LedgerStore) Reset(ctx context.Context, ownerID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM stock_ledger WHERE owner_id = $1`, ownerID)
	return err
}
