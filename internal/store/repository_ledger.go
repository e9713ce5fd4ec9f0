package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInsufficientBalance = errors.New("insufficient_balance")

func (q *Queries) InsertLedgerEntry(ctx context.Context, userID, entryType string, amount int64, refType, refID string) error {
	_, err := q.db.Exec(ctx, `INSERT INTO ledger_entries (id, user_id, type, amount, ref_type, ref_id) VALUES ($1,$2,$3,$4,$5,$6)`,
		NewID(), userID, entryType, amount, refType, refID)
	return err
}

// Debit runs as its own transaction with the user row locked. The engines
// use WithTx instead; this is for standalone adjustments like admin topups.
func (s *Store) Debit(ctx context.Context, userID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be positive")
	}
	var newBal int64
	err := s.WithTx(ctx, func(q *Queries) error {
		u, err := q.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u.Balance < amount {
			return ErrInsufficientBalance
		}
		newBal = u.Balance - amount
		if err := q.UpdateUserBalancePity(ctx, userID, newBal, u.PityRare, u.PityUltra); err != nil {
			return err
		}
		return q.InsertLedgerEntry(ctx, userID, entryType, -amount, refType, refID)
	})
	if err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) Credit(ctx context.Context, userID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount < 0 {
		return 0, errors.New("amount must be positive")
	}
	var newBal int64
	err := s.WithTx(ctx, func(q *Queries) error {
		u, err := q.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		newBal = u.Balance + amount
		if err := q.UpdateUserBalancePity(ctx, userID, newBal, u.PityRare, u.PityUltra); err != nil {
			return err
		}
		return q.InsertLedgerEntry(ctx, userID, entryType, amount, refType, refID)
	})
	if err != nil {
		return 0, err
	}
	return newBal, nil
}

type LedgerFilter struct {
	UserID string
	Type   string
	From   *time.Time
	To     *time.Time
}

func (q *Queries) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	where := "WHERE 1=1"
	args := []any{}
	if f.UserID != "" {
		args = append(args, f.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	args = append(args, limit, offset)
	sql := `SELECT id, user_id, type, amount, ref_type, ref_id, created_at FROM ledger_entries ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
