package store

import (
	"context"
	"errors"
	"time"
)

const userColumns = `id, username, api_key_hash, balance, pity_rare, pity_ultra, last_adventure_at, best_adventure_score, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.APIKeyHash, &u.Balance, &u.PityRare, &u.PityUltra, &u.LastAdventureAt, &u.BestAdventureScore, &u.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (q *Queries) GetUser(ctx context.Context, id string) (*User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserForUpdate locks the user row for the rest of the transaction. Every
// engine mutation goes through this lock, which serializes concurrent
// batches for the same user.
func (q *Queries) GetUserForUpdate(ctx context.Context, id string) (*User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	return scanUser(row)
}

func (q *Queries) GetUserByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE api_key_hash = $1`, HashAPIKey(apiKey))
	return scanUser(row)
}

func (q *Queries) CreateUser(ctx context.Context, username, apiKey string, initial int64) (string, error) {
	id := NewID()
	_, err := q.db.Exec(ctx, `INSERT INTO users (id, username, api_key_hash, balance) VALUES ($1,$2,$3,$4)`,
		id, username, HashAPIKey(apiKey), initial)
	return id, err
}

func (q *Queries) EnsureUser(ctx context.Context, username, apiKey string, initial int64) error {
	_, err := q.db.Exec(ctx, `INSERT INTO users (id, username, api_key_hash, balance) VALUES ($1,$2,$3,$4) ON CONFLICT (username) DO NOTHING`,
		NewID(), username, HashAPIKey(apiKey), initial)
	return err
}

func (q *Queries) UpdateUserBalancePity(ctx context.Context, id string, balance int64, pityRare, pityUltra int) error {
	if balance < 0 {
		return errors.New("negative balance")
	}
	_, err := q.db.Exec(ctx, `UPDATE users SET balance = $1, pity_rare = $2, pity_ultra = $3 WHERE id = $4`,
		balance, pityRare, pityUltra, id)
	return err
}

func (q *Queries) UpdateUserAdventure(ctx context.Context, id string, balance int64, lastAdventureAt time.Time, bestScore int) error {
	if balance < 0 {
		return errors.New("negative balance")
	}
	_, err := q.db.Exec(ctx, `UPDATE users SET balance = $1, last_adventure_at = $2, best_adventure_score = $3 WHERE id = $4`,
		balance, lastAdventureAt, bestScore, id)
	return err
}
