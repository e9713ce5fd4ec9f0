package store

import "context"

func (q *Queries) InsertRollRecord(ctx context.Context, r RollRecord) error {
	_, err := q.db.Exec(ctx, `INSERT INTO rolls (id, user_id, banner_id, result_name, rarity, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.UserID, r.BannerID, r.ResultName, r.Rarity, r.CreatedAt)
	return err
}

func (q *Queries) ListRollsByUser(ctx context.Context, userID string, limit, offset int) ([]RollRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.Query(ctx, `SELECT id, user_id, banner_id, result_name, rarity, created_at FROM rolls WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RollRecord{}
	for rows.Next() {
		var r RollRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.BannerID, &r.ResultName, &r.Rarity, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) InsertAdventureRecord(ctx context.Context, a AdventureRecord) error {
	_, err := q.db.Exec(ctx, `INSERT INTO adventures (id, user_id, success, reward, chance, summary, party, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.Success, a.Reward, a.Chance, a.Summary, a.Party, a.CreatedAt)
	return err
}

func (q *Queries) ListAdventuresByUser(ctx context.Context, userID string, limit int) ([]AdventureRecord, error) {
	if limit <= 0 {
		limit = 8
	}
	rows, err := q.db.Query(ctx, `SELECT id, user_id, success, reward, chance, summary, party, created_at FROM adventures WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AdventureRecord{}
	for rows.Next() {
		var a AdventureRecord
		if err := rows.Scan(&a.ID, &a.UserID, &a.Success, &a.Reward, &a.Chance, &a.Summary, &a.Party, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
