package store

import (
	"context"
)

const itemColumns = `id, user_id, name, rarity, banner_id, obtained_at`

func (q *Queries) InsertItem(ctx context.Context, it Item) error {
	_, err := q.db.Exec(ctx, `INSERT INTO items (id, user_id, name, rarity, banner_id, obtained_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		it.ID, it.UserID, it.Name, it.Rarity, it.BannerID, it.ObtainedAt)
	return err
}

func (q *Queries) ListItemsByUser(ctx context.Context, userID string, limit, offset int) ([]Item, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE user_id = $1 ORDER BY obtained_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.BannerID, &it.ObtainedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetOwnedItems resolves ids against the user's inventory. Items come back
// keyed by id; callers reorder to match their request.
func (q *Queries) GetOwnedItems(ctx context.Context, userID string, ids []string) (map[string]Item, error) {
	if len(ids) == 0 {
		return map[string]Item{}, nil
	}
	rows, err := q.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]Item, len(ids))
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.BannerID, &it.ObtainedAt); err != nil {
			return nil, err
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

// GetBestItemByUser returns the user's highest-rarity item, newest first on
// ties. ErrNotFound when the inventory is empty.
func (q *Queries) GetBestItemByUser(ctx context.Context, userID string) (*Item, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE user_id = $1
		ORDER BY CASE rarity WHEN 'ultra' THEN 3 WHEN 'rare' THEN 2 WHEN 'common' THEN 1 ELSE 0 END DESC,
		         obtained_at DESC
		LIMIT 1
	`, userID)
	var it Item
	if err := row.Scan(&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.BannerID, &it.ObtainedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (q *Queries) CountItemsByUser(ctx context.Context, userID string) (int, error) {
	var c int
	if err := q.db.QueryRow(ctx, `SELECT COUNT(1) FROM items WHERE user_id = $1`, userID).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}
