package store

import (
	"context"
)

const bannerColumns = `id, name, start_at, end_at, rates, pool, is_active`

func scanBanner(row interface{ Scan(...any) error }) (*Banner, error) {
	var b Banner
	if err := row.Scan(&b.ID, &b.Name, &b.StartAt, &b.EndAt, &b.Rates, &b.Pool, &b.IsActive); err != nil {
		return nil, mapNotFound(err)
	}
	return &b, nil
}

func (q *Queries) GetBanner(ctx context.Context, id string) (*Banner, error) {
	row := q.db.QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id)
	return scanBanner(row)
}

func (q *Queries) ListActiveBanners(ctx context.Context) ([]Banner, error) {
	rows, err := q.db.Query(ctx, `SELECT `+bannerColumns+` FROM banners WHERE is_active ORDER BY start_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Banner{}
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Name, &b.StartAt, &b.EndAt, &b.Rates, &b.Pool, &b.IsActive); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertBanner is the hook the external seeding process calls. The engines
// themselves only ever read banners.
func (q *Queries) UpsertBanner(ctx context.Context, b Banner) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO banners (id, name, start_at, end_at, rates, pool, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    start_at = EXCLUDED.start_at,
		    end_at = EXCLUDED.end_at,
		    rates = EXCLUDED.rates,
		    pool = EXCLUDED.pool,
		    is_active = EXCLUDED.is_active
	`, b.ID, b.Name, b.StartAt, b.EndAt, b.Rates, b.Pool, b.IsActive)
	return err
}

// SetBannerActive is the hook the external window scheduler calls.
func (q *Queries) SetBannerActive(ctx context.Context, id string, active bool) error {
	tag, err := q.db.Exec(ctx, `UPDATE banners SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
