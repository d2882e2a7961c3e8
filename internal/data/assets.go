package data

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/internal/biz"
)

type assetRepo struct {
	data *Data
	log  *log.Helper
}

func NewAssetRepo(data *Data, logger log.Logger) biz.AssetRepo {
	return &assetRepo{data: data, log: log.NewHelper(logger)}
}

func (r *assetRepo) AddAsset(ctx context.Context, a *biz.Asset) error {
	return r.data.db.QueryRowContext(ctx, `
		INSERT INTO content_assets (name, url, kind) VALUES ($1, $2, $3)
		RETURNING id
	`, a.Name, a.URL, a.Kind).Scan(&a.ID)
}

func (r *assetRepo) ListAssets(ctx context.Context) ([]*biz.Asset, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, name, url, kind, created_at
		FROM content_assets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*biz.Asset
	for rows.Next() {
		var (
			a         biz.Asset
			createdAt time.Time
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.URL, &a.Kind, &createdAt); err != nil {
			return nil, err
		}
		a.CreatedAt = createdAt.UnixMilli()
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}
