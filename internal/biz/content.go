package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
)

// Asset is a content-hub item: an image or collateral link attached to the
// workspace, independent of any single report.
type Asset struct {
	ID        int
	Name      string
	URL       string
	Kind      string // "upload" or "url"
	CreatedAt int64
}

type AssetRepo interface {
	AddAsset(ctx context.Context, a *Asset) error
	ListAssets(ctx context.Context) ([]*Asset, error)
}

type ContentUseCase struct {
	repo AssetRepo
	log  *log.Helper
}

func NewContentUseCase(repo AssetRepo, logger log.Logger) *ContentUseCase {
	return &ContentUseCase{repo: repo, log: log.NewHelper(logger)}
}

func (uc *ContentUseCase) Add(ctx context.Context, name, url, kind string) error {
	if kind == "" {
		kind = "url"
	}
	return uc.repo.AddAsset(ctx, &Asset{Name: name, URL: url, Kind: kind})
}

func (uc *ContentUseCase) List(ctx context.Context) ([]*Asset, error) {
	return uc.repo.ListAssets(ctx)
}
