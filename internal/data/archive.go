package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/pkg/model"
)

type archiveRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportArchive(data *Data, logger log.Logger) biz.ReportArchive {
	return &archiveRepo{data: data, log: log.NewHelper(logger)}
}

func (r *archiveRepo) Record(ctx context.Context, report *model.Report) error {
	_, err := r.data.db.ExecContext(ctx, `
		INSERT INTO report_archive (id, url, company, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, report.ID, report.URL, report.CompanyProfile.Name, report.Timestamp)
	return err
}

func (r *archiveRepo) List(ctx context.Context, limit int) ([]*biz.ArchiveEntry, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, url, company, generated_at
		FROM report_archive
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*biz.ArchiveEntry
	for rows.Next() {
		var e biz.ArchiveEntry
		if err := rows.Scan(&e.ID, &e.URL, &e.Company, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
