package dataset

import (
	"context"

	"github.com/bolide-group/impact-cli/internal/fetcher"
)

// xlsxSource reads one worksheet of an XLSX workbook. The first row is the
// header and supplies field names, like the CSV source.
type xlsxSource struct {
	spec     SourceSpec
	fetchers *Fetchers
}

func (s *xlsxSource) Name() string { return s.spec.Name }

func (s *xlsxSource) Load(ctx context.Context) ([]map[string]any, error) {
	local, err := s.fetchers.Resolve(ctx, s.spec.Location)
	if err != nil {
		return nil, err
	}

	rows, err := fetcher.ReadXLSX(local, fetcher.XLSXOptions{SheetName: s.spec.Sheet})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowRecord(header, row))
	}
	return records, nil
}
