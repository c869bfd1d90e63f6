package dataset

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// sqliteSource reads city records from a local SQLite database. Location is
// the database path (or DSN); the query defaults to SELECT * FROM the
// configured table.
type sqliteSource struct {
	spec SourceSpec
}

func (s *sqliteSource) Name() string { return s.spec.Name }

func (s *sqliteSource) query() (string, error) {
	if s.spec.Query != "" {
		return s.spec.Query, nil
	}
	if s.spec.Table != "" {
		return "SELECT * FROM " + s.spec.Table, nil
	}
	return "", eris.Errorf("dataset: source %s needs a table or query", s.spec.Name)
}

func (s *sqliteSource) Load(ctx context.Context) ([]map[string]any, error) {
	query, err := s.query()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", s.spec.Location)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open sqlite %s", s.spec.Location)
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query source %s", s.spec.Name)
	}
	defer rows.Close() //nolint:errcheck

	columns, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read columns")
	}

	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrapf(err, "dataset: scan source %s", s.spec.Name)
		}

		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec[col] = v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "dataset: iterate source %s", s.spec.Name)
	}
	return records, nil
}
