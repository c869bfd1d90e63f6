package dataset

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// PGQuerier is the minimal pgx surface the postgres source needs. pgxpool
// satisfies it in production, pgxmock in tests.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// postgresSource reads city records from a PostgreSQL table or query.
// Location is the connection string.
type postgresSource struct {
	spec SourceSpec

	// pool, when set, replaces the connection made from Location.
	pool PGQuerier
}

// NewPostgresSource builds a postgres source over an existing pool. Used by
// tests and by callers that manage their own connections.
func NewPostgresSource(spec SourceSpec, pool PGQuerier) Source {
	return &postgresSource{spec: spec, pool: pool}
}

func (s *postgresSource) Name() string { return s.spec.Name }

func (s *postgresSource) query() (string, error) {
	if s.spec.Query != "" {
		return s.spec.Query, nil
	}
	if s.spec.Table != "" {
		return "SELECT * FROM " + s.spec.Table, nil
	}
	return "", eris.Errorf("dataset: source %s needs a table or query", s.spec.Name)
}

func (s *postgresSource) Load(ctx context.Context) ([]map[string]any, error) {
	query, err := s.query()
	if err != nil {
		return nil, err
	}

	pool := s.pool
	if pool == nil {
		p, err := pgxpool.New(ctx, s.spec.Location)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: connect source %s", s.spec.Name)
		}
		defer p.Close()
		pool = p
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query source %s", s.spec.Name)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: scan source %s", s.spec.Name)
		}
		rec := make(map[string]any, len(fields))
		for i, fd := range fields {
			if i < len(values) {
				rec[fd.Name] = values[i]
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "dataset: iterate source %s", s.spec.Name)
	}
	return records, nil
}
