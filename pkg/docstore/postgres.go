package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// QueryObserver receives timing for each executed statement.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

const schema = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);`

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// Postgres stores documents as JSONB rows in a single table.
type Postgres struct {
	db       *sqlx.DB
	observer QueryObserver
	now      func() time.Time
}

// NewPostgres wraps an open connection. observer may be nil.
func NewPostgres(db *sqlx.DB, observer QueryObserver) *Postgres {
	return &Postgres{db: db, observer: observer, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureSchema creates the documents table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	defer p.observe("docstore_get", time.Now())
	const query = `SELECT id, data FROM documents WHERE collection = $1 AND id = $2`
	var row documentRow
	if err := p.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return &Snapshot{ID: row.ID, Data: row.Data}, nil
}

func (p *Postgres) Set(ctx context.Context, collection, id string, doc interface{}) error {
	defer p.observe("docstore_set", time.Now())
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	const query = `INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := p.db.ExecContext(ctx, query, collection, id, raw, p.now()); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (p *Postgres) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.NewString()
	if err := p.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	defer p.observe("docstore_update", time.Now())
	patch, err := encode(fields)
	if err != nil {
		return err
	}
	const query = `UPDATE documents SET data = data || $3::jsonb, updated_at = $4 WHERE collection = $1 AND id = $2`
	res, err := p.db.ExecContext(ctx, query, collection, id, patch, p.now())
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s/%s rows affected: %w", collection, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	defer p.observe("docstore_delete", time.Now())
	const query = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := p.db.ExecContext(ctx, query, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Query matches filters with JSONB containment, ordered by creation time.
func (p *Postgres) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	defer p.observe("docstore_query", time.Now())
	query := `SELECT id, data FROM documents WHERE collection = $1`
	args := []interface{}{collection}
	if len(q.Filters) > 0 {
		obj, err := filterObject(q.Filters)
		if err != nil {
			return nil, err
		}
		raw, err := encode(obj)
		if err != nil {
			return nil, err
		}
		query += ` AND data @> $2::jsonb`
		args = append(args, raw)
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	var rows []documentRow
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	out := make([]Snapshot, len(rows))
	for i, row := range rows {
		out[i] = Snapshot{ID: row.ID, Data: row.Data}
	}
	return out, nil
}

func (p *Postgres) observe(label string, start time.Time) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveDBQuery(label, time.Since(start))
}
