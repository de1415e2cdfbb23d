package sandbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"archsandbox/internal/graph"
)

func (s *Store) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS sandboxes (
  sandbox_id TEXT PRIMARY KEY,
  project_name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  architecture JSONB NOT NULL,
  tech_stack JSONB NOT NULL DEFAULT '[]',
  total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  is_public BOOLEAN NOT NULL DEFAULT TRUE,
  views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sandboxes_created_at ON sandboxes (created_at DESC);
`)
	})
	return s.schemaErr
}

func (s *Store) insertDB(ctx context.Context, in Sandbox) (bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return false, err
	}
	archJSON, err := json.Marshal(in.Architecture)
	if err != nil {
		return false, fmt.Errorf("sandbox: encode architecture: %w", err)
	}
	stackJSON, err := json.Marshal(in.TechStack)
	if err != nil {
		return false, fmt.Errorf("sandbox: encode tech stack: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO sandboxes (
  sandbox_id, project_name, description, architecture, tech_stack,
  total_cost, created_at, updated_at, is_public, views
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (sandbox_id) DO NOTHING`,
		in.ID, in.ProjectName, in.Description, archJSON, stackJSON,
		in.TotalCost, in.CreatedAt, in.UpdatedAt, in.IsPublic, in.Views)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) getDB(ctx context.Context, id string) (Sandbox, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Sandbox{}, err
	}
	row := s.db.QueryRowContext(ctx, `
UPDATE sandboxes SET views = views + 1
WHERE sandbox_id = $1
RETURNING sandbox_id, project_name, description, architecture, tech_stack,
  total_cost, created_at, updated_at, is_public, views`, id)

	var (
		sb        Sandbox
		archJSON  []byte
		stackJSON []byte
	)
	err := row.Scan(&sb.ID, &sb.ProjectName, &sb.Description, &archJSON, &stackJSON,
		&sb.TotalCost, &sb.CreatedAt, &sb.UpdatedAt, &sb.IsPublic, &sb.Views)
	if err == sql.ErrNoRows {
		return Sandbox{}, ErrNotFound
	}
	if err != nil {
		return Sandbox{}, err
	}
	if err := json.Unmarshal(archJSON, &sb.Architecture); err != nil {
		sb.Architecture = graph.Graph{}
	}
	if err := json.Unmarshal(stackJSON, &sb.TechStack); err != nil {
		sb.TechStack = nil
	}
	return sb, nil
}

func (s *Store) listDB(ctx context.Context, f Filters) ([]ListItem, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	where := []string{"is_public = TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		where = append(where, "project_name ILIKE "+arg("%"+f.Search+"%"))
	}
	if len(f.Tags) > 0 {
		// tech_stack is a JSONB string array; match any of the given tags.
		where = append(where, `EXISTS (
  SELECT 1 FROM jsonb_array_elements_text(tech_stack) AS t
  WHERE lower(t) = ANY(string_to_array(lower(`+arg(strings.Join(f.Tags, ","))+`), ','))
)`)
	}
	if f.MinCost != nil {
		where = append(where, "total_cost >= "+arg(*f.MinCost))
	}
	if f.MaxCost != nil {
		where = append(where, "total_cost <= "+arg(*f.MaxCost))
	}

	query := `
SELECT sandbox_id, project_name, description, tech_stack, total_cost, created_at, views
FROM sandboxes
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY created_at DESC
LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListItem, 0, f.Limit)
	for rows.Next() {
		var (
			item      ListItem
			stackJSON []byte
		)
		if err := rows.Scan(&item.ID, &item.ProjectName, &item.Description,
			&stackJSON, &item.TotalCost, &item.CreatedAt, &item.Views); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(stackJSON, &item.TechStack); err != nil {
			item.TechStack = nil
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
