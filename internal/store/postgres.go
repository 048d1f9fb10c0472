package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// Schema creates the tables used by Postgres.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	job_number TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS project_budgets (
	project_id              TEXT PRIMARY KEY REFERENCES projects(id),
	labor                   NUMERIC(18,2) NOT NULL,
	materials               NUMERIC(18,2) NOT NULL,
	equipment               NUMERIC(18,2) NOT NULL,
	subcontracts            NUMERIC(18,2) NOT NULL,
	small_tools_consumables NUMERIC(18,2) NOT NULL,
	other                   NUMERIC(18,2) NOT NULL,
	total                   NUMERIC(18,2) NOT NULL,
	other_descriptions      TEXT[] NOT NULL DEFAULT '{}',
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS budget_breakdown (
	project_id TEXT NOT NULL REFERENCES projects(id),
	discipline TEXT NOT NULL,
	cost_type  TEXT NOT NULL,
	category   TEXT NOT NULL,
	manhours   NUMERIC(14,2),
	value      NUMERIC(18,2) NOT NULL,
	PRIMARY KEY (project_id, discipline, cost_type)
);

CREATE TABLE IF NOT EXISTS budget_import_audit (
	id           UUID PRIMARY KEY,
	run_id       UUID NOT NULL,
	project_id   TEXT NOT NULL,
	file_name    TEXT NOT NULL,
	total_budget NUMERIC(18,2) NOT NULL,
	row_count    INTEGER NOT NULL,
	totals       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
`

// Postgres stores budgets in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool for the given database URL.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Close closes the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Migrate creates missing tables.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return wrapError(err)
	}
	return nil
}

// LookupProject returns the project or nil when unknown.
func (p *Postgres) LookupProject(ctx context.Context, id string) (*models.Project, error) {
	var pr models.Project
	err := p.pool.QueryRow(ctx,
		`SELECT id, job_number, name FROM projects WHERE id = $1`, id,
	).Scan(&pr.ID, &pr.JobNumber, &pr.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return &pr, nil
}

// ReplaceBreakdown deletes a project's rows and inserts the new set in one
// transaction, so readers never see a mix of old and new rows.
func (p *Postgres) ReplaceBreakdown(ctx context.Context, projectID string, rows []models.BreakdownRow, totals models.BudgetTotals) (bool, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return false, wrapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existed bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM project_budgets WHERE project_id = $1)`, projectID,
	).Scan(&existed); err != nil {
		return false, wrapError(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM budget_breakdown WHERE project_id = $1`, projectID); err != nil {
		return false, wrapError(err)
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO budget_breakdown (project_id, discipline, cost_type, category, manhours, value)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (project_id, discipline, cost_type) DO UPDATE
			SET category = EXCLUDED.category, manhours = EXCLUDED.manhours, value = EXCLUDED.value`,
			projectID, r.Discipline, r.CostType, r.Category.String(), r.Manhours, r.Value)
	}
	br := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return false, wrapError(err)
		}
	}
	if err := br.Close(); err != nil {
		return false, wrapError(err)
	}

	others := totals.OtherDescriptions
	if others == nil {
		others = []string{}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO project_budgets (project_id, labor, materials, equipment, subcontracts,
			small_tools_consumables, other, total, other_descriptions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (project_id) DO UPDATE SET
			labor = EXCLUDED.labor,
			materials = EXCLUDED.materials,
			equipment = EXCLUDED.equipment,
			subcontracts = EXCLUDED.subcontracts,
			small_tools_consumables = EXCLUDED.small_tools_consumables,
			other = EXCLUDED.other,
			total = EXCLUDED.total,
			other_descriptions = EXCLUDED.other_descriptions,
			updated_at = now()`,
		projectID, totals.Labor, totals.Materials, totals.Equipment, totals.Subcontracts,
		totals.SmallToolsConsumables, totals.Other, totals.Sum(), others,
	); err != nil {
		return false, wrapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, wrapError(err)
	}
	return !existed, nil
}

// AppendImport writes an audit row.
func (p *Postgres) AppendImport(ctx context.Context, entry models.AuditEntry) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO budget_import_audit (id, run_id, project_id, file_name, total_budget, row_count, totals, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.RunID, entry.ProjectID, entry.FileName,
		entry.TotalBudget, entry.RowCount, entry.Totals, entry.CreatedAt)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError converts driver errors into a PersistenceError, keeping the
// server's message, detail, hint and SQLSTATE code when there is one.
func wrapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &models.PersistenceError{
			Message: pgErr.Message,
			Detail:  pgErr.Detail,
			Hint:    pgErr.Hint,
			Code:    pgErr.Code,
			Err:     err,
		}
	}
	return &models.PersistenceError{Message: err.Error(), Err: err}
}
