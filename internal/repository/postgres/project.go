package postgres

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (group_id, name, slug, target_cents, collected_cents, deadline, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	p.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.GroupID, p.Name, p.Slug, p.TargetCents, p.CollectedCents, p.Deadline, p.Status, p.CreatedOn,
	).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	query := `SELECT id, group_id, name, slug, target_cents, collected_cents, deadline, status, created_on
	          FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *projectRepository) GetBySlug(ctx context.Context, groupID int32, slug string) (*domain.Project, error) {
	query := `SELECT id, group_id, name, slug, target_cents, collected_cents, deadline, status, created_on
	          FROM projects WHERE group_id = $1 AND slug = $2`
	return scanProject(r.db.QueryRowContext(ctx, query, groupID, slug))
}

func (r *projectRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.Project, error) {
	query := `SELECT id, group_id, name, slug, target_cents, collected_cents, deadline, status, created_on
	          FROM projects WHERE group_id = $1 ORDER BY created_on`
	return r.list(ctx, query, groupID)
}

func (r *projectRepository) ListDueBefore(ctx context.Context, deadline time.Time) ([]domain.Project, error) {
	query := `SELECT id, group_id, name, slug, target_cents, collected_cents, deadline, status, created_on
	          FROM projects WHERE status = $1 AND deadline IS NOT NULL AND deadline <= $2 AND deadline > now()`
	return r.list(ctx, query, domain.ProjectStatusActive, deadline)
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = $1, slug = $2, target_cents = $3, deadline = $4, status = $5 WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Slug, p.TargetCents, p.Deadline, p.Status, p.ID)
	return err
}

func (r *projectRepository) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Slug, &p.TargetCents, &p.CollectedCents, &p.Deadline, &p.Status, &p.CreatedOn); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.GroupID, &p.Name, &p.Slug, &p.TargetCents, &p.CollectedCents, &p.Deadline, &p.Status, &p.CreatedOn); err != nil {
		return nil, err
	}
	return &p, nil
}
