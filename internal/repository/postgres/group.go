package postgres

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `INSERT INTO groups (name, slug, registration_token, admin_id, currency, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	group.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		group.Name, group.Slug, group.RegistrationToken, group.AdminID, group.Currency, group.CreatedOn,
	).Scan(&group.ID)
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	query := `SELECT id, name, slug, registration_token, admin_id, COALESCE(currency, ''), created_on
	          FROM groups WHERE id = $1`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, id))
}

func (r *groupRepository) GetByRegistrationToken(ctx context.Context, token string) (*domain.Group, error) {
	query := `SELECT id, name, slug, registration_token, admin_id, COALESCE(currency, ''), created_on
	          FROM groups WHERE registration_token = $1`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, token))
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	query := `SELECT id, name, slug, registration_token, admin_id, COALESCE(currency, ''), created_on
	          FROM groups WHERE slug = $1`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, slug))
}

func (r *groupRepository) Update(ctx context.Context, group *domain.Group) error {
	query := `UPDATE groups SET name = $1, slug = $2, currency = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, group.Name, group.Slug, group.Currency, group.ID)
	return err
}

func (r *groupRepository) scanGroup(row *sql.Row) (*domain.Group, error) {
	var g domain.Group
	if err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.RegistrationToken, &g.AdminID, &g.Currency, &g.CreatedOn); err != nil {
		return nil, err
	}
	return &g, nil
}
