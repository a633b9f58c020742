package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Add(ctx context.Context, m *domain.GroupMember) error {
	// (group_id, user_id) carries a unique constraint; a duplicate join
	// surfaces as a pq uniqueness violation.
	query := `INSERT INTO group_members (group_id, user_id, role, status, contributed_cents, joined_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	m.JoinedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		m.GroupID, m.UserID, m.Role, m.Status, m.ContributedCents, m.JoinedOn,
	).Scan(&m.ID)
}

func (r *memberRepository) Get(ctx context.Context, groupID, userID int32) (*domain.GroupMember, error) {
	query := `SELECT id, group_id, user_id, role, status, contributed_cents, joined_on
	          FROM group_members WHERE group_id = $1 AND user_id = $2`
	var m domain.GroupMember
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.Status, &m.ContributedCents, &m.JoinedOn)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) ListByGroup(ctx context.Context, groupID int32) ([]domain.GroupMember, error) {
	query := `SELECT id, group_id, user_id, role, status, contributed_cents, joined_on
	          FROM group_members WHERE group_id = $1 ORDER BY joined_on`
	return r.list(ctx, query, groupID)
}

func (r *memberRepository) ListPartners(ctx context.Context, groupID int32) ([]domain.GroupMember, error) {
	query := `SELECT id, group_id, user_id, role, status, contributed_cents, joined_on
	          FROM group_members WHERE group_id = $1 AND role = $2 AND status = $3 ORDER BY joined_on`
	return r.list(ctx, query, groupID, domain.MemberRolePartner, domain.MemberStatusActive)
}

func (r *memberRepository) CountPartners(ctx context.Context, groupID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM group_members WHERE group_id = $1 AND role = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, groupID, domain.MemberRolePartner, domain.MemberStatusActive).Scan(&count)
	return count, err
}

func (r *memberRepository) UpdateRole(ctx context.Context, groupID, userID int32, role domain.MemberRole) error {
	query := `UPDATE group_members SET role = $1 WHERE group_id = $2 AND user_id = $3`
	return r.execOne(ctx, query, role, groupID, userID)
}

func (r *memberRepository) UpdateStatus(ctx context.Context, groupID, userID int32, status domain.MemberStatus) error {
	query := `UPDATE group_members SET status = $1 WHERE group_id = $2 AND user_id = $3`
	return r.execOne(ctx, query, status, groupID, userID)
}

func (r *memberRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *memberRepository) list(ctx context.Context, query string, args ...any) ([]domain.GroupMember, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing group members: %w", err)
	}
	defer rows.Close()

	var members []domain.GroupMember
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.Status, &m.ContributedCents, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
