package postgres

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (phone_number, name, email, password_hash, phone_verified, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	user.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		user.PhoneNumber, user.Name, user.Email, user.PasswordHash, user.PhoneVerified, user.CreatedOn,
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, phone_number, name, COALESCE(email, ''), password_hash, phone_verified, created_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT id, phone_number, name, COALESCE(email, ''), password_hash, phone_verified, created_on
	          FROM users WHERE phone_number = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, phone))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name = $1, email = $2, password_hash = $3, phone_verified = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.PhoneVerified, user.ID)
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.PhoneNumber, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneVerified, &u.CreatedOn); err != nil {
		return nil, err
	}
	return &u, nil
}
