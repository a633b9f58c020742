package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harambee-backend/internal/domain"
)

type userRepo struct {
	d *data
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.PhoneNumber == user.PhoneNumber {
			return fmt.Errorf("phone number %s already registered", user.PhoneNumber)
		}
	}
	user.ID = r.d.id()
	user.CreatedOn = time.Now()
	cp := *user
	r.d.users[user.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *user
	r.d.users[user.ID] = &cp
	return nil
}
