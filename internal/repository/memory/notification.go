package memory

import (
	"context"
	"database/sql"
	"time"

	"harambee-backend/internal/domain"
)

type notificationRepo struct {
	d *data
}

func (r *notificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	note.ID = r.d.id()
	note.CreatedOn = time.Now()
	cp := *note
	r.d.notifications[note.ID] = &cp
	return nil
}

func (r *notificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var all []domain.Notification
	for id := int32(1); id <= r.d.nextID; id++ {
		if n, ok := r.d.notifications[id]; ok && n.UserID == userID {
			all = append(all, *n)
		}
	}
	total := int32(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *notificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	n, ok := r.d.notifications[id]
	if !ok || n.UserID != userID {
		return sql.ErrNoRows
	}
	n.IsRead = true
	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, id, userID int32) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	n, ok := r.d.notifications[id]
	if !ok || n.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.d.notifications, id)
	return nil
}
