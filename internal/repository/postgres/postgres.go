package postgres

import (
	"database/sql"

	"harambee-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GroupRepository
	repository.MemberRepository
	repository.ProjectRepository
	repository.ContributionRepository
	repository.LedgerRepository
	repository.NotificationRepository
	repository.OTPRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		GroupRepository:        NewGroupRepository(db),
		MemberRepository:       NewMemberRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		ContributionRepository: NewContributionRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		OTPRepository:          NewOTPRepository(db),
	}
}
