// Package memory is an in-process Store used by tests and local
// development. It implements the same repository interfaces as the
// postgres package, including the conditional-update and atomic-increment
// primitives the contribution ledger relies on.
package memory

import (
	"sync"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/repository"
)

// data is the shared backing state; every sub-repository locks it through
// the one mutex, which is all the atomicity the in-process variant needs.
type data struct {
	mu sync.Mutex

	nextID        int32
	users         map[int32]*domain.User
	groups        map[int32]*domain.Group
	members       map[int32]*domain.GroupMember
	projects      map[int32]*domain.Project
	contributions map[int32]*domain.Contribution
	notifications map[int32]*domain.Notification
	otps          map[int32]*domain.OTPVerification
}

// id must be called with d.mu held.
func (d *data) id() int32 {
	d.nextID++
	return d.nextID
}

func (d *data) findMember(groupID, userID int32) *domain.GroupMember {
	for _, m := range d.members {
		if m.GroupID == groupID && m.UserID == userID {
			return m
		}
	}
	return nil
}

type Store struct {
	Users         repository.UserRepository
	Groups        repository.GroupRepository
	Members       repository.MemberRepository
	Projects      repository.ProjectRepository
	Contributions repository.ContributionRepository
	Ledger        repository.LedgerRepository
	Notifications repository.NotificationRepository
	OTPs          repository.OTPRepository
}

func NewStore() *Store {
	d := &data{
		users:         make(map[int32]*domain.User),
		groups:        make(map[int32]*domain.Group),
		members:       make(map[int32]*domain.GroupMember),
		projects:      make(map[int32]*domain.Project),
		contributions: make(map[int32]*domain.Contribution),
		notifications: make(map[int32]*domain.Notification),
		otps:          make(map[int32]*domain.OTPVerification),
	}
	return &Store{
		Users:         &userRepo{d},
		Groups:        &groupRepo{d},
		Members:       &memberRepo{d},
		Projects:      &projectRepo{d},
		Contributions: &contributionRepo{d},
		Ledger:        &ledgerRepo{d},
		Notifications: &notificationRepo{d},
		OTPs:          &otpRepo{d},
	}
}
