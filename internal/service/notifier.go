package service

import (
	"context"
	"fmt"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository"
)

type notifier struct {
	noteRepo   repository.NotificationRepository
	groupRepo  repository.GroupRepository
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
	email      EmailService // optional; nil disables email delivery
}

func NewNotifier(
	noteRepo repository.NotificationRepository,
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	email EmailService,
) Notifier {
	return &notifier{
		noteRepo:   noteRepo,
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		email:      email,
	}
}

// ContributionSubmitted alerts everyone who can decide the claim: the group
// admin plus the accountability partners. The contributor themselves is not
// notified about their own submission.
func (n *notifier) ContributionSubmitted(ctx context.Context, c *domain.Contribution) {
	group, err := n.groupRepo.GetByID(ctx, c.GroupID)
	if err != nil {
		logger.Error("Cannot notify submission, group lookup failed", "group_id", c.GroupID, "error", err)
		return
	}
	contributor, err := n.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		logger.Error("Cannot notify submission, contributor lookup failed", "user_id", c.UserID, "error", err)
		return
	}

	amount := domain.FormatAmount(group.Currency, c.AmountCents)
	title := "New contribution to review"
	message := fmt.Sprintf("%s submitted %s to %s. Please confirm or reject it.", contributor.Name, amount, group.Name)

	recipients := map[int32]bool{group.AdminID: true}
	partners, err := n.memberRepo.ListPartners(ctx, c.GroupID)
	if err != nil {
		logger.Warn("Partner lookup failed, notifying admin only", "group_id", c.GroupID, "error", err)
	}
	for _, p := range partners {
		recipients[p.UserID] = true
	}
	delete(recipients, c.UserID)

	for userID := range recipients {
		n.persist(ctx, &domain.Notification{
			UserID:         userID,
			Type:           domain.NotificationPaymentSubmitted,
			Title:          title,
			Message:        message,
			ContributionID: &c.ID,
			ProjectID:      c.ProjectID,
		})
	}

	n.sendEmail(ctx, group.AdminID, func(to string) error {
		return n.email.SendContributionSubmitted(ctx, to, contributor.Name, group.Name, amount)
	})
}

func (n *notifier) ContributionConfirmed(ctx context.Context, c *domain.Contribution) {
	n.notifyReviewed(ctx, c, true, "")
}

func (n *notifier) ContributionRejected(ctx context.Context, c *domain.Contribution, reason string) {
	n.notifyReviewed(ctx, c, false, reason)
}

// notifyReviewed tells the contributor the outcome of their claim.
func (n *notifier) notifyReviewed(ctx context.Context, c *domain.Contribution, confirmed bool, reason string) {
	group, err := n.groupRepo.GetByID(ctx, c.GroupID)
	if err != nil {
		logger.Error("Cannot notify review, group lookup failed", "group_id", c.GroupID, "error", err)
		return
	}
	amount := domain.FormatAmount(group.Currency, c.AmountCents)

	note := &domain.Notification{
		UserID:         c.UserID,
		ContributionID: &c.ID,
		ProjectID:      c.ProjectID,
	}
	if confirmed {
		note.Type = domain.NotificationPaymentConfirmed
		note.Title = "Contribution confirmed"
		note.Message = fmt.Sprintf("Your contribution of %s to %s has been confirmed.", amount, group.Name)
	} else {
		note.Type = domain.NotificationPaymentRejected
		note.Title = "Contribution rejected"
		note.Message = fmt.Sprintf("Your contribution of %s to %s was rejected.", amount, group.Name)
		if reason != "" {
			note.Message += " Reason: " + reason
		}
	}
	n.persist(ctx, note)

	n.sendEmail(ctx, c.UserID, func(to string) error {
		return n.email.SendContributionReviewed(ctx, to, group.Name, amount, confirmed, reason)
	})
}

func (n *notifier) MemberJoined(ctx context.Context, group *domain.Group, user *domain.User) {
	n.persist(ctx, &domain.Notification{
		UserID:  group.AdminID,
		Type:    domain.NotificationMemberJoined,
		Title:   "New member",
		Message: fmt.Sprintf("%s joined %s.", user.Name, group.Name),
	})
}

func (n *notifier) MemberRemoved(ctx context.Context, group *domain.Group, userID int32, reason string) {
	message := fmt.Sprintf("You have been removed from %s.", group.Name)
	if reason != "" {
		message += " Reason: " + reason
	}
	n.persist(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationMemberRemoved,
		Title:   "Removed from group",
		Message: message,
	})
}

func (n *notifier) ProjectDeadlineSoon(ctx context.Context, project *domain.Project, userID int32) {
	n.persist(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationProjectDeadlineSoon,
		Title:     "Project deadline approaching",
		Message:   fmt.Sprintf("%s is closing soon. Submit your contribution before the deadline.", project.Name),
		ProjectID: &project.ID,
	})
}

func (n *notifier) persist(ctx context.Context, note *domain.Notification) {
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to store notification",
			"user_id", note.UserID,
			"type", note.Type,
			"error", err)
	}
}

// sendEmail looks up the recipient and delivers via the configured email
// service, if any. Users without an email address are skipped quietly.
func (n *notifier) sendEmail(ctx context.Context, userID int32, send func(to string) error) {
	if n.email == nil {
		return
	}
	user, err := n.userRepo.GetByID(ctx, userID)
	if err != nil || user.Email == "" {
		return
	}
	if err := send(user.Email); err != nil {
		logger.Warn("Email delivery failed", "user_id", userID, "error", err)
	}
}
