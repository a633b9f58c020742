package jobs

import (
	"context"
	"time"

	"harambee-backend/internal/domain"
	"harambee-backend/internal/logger"
)

// deadlineReminderWindow is how far ahead the reminder job looks for
// closing projects.
const deadlineReminderWindow = 24 * time.Hour

// SendProjectDeadlineReminders notifies every active member of a group
// whose project deadline falls within the reminder window.
func (jr *JobRunner) SendProjectDeadlineReminders() {
	jr.runWithRecovery("SendProjectDeadlineReminders", func() {
		ctx := context.Background()

		projects, err := jr.repos.Projects.ListDueBefore(ctx, time.Now().Add(deadlineReminderWindow))
		if err != nil {
			logger.Error("Failed to list closing projects", "error", err)
			return
		}

		for i := range projects {
			project := &projects[i]
			members, err := jr.repos.Members.ListByGroup(ctx, project.GroupID)
			if err != nil {
				logger.Error("Failed to list members for deadline reminder",
					"project_id", project.ID,
					"group_id", project.GroupID,
					"error", err)
				continue
			}

			sent := 0
			for _, m := range members {
				if m.Status != domain.MemberStatusActive {
					continue
				}
				jr.services.Notifier.ProjectDeadlineSoon(ctx, project, m.UserID)
				sent++
			}
			logger.Info("Sent project deadline reminders",
				"project_id", project.ID,
				"recipients", sent)
		}
	})
}
