package domain

import "time"

type NotificationType string

const (
	NotificationPaymentSubmitted    NotificationType = "payment_submitted"
	NotificationPaymentConfirmed    NotificationType = "payment_confirmed"
	NotificationPaymentRejected     NotificationType = "payment_rejected"
	NotificationMemberJoined        NotificationType = "member_joined"
	NotificationMemberRemoved       NotificationType = "member_removed"
	NotificationProjectDeadlineSoon NotificationType = "project_deadline_soon"
)

type Notification struct {
	ID             int32            `json:"id"`
	UserID         int32            `json:"user_id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	ContributionID *int32           `json:"contribution_id,omitempty"`
	ProjectID      *int32           `json:"project_id,omitempty"`
	IsRead         bool             `json:"is_read"`
	CreatedOn      time.Time        `json:"created_on"`
}
