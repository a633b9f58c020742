package domain

import "time"

type ContributionStatus string

const (
	ContributionStatusPending   ContributionStatus = "PENDING"
	ContributionStatusConfirmed ContributionStatus = "CONFIRMED"
	ContributionStatusRejected  ContributionStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed.
func (s ContributionStatus) IsTerminal() bool {
	return s == ContributionStatusConfirmed || s == ContributionStatusRejected
}

// Contribution is a member's claimed payment awaiting admin review.
// Amount is never mutated after creation; status moves from PENDING to
// exactly one of CONFIRMED or REJECTED.
type Contribution struct {
	ID             int32              `json:"id"`
	GroupID        int32              `json:"group_id"`
	UserID         int32              `json:"user_id"`
	ProjectID      *int32             `json:"project_id,omitempty"` // nil = attributed to the group generally
	AmountCents    int64              `json:"amount_cents"`
	PaymentType    string             `json:"payment_type"`
	TransactionRef string             `json:"transaction_ref,omitempty"`
	ProofOfPayment string             `json:"proof_of_payment,omitempty"` // opaque image reference
	Notes          string             `json:"notes,omitempty"`
	Status         ContributionStatus `json:"status"`
	CreatedOn      time.Time          `json:"created_on"`
}
