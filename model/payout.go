package model

// Payout statuses as reported by the backend.
const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
	PayoutStatusPaid     = "paid"
)

// Payout is an end-of-cycle payout request for a client.
type Payout struct {
	ID              string `json:"id"`
	Client          string `json:"client"`
	Cycle           string `json:"cycle"`
	TotalPaid       string `json:"total_paid"`
	Commission      string `json:"commission"`
	NetPayout       string `json:"net_payout"`
	Status          string `json:"status"`
	RequestedBy     string `json:"requested_by,omitempty"`
	RequestedByRole string `json:"requested_by_role,omitempty"`
	RequestedOn     string `json:"requested_on,omitempty"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	ApprovedOn      string `json:"approved_on,omitempty"`
	PaidOn          string `json:"paid_on,omitempty"`
}
