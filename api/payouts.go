package api

import (
	"context"
	"net/http"

	"github.com/benscoapp/collector-sdk/model"
)

// RequestPayoutParams defines the fields for requesting an end-of-cycle
// payout.
type RequestPayoutParams struct {
	Client string `json:"client" validate:"required"`
	Cycle  string `json:"cycle"  validate:"required"`
}

// RequestPayout asks for a payout of a completed savings cycle.
func (c *Client) RequestPayout(ctx context.Context, params RequestPayoutParams) (*model.Payout, error) {
	var payout model.Payout
	if err := c.do(ctx, http.MethodPost, "/payouts/request/", params, &payout); err != nil {
		return nil, err
	}
	return &payout, nil
}

// ListPayouts returns the payouts visible to the authenticated user.
func (c *Client) ListPayouts(ctx context.Context) ([]model.Payout, error) {
	var payouts []model.Payout
	if err := c.do(ctx, http.MethodGet, "/payouts/list/", nil, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

// ApprovePayout marks a pending payout as approved.
func (c *Client) ApprovePayout(ctx context.Context, payoutID string) (*model.Payout, error) {
	return c.payoutAction(ctx, "/payouts/approve/"+payoutID+"/")
}

// RejectPayout marks a pending payout as rejected.
func (c *Client) RejectPayout(ctx context.Context, payoutID string) (*model.Payout, error) {
	return c.payoutAction(ctx, "/payouts/reject/"+payoutID+"/")
}

// MarkPayoutPaid marks an approved payout as paid out to the client.
func (c *Client) MarkPayoutPaid(ctx context.Context, payoutID string) (*model.Payout, error) {
	return c.payoutAction(ctx, "/payouts/mark-paid/"+payoutID+"/")
}

func (c *Client) payoutAction(ctx context.Context, path string) (*model.Payout, error) {
	var payout model.Payout
	if err := c.do(ctx, http.MethodPost, path, nil, &payout); err != nil {
		return nil, err
	}
	return &payout, nil
}
