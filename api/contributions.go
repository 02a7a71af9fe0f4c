package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/benscoapp/collector-sdk/model"
)

// CreateContributionParams defines the fields for recording a contribution.
type CreateContributionParams struct {
	Client      string `json:"client"    validate:"required"`
	Collector   string `json:"collector" validate:"required"`
	Amount      string `json:"amount"    validate:"required"`
	DaysCovered int    `json:"days_covered,omitempty"`
}

// ListContributions returns all contributions visible to the collector.
func (c *Client) ListContributions(ctx context.Context) ([]model.Contribution, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/contributions/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeContributionList(raw)
}

// ListClientContributions returns the contributions recorded for one client.
func (c *Client) ListClientContributions(ctx context.Context, clientID string) ([]model.Contribution, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/contributions/client/"+clientID+"/", nil, &raw); err != nil {
		return nil, err
	}
	return decodeContributionList(raw)
}

// CreateContribution records a single cash contribution.
func (c *Client) CreateContribution(ctx context.Context, params CreateContributionParams) (*model.Contribution, error) {
	var created model.Contribution
	if err := c.do(ctx, http.MethodPost, "/contributions/create/", params, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// BulkCreateContributions records a batch of contributions in one request,
// used when flushing entries captured while offline.
func (c *Client) BulkCreateContributions(ctx context.Context, params []CreateContributionParams) ([]model.Contribution, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/contributions/create/bulk/", params, &raw); err != nil {
		return nil, err
	}
	return decodeContributionList(raw)
}

// decodeContributionList tolerates both shapes the backend serves: a bare
// array or the paginated {count, results} envelope.
func decodeContributionList(raw json.RawMessage) ([]model.Contribution, error) {
	var list []model.Contribution
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var page struct {
		Results []model.Contribution `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
