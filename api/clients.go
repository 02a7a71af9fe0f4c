package api

import (
	"context"
	"net/http"

	"github.com/benscoapp/collector-sdk/model"
)

// ClientPage is the paginated list envelope returned by the backend.
type ClientPage struct {
	Count    int            `json:"count"`
	Next     string         `json:"next"`
	Previous string         `json:"previous"`
	Results  []model.Client `json:"results"`
}

// CreateClientParams defines the fields for registering a new client.
type CreateClientParams struct {
	Name        string `json:"name"                 validate:"required"`
	PhoneNumber string `json:"phone_number"         validate:"required"`
	Address     string `json:"address,omitempty"`
	AmountDaily string `json:"amount_daily"         validate:"required"`
	IsFixed     bool   `json:"is_fixed"`
	StartDate   string `json:"start_date,omitempty"`
}

// ListClients returns the collector's clients.
func (c *Client) ListClients(ctx context.Context) (*ClientPage, error) {
	var page ClientPage
	if err := c.do(ctx, http.MethodGet, "/clients/list/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateClient registers a new client under the authenticated collector.
func (c *Client) CreateClient(ctx context.Context, params CreateClientParams) (*model.Client, error) {
	var created model.Client
	if err := c.do(ctx, http.MethodPost, "/clients/create/", params, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetClientProfile returns a single client by ID.
func (c *Client) GetClientProfile(ctx context.Context, clientID string) (*model.Client, error) {
	var client model.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+clientID+"/", nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}
