package memory

import (
	"context"
	"sync"

	"github.com/benscoapp/collector-sdk/store"
)

// Client implements store.Store in memory. Used by tests and by preview
// builds that must not touch the device keystore.
type Client struct {
	mu     sync.RWMutex
	values map[string]string
}

func New() *Client {
	return &Client{values: make(map[string]string)}
}

func (c *Client) Close() error { return nil }

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return v, nil
}

func (c *Client) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *Client) SetMany(ctx context.Context, values map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.values[k] = v
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}
