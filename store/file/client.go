// Package file implements store.Store as a single sealed blob on disk. The
// whole key space is rewritten on every mutation through a temp-file rename,
// so batched writes are atomic: a reader sees either the previous state or
// the next one, never a hybrid.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/benscoapp/collector-sdk/internal/security"
	"github.com/benscoapp/collector-sdk/store"
)

const (
	storeFile = "keystore.bin"
	saltFile  = "keystore.salt"
)

// Client is a sealed file-backed store.Store.
type Client struct {
	mu     sync.RWMutex
	path   string
	sealer *security.Sealer
	values map[string]string
}

// New opens (or creates) the store under dir, sealing values with a key
// derived from secret. Fails if an existing blob cannot be decrypted: a
// wrong secret must not silently wipe previously stored sessions.
func New(dir, secret string) (*Client, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	salt, err := loadOrCreateSalt(filepath.Join(dir, saltFile))
	if err != nil {
		return nil, err
	}

	sealer, err := security.NewSealer([]byte(secret), salt)
	if err != nil {
		return nil, err
	}

	c := &Client{
		path:   filepath.Join(dir, storeFile),
		sealer: sealer,
		values: make(map[string]string),
	}
	if err := c.load(); err != nil {
		return nil, err
	}

	return c, nil
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
	return c.flushLocked()
}

func (c *Client) SetMany(ctx context.Context, values map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.values[k] = v
	}
	return c.flushLocked()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return c.flushLocked()
}

func (c *Client) load() error {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	plain, err := c.sealer.Open(raw)
	if err != nil {
		return fmt.Errorf("file: cannot unseal %s: %w", c.path, err)
	}

	return json.Unmarshal(plain, &c.values)
}

// flushLocked writes the full key space to a temp file and renames it over
// the store file. Caller must hold the write lock.
func (c *Client) flushLocked() error {
	plain, err := json.Marshal(c.values)
	if err != nil {
		return err
	}

	sealed, err := c.sealer.Seal(plain)
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, c.path)
}

func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	salt, err = security.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, err
	}

	return salt, nil
}
