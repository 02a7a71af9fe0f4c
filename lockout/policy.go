// Package lockout rate-limits repeated failed logins on this device. The
// attempt counter lives only as long as the Policy instance; a fresh login
// screen (or app restart) starts open.
package lockout

import (
	"sync"
	"time"
)

// Defaults matching the login screen behavior: five consecutive failures
// lock the form for five minutes.
const (
	DefaultMaxAttempts = 5
	DefaultCooldown    = 5 * time.Minute
)

// Result is the outcome of recording a failed attempt.
type Result struct {
	Locked            bool
	AttemptsRemaining int
}

// Policy is the Open/Locked state machine guarding the login form. While
// locked it owns a one-second countdown task; Cancel must be called when the
// owning screen is torn down so the task never outlives the screen.
type Policy struct {
	mu          sync.Mutex
	maxAttempts int
	cooldown    time.Duration
	attempts    int
	remaining   int
	cancel      chan struct{}
}

// NewPolicy creates a Policy with the given thresholds; non-positive values
// fall back to the defaults.
func NewPolicy(maxAttempts int, cooldown time.Duration) *Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Policy{maxAttempts: maxAttempts, cooldown: cooldown}
}

// RecordFailure counts one failed login attempt. Reaching the threshold
// locks the policy and starts the countdown.
func (p *Policy) RecordFailure() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return Result{Locked: true}
	}

	p.attempts++
	if p.attempts >= p.maxAttempts {
		p.lockLocked()
		return Result{Locked: true}
	}

	return Result{AttemptsRemaining: p.maxAttempts - p.attempts}
}

// RecordSuccess resets the attempt counter immediately, without waiting for
// any cooldown.
func (p *Policy) RecordSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts = 0
}

// IsLocked reports whether the cooldown is active. The caller must refuse
// the login action entirely while this is true.
func (p *Policy) IsLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// RemainingSeconds returns the seconds left on the cooldown, zero when open.
func (p *Policy) RemainingSeconds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining
}

// Cancel stops the countdown task and discards the attempt state, mirroring
// the screen unmount (the counter is not persisted across screens).
// Idempotent.
func (p *Policy) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		close(p.cancel)
		p.cancel = nil
	}
	p.remaining = 0
	p.attempts = 0
}

// lockLocked enters the Locked state and starts the countdown task. Caller
// must hold the mutex.
func (p *Policy) lockLocked() {
	p.remaining = int(p.cooldown / time.Second)
	p.cancel = make(chan struct{})
	go p.countdown(p.cancel)
}

func (p *Policy) countdown(cancel chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.cancel != cancel {
				// superseded by Cancel; a new lock owns its own task
				p.mu.Unlock()
				return
			}
			p.remaining--
			if p.remaining <= 0 {
				p.remaining = 0
				p.attempts = 0
				p.cancel = nil
				p.mu.Unlock()
				return
			}
			p.mu.Unlock()
		}
	}
}
