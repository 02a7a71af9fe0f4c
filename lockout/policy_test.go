package lockout

import (
	"testing"
	"time"
)

func TestRecordFailureCountsDown(t *testing.T) {
	p := NewPolicy(5, 5*time.Minute)
	defer p.Cancel()

	for i := 1; i <= 4; i++ {
		res := p.RecordFailure()
		if res.Locked {
			t.Fatalf("locked after %d attempts", i)
		}
		if got, want := res.AttemptsRemaining, 5-i; got != want {
			t.Fatalf("attempts remaining after %d failures = %d, want %d", i, got, want)
		}
		if p.IsLocked() {
			t.Fatalf("IsLocked true after %d attempts", i)
		}
	}
}

func TestFifthFailureLocks(t *testing.T) {
	p := NewPolicy(5, 5*time.Minute)
	defer p.Cancel()

	for i := 0; i < 4; i++ {
		p.RecordFailure()
	}
	res := p.RecordFailure()
	if !res.Locked {
		t.Fatal("fifth failure did not lock")
	}
	if !p.IsLocked() {
		t.Fatal("IsLocked false after fifth failure")
	}
	if got := p.RemainingSeconds(); got != 300 {
		t.Fatalf("RemainingSeconds = %d, want 300", got)
	}

	// further failures while locked report locked without extending anything
	if res := p.RecordFailure(); !res.Locked {
		t.Fatal("failure while locked not reported as locked")
	}
}

func TestSuccessResetsCounterImmediately(t *testing.T) {
	p := NewPolicy(5, 5*time.Minute)
	defer p.Cancel()

	for i := 0; i < 4; i++ {
		p.RecordFailure()
	}
	p.RecordSuccess()

	if p.IsLocked() {
		t.Fatal("locked after success")
	}
	if res := p.RecordFailure(); res.AttemptsRemaining != 4 {
		t.Fatalf("attempts remaining after reset = %d, want 4", res.AttemptsRemaining)
	}
}

func TestCooldownExpiryReopens(t *testing.T) {
	p := NewPolicy(2, 2*time.Second)
	defer p.Cancel()

	p.RecordFailure()
	if res := p.RecordFailure(); !res.Locked {
		t.Fatal("second failure did not lock")
	}
	if got := p.RemainingSeconds(); got != 2 {
		t.Fatalf("RemainingSeconds = %d, want 2", got)
	}

	deadline := time.After(4 * time.Second)
	for p.IsLocked() {
		select {
		case <-deadline:
			t.Fatal("lock did not clear after cooldown")
		case <-time.After(100 * time.Millisecond):
		}
	}

	if got := p.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds after expiry = %d, want 0", got)
	}
	// counter reset with the lock
	if res := p.RecordFailure(); res.Locked || res.AttemptsRemaining != 1 {
		t.Fatalf("first failure after expiry = %+v, want 1 attempt remaining", res)
	}
}

func TestCancelStopsCountdown(t *testing.T) {
	p := NewPolicy(1, time.Hour)

	if res := p.RecordFailure(); !res.Locked {
		t.Fatal("failure did not lock")
	}

	p.Cancel()
	if p.IsLocked() {
		t.Fatal("still locked after Cancel")
	}
	if got := p.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds after Cancel = %d, want 0", got)
	}

	// Cancel is idempotent
	p.Cancel()
}
