package connectivity

import "testing"

func TestMonitorHoldsLatestStatus(t *testing.T) {
	m := NewMonitor(Online)
	if m.Status() != Online {
		t.Fatal("initial status not online")
	}

	m.Update(Offline)
	if m.Status() != Offline {
		t.Fatal("status not offline after update")
	}

	// no-op update keeps state
	m.Update(Offline)
	if m.Status() != Offline {
		t.Fatal("status changed on duplicate update")
	}
}

func TestMonitorNotifiesSubscribers(t *testing.T) {
	m := NewMonitor(Online)
	ch := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.Update(Offline)
	select {
	case got := <-ch:
		if got != Offline {
			t.Fatalf("received %v, want offline", got)
		}
	default:
		t.Fatal("no notification delivered")
	}

	// duplicate signal is suppressed
	m.Update(Offline)
	select {
	case got := <-ch:
		t.Fatalf("unexpected notification %v for unchanged status", got)
	default:
	}
}
