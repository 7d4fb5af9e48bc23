package state

import "testing"

func TestGetDefaultsToIdle(t *testing.T) {
	m := NewManager()
	if st := m.Get(42); st != Idle {
		t.Fatalf("Get on unknown user = %q, expected %q", st, Idle)
	}
	if m.InProgress(42) {
		t.Fatal("unknown user reported as in progress")
	}
}

func TestSetAndConsume(t *testing.T) {
	m := NewManager()
	m.Set(1, AwaitingSearchTerm)

	if !m.InProgress(1) {
		t.Fatal("expected user 1 in progress")
	}
	if st := m.Consume(1); st != AwaitingSearchTerm {
		t.Fatalf("Consume = %q, expected %q", st, AwaitingSearchTerm)
	}
	// single-use: second consume sees Idle
	if st := m.Consume(1); st != Idle {
		t.Fatalf("second Consume = %q, expected %q", st, Idle)
	}
}

func TestSetIdleClearsEntry(t *testing.T) {
	m := NewManager()
	m.Set(1, AwaitingPurchase)
	m.Set(1, Idle)
	if m.InProgress(1) {
		t.Fatal("Set(Idle) did not clear the pending state")
	}
}

func TestStatesAreIsolatedPerUser(t *testing.T) {
	m := NewManager()
	m.Set(1, AwaitingPurchase)
	m.Set(2, AwaitingAIQuestion)

	if st := m.Get(1); st != AwaitingPurchase {
		t.Fatalf("user 1 state = %q, expected %q", st, AwaitingPurchase)
	}
	if st := m.Consume(2); st != AwaitingAIQuestion {
		t.Fatalf("user 2 state = %q, expected %q", st, AwaitingAIQuestion)
	}
	if st := m.Get(1); st != AwaitingPurchase {
		t.Fatalf("user 1 state after consuming user 2 = %q, expected %q", st, AwaitingPurchase)
	}
}

func TestOverwritePendingState(t *testing.T) {
	m := NewManager()
	m.Set(1, AwaitingSearchTerm)
	m.Set(1, AwaitingAIQuestion)
	if st := m.Consume(1); st != AwaitingAIQuestion {
		t.Fatalf("Consume = %q, expected latest state %q", st, AwaitingAIQuestion)
	}
}
