package admission

import "testing"

func TestGateBoundsConcurrency(t *testing.T) {
	gate := NewGate(3)

	var tickets []*Ticket
	for i := 0; i < 3; i++ {
		ticket, ok := gate.TryAcquire()
		if !ok {
			t.Fatalf("acquire %d: expected success", i)
		}
		tickets = append(tickets, ticket)
	}

	if _, ok := gate.TryAcquire(); ok {
		t.Fatal("expected rejection past the limit")
	}

	tickets[0].Release()
	if _, ok := gate.TryAcquire(); !ok {
		t.Fatal("expected acquire to succeed after a release")
	}
}

func TestTicketReleaseIsIdempotent(t *testing.T) {
	gate := NewGate(1)

	ticket, ok := gate.TryAcquire()
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	ticket.Release()
	ticket.Release()
	ticket.Release()

	// A double release must not free more than one slot.
	first, ok := gate.TryAcquire()
	if !ok {
		t.Fatal("expected acquire after release")
	}
	defer first.Release()
	if _, ok := gate.TryAcquire(); ok {
		t.Fatal("double release widened the gate")
	}
}

func TestGateMinimumLimit(t *testing.T) {
	gate := NewGate(0)
	if gate.Limit() != 1 {
		t.Fatalf("expected limit to clamp to 1, got %d", gate.Limit())
	}
}
