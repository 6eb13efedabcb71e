package schedule

import (
	"testing"

	"github.com/joeycumines/go-sim8bit/timestamp"
)

func TestNewSchedulerStartsEmptyAtZero(t *testing.T) {
	s := New()
	if !s.Empty() {
		t.Fatal("expected new scheduler to be empty")
	}
	if !s.Now().Equal(timestamp.Timestamp{}) {
		t.Fatalf("expected now == zero timestamp, got %v", s.Now())
	}
}

// TestOrderedDispatch is scenario S1: events submitted out of stamp order
// fire in stamp order, and Now tracks the most recently fired stamp.
func TestOrderedDispatch(t *testing.T) {
	s := New()
	var order []string

	h2 := func(stamp timestamp.Timestamp) { order = append(order, "H2") }
	h1 := func(stamp timestamp.Timestamp) { order = append(order, "H1") }

	s.Submit(timestamp.New(2, 10), h2)
	s.Submit(timestamp.New(1, 10), h1)

	if s.Len() != 2 {
		t.Fatalf("expected 2 pending events, got %d", s.Len())
	}

	s.Tick()
	if got := []string{"H1"}; order[0] != got[0] {
		t.Fatalf("expected H1 first, got %v", order)
	}
	if !s.Now().Equal(timestamp.New(1, 10)) {
		t.Fatalf("expected now == (1,10) after first tick, got %v", s.Now())
	}

	s.Tick()
	if len(order) != 2 || order[1] != "H2" {
		t.Fatalf("expected [H1 H2], got %v", order)
	}
	if !s.Now().Equal(timestamp.New(2, 10)) {
		t.Fatalf("expected now == (2,10) after second tick, got %v", s.Now())
	}
	if !s.Empty() {
		t.Fatal("expected scheduler to be empty after draining both events")
	}
}

// TestFIFOTieBreak is scenario S2: events sharing a stamp fire in
// submission order.
func TestFIFOTieBreak(t *testing.T) {
	s := New()
	var order []string

	stamp := timestamp.New(1, 10)
	s.Submit(stamp, func(timestamp.Timestamp) { order = append(order, "A") })
	s.Submit(stamp, func(timestamp.Timestamp) { order = append(order, "B") })

	s.Tick()
	s.Tick()

	if len(order) != 2 || order[0] != "A" || order[1] != "B" {
		t.Fatalf("expected [A B], got %v", order)
	}
}

func TestTickOnEmptySchedulerPanics(t *testing.T) {
	s := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Tick on an empty scheduler to panic")
		}
	}()
	s.Tick()
}

// TestReentrantSubmitAtCurrentStampFiresAfterQueuedWork verifies ordering
// guarantee (4): a handler that submits a new event at the current stamp
// does not jump ahead of events already queued at that stamp.
func TestReentrantSubmitAtCurrentStampFiresAfterQueuedWork(t *testing.T) {
	s := New()
	var order []string

	stamp := timestamp.New(5, 0)
	s.Submit(stamp, func(timestamp.Timestamp) {
		order = append(order, "first")
		s.Submit(stamp, func(timestamp.Timestamp) { order = append(order, "reentrant") })
	})
	s.Submit(stamp, func(timestamp.Timestamp) { order = append(order, "second") })

	for !s.Empty() {
		s.Tick()
	}

	want := []string{"first", "second", "reentrant"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSubmitPreservesHeapInvariantAcrossManyEvents(t *testing.T) {
	s := New()
	stamps := []timestamp.Timestamp{
		timestamp.New(3, 0),
		timestamp.New(1, 0),
		timestamp.New(2, 500),
		timestamp.New(1, 0),
		timestamp.New(0, 999_999_999),
	}
	for _, st := range stamps {
		st := st
		s.Submit(st, func(timestamp.Timestamp) {})
	}

	var last timestamp.Timestamp
	first := true
	for !s.Empty() {
		before := s.Now()
		s.Tick()
		after := s.Now()
		if !first && after.Before(last) {
			t.Fatalf("dispatch order violated monotonic stamps: %v then %v", last, after)
		}
		if after.Before(before) {
			t.Fatalf("now regressed within a tick: %v -> %v", before, after)
		}
		last = after
		first = false
	}
}
