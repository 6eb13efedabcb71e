// Package schedule implements the simulation kernel's single-threaded,
// virtual-time event scheduler (spec §4.2): a strictly ordered queue of
// pending work, dispatched one event at a time by repeated calls to Tick.
package schedule

import (
	"container/heap"

	"github.com/joeycumines/go-sim8bit/telemetry"
	"github.com/joeycumines/go-sim8bit/timestamp"
)

// Handler receives the stamp an event fired at.
type Handler func(stamp timestamp.Timestamp)

// pendingEvent is one entry in the scheduler's heap: a stamp, a handler, and
// a monotonically increasing sequence number used purely as a FIFO
// tie-break among events sharing a stamp (spec §3 invariant (ii)).
type pendingEvent struct {
	stamp    timestamp.Timestamp
	handler  Handler
	sequence uint64
}

// eventHeap is a min-heap ordered by (stamp, sequence), giving O(log n)
// Submit/Tick while preserving both the stamp ordering and the FIFO
// tie-break spec §4.2 calls out as load-bearing. This mirrors the teacher's
// eventloop.timerHeap, a container/heap.Interface min-heap keyed by fire
// time, extended with the sequence field the teacher's single-key ordering
// doesn't need (the teacher has no submission-order tie-break requirement).
type eventHeap []pendingEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if c := h[i].stamp.Compare(h[j].stamp); c != 0 {
		return c < 0
	}
	return h[i].sequence < h[j].sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(pendingEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Scheduler is a virtual-time event loop: it holds a monotonically
// non-decreasing "now" and a strictly ordered sequence of pending events.
// It is not safe for concurrent use — spec §5 mandates a single thread of
// control with exactly one event firing at a time.
type Scheduler struct {
	now      timestamp.Timestamp
	pending  eventHeap
	sequence uint64
	logger   telemetry.Logger
}

// New creates a Scheduler with now initialized to the zero Timestamp.
func New(opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)
	return &Scheduler{
		pending: make(eventHeap, 0),
		logger:  cfg.logger,
	}
}

// Submit inserts handler to run at stamp. Among events sharing a stamp,
// handlers fire in submission order (spec §3 invariant (ii)).
func (s *Scheduler) Submit(stamp timestamp.Timestamp, handler Handler) {
	seq := s.sequence
	s.sequence++
	heap.Push(&s.pending, pendingEvent{stamp: stamp, handler: handler, sequence: seq})
	s.logger.Event(telemetry.LevelDebug, "scheduler", "event submitted",
		telemetry.F("stamp", stamp.String()), telemetry.F("sequence", seq))
}

// Tick removes the earliest pending event, advances Now to its stamp, and
// invokes its handler. Calling Tick when Empty is a caller error (the
// scheduler itself does not fail; a panicking handler propagates out of
// Tick, halting the loop — this is the kernel's intended mechanism for
// surfacing detected undefined behavior, spec §4.2).
func (s *Scheduler) Tick() {
	if len(s.pending) == 0 {
		panic("schedule: Tick called on an empty scheduler")
	}
	event := heap.Pop(&s.pending).(pendingEvent)
	s.now = event.stamp
	s.logger.Event(telemetry.LevelDebug, "scheduler", "tick",
		telemetry.F("stamp", event.stamp.String()), telemetry.F("sequence", event.sequence))
	event.handler(event.stamp)
}

// Now returns the stamp of the most recently dispatched event, or the zero
// Timestamp if no event has fired yet.
func (s *Scheduler) Now() timestamp.Timestamp { return s.now }

// Empty reports whether the pending sequence is empty.
func (s *Scheduler) Empty() bool { return len(s.pending) == 0 }

// Len reports the number of events currently pending. It exists for test
// and diagnostic use; it is not part of the ordering contract.
func (s *Scheduler) Len() int { return len(s.pending) }
