// Package wire implements the simulator's electrical substrate: a Net (a
// single three-valued node with handle-based single-driver ownership) and a
// BusMember (an ordered-collection adapter exposing a Net group as an
// unsigned, tri-state-aware value).
//
// The handle scheme is the canonical model this spec selects over the
// identity-hashing multi-member scheme the Python original also explored
// (spec §9, "Handle-based ownership vs. reference equality"): ownership is
// pure arithmetic on a monotonic counter, with no reliance on object
// identity or GC semantics.
package wire

import (
	"github.com/joeycumines/go-sim8bit/fault"
	"github.com/joeycumines/go-sim8bit/telemetry"
)

// State is a Net's three-valued electrical state.
type State int

const (
	// Floating is the high-impedance state: no driver, value undefined.
	Floating State = iota
	Low
	High
)

// String renders the state for logging/debugging.
func (s State) String() string {
	switch s {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	case Floating:
		return "FLOATING"
	default:
		return "INVALID"
	}
}

// Listener is notified synchronously, in registration order, after every
// state transition on a Net. Listeners must not re-enter the same Net's
// mutation API before the current notification returns (spec §4.3); doing
// so is undefined behavior this package does not attempt to detect.
type Listener func(state State)

// Net is a single electrical node. The zero value is not usable; construct
// with NewNet. A Net is owned at most by one driver at a time, identified by
// a monotonic, never-reused handle; handle 0 is the sentinel "no claim".
type Net struct {
	state      State
	owner      uint64
	nextHandle uint64
	listeners  []Listener
	logger     telemetry.Logger
}

// NewNet returns a Net in state Floating with no owner.
func NewNet(opts ...NetOption) *Net {
	cfg := resolveNetOptions(opts)
	return &Net{
		state:  Floating,
		logger: cfg.logger,
	}
}

// State returns the Net's current state.
func (n *Net) State() State { return n.state }

// AddListener registers l to be invoked after every future state
// transition. There is no removal API: listeners live for the Net's
// lifetime (spec §4.3).
func (n *Net) AddListener(l Listener) {
	if l == nil {
		return
	}
	n.listeners = append(n.listeners, l)
}

// TakeHigh drives the Net to High. If handle matches the current owner, the
// Net is mutated and the same handle returned. If handle is 0 and the Net
// is currently unowned, a fresh handle is allocated, recorded as owner, and
// returned. Otherwise — including the classic short-circuit case of a
// second driver calling with handle 0 while another already owns the net —
// it returns a *fault.NotOwnerError.
func (n *Net) TakeHigh(handle uint64) (uint64, error) {
	return n.take(handle, High)
}

// TakeLow drives the Net to Low; see TakeHigh for the ownership contract.
func (n *Net) TakeLow(handle uint64) (uint64, error) {
	return n.take(handle, Low)
}

func (n *Net) take(handle uint64, state State) (uint64, error) {
	if err := n.verifyAllowed(handle); err != nil {
		return 0, err
	}
	if handle == 0 {
		n.nextHandle++
		handle = n.nextHandle
		n.owner = handle
	}
	n.state = state
	n.logger.Event(telemetry.LevelDebug, "net", "driven",
		telemetry.F("state", state.String()), telemetry.F("handle", handle))
	n.notify()
	return handle, nil
}

// ReleaseFloating releases ownership and sets the Net to Floating. handle
// must match the current owner.
func (n *Net) ReleaseFloating(handle uint64) error {
	if err := n.verifyAllowed(handle); err != nil {
		return err
	}
	n.state = Floating
	n.owner = 0
	n.logger.Event(telemetry.LevelDebug, "net", "released", telemetry.F("handle", handle))
	n.notify()
	return nil
}

func (n *Net) verifyAllowed(handle uint64) error {
	if handle != n.owner {
		return &fault.NotOwnerError{Handle: handle, Owner: n.owner}
	}
	return nil
}

func (n *Net) notify() {
	for _, l := range n.listeners {
		l(n.state)
	}
}
