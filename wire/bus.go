package wire

import (
	"strconv"

	"github.com/joeycumines/go-sim8bit/fault"
)

// BusValue is the tagged-sum result of reading a bus: either an unsigned
// integer, or the distinguished Floating state. This exists so callers
// cannot mistake a bus in high-impedance for a legal zero reading (spec §9,
// "Tri-state as a sum") — there is deliberately no API that returns a bare
// integer for a floating bus.
type BusValue struct {
	bits     uint64
	floating bool
}

// Value returns the aggregate bits and true, or (0, false) if the bus is
// floating.
func (v BusValue) Value() (uint64, bool) {
	if v.floating {
		return 0, false
	}
	return v.bits, true
}

// IsFloating reports whether the bus is in the high-impedance state.
func (v BusValue) IsFloating() bool { return v.floating }

// String renders the value as a decimal integer, or "FLOATING".
func (v BusValue) String() string {
	if v.floating {
		return "FLOATING"
	}
	return strconv.FormatUint(v.bits, 10)
}

// BusValueListener is notified with the aggregate value whenever any net in
// the bus changes.
type BusValueListener func(value BusValue)

// BusMember is an adapter over an ordered collection of nets (LSB first),
// holding one owner handle per net. It does not own the underlying nets —
// multiple BusMembers may share the same nets, each with its own handles,
// which is how a tri-state output can drive, float, and drive again without
// the bus noticing "foreign" transitions in between (spec §4.3 rationale).
type BusMember struct {
	nets      []*Net
	handles   []uint64
	listeners []BusValueListener
}

// NewBusMember creates a BusMember over nets (index 0 is the least
// significant bit). Every BusMember's handles start at 0 (unowned).
func NewBusMember(nets []*Net) *BusMember {
	b := &BusMember{
		nets:    nets,
		handles: make([]uint64, len(nets)),
	}
	for _, n := range nets {
		n.AddListener(func(State) { b.notify() })
	}
	return b
}

// Len returns the bus width (number of nets).
func (b *BusMember) Len() int { return len(b.nets) }

// Get returns the net at index i.
func (b *BusMember) Get(i int) *Net { return b.nets[i] }

// AddListener registers l to be invoked with the aggregate value whenever
// any net in the bus changes.
func (b *BusMember) AddListener(l BusValueListener) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// Write drives value onto the bus, bit i landing on net i. The bus member's
// stored handle for each net is updated with whatever TakeHigh/TakeLow
// returns, so repeated writes without an intervening Float_ continue the
// same ownership episode. value must be non-negative.
func (b *BusMember) Write(value int64) error {
	if value < 0 {
		return &fault.NegativeValueError{Value: value}
	}
	uv := uint64(value)
	for i, n := range b.nets {
		bit := (uv >> uint(i)) & 1
		var (
			h   uint64
			err error
		)
		if bit == 1 {
			h, err = n.TakeHigh(b.handles[i])
		} else {
			h, err = n.TakeLow(b.handles[i])
		}
		if err != nil {
			return err
		}
		b.handles[i] = h
	}
	return nil
}

// Float_ releases every net the bus member currently holds and zeroes its
// stored handles, putting the bus into high-impedance from this member's
// perspective. A subsequent Write allocates fresh handles, correctly
// modeling a tri-state output that went Hi-Z and came back.
func (b *BusMember) Float_() error {
	for i, n := range b.nets {
		if b.handles[i] == 0 {
			continue
		}
		if err := n.ReleaseFloating(b.handles[i]); err != nil {
			return err
		}
		b.handles[i] = 0
	}
	return nil
}

// Value reads each net's state and assembles an unsigned integer, LSB
// first. If any constituent net is Floating, the aggregate is Floating.
func (b *BusMember) Value() BusValue {
	var bits uint64
	for i, n := range b.nets {
		switch n.State() {
		case Floating:
			return BusValue{floating: true}
		case High:
			bits |= 1 << uint(i)
		}
	}
	return BusValue{bits: bits}
}

func (b *BusMember) notify() {
	if len(b.listeners) == 0 {
		return
	}
	v := b.Value()
	for _, l := range b.listeners {
		l(v)
	}
}
