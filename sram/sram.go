// Package sram implements a reference asynchronous SRAM component (spec
// §4.4): a 62256-class part with datasheet-accurate read and write timing,
// built on the package's Net/BusMember electrical model and Scheduler event
// kernel.
//
// The read path follows the kernel's canonical no-cancellation idiom
// (spec §9, "schedule eagerly, verify at firing time"): every address
// change and every /CS or /OE falling edge schedules its own deferred
// readiness check at the appropriate delay, and each check independently
// re-verifies all three conditions before driving the data bus, rather than
// assuming the triggering transition is still the most recent one by the
// time it fires.
//
// The write path is synchronous: a legal write is clocked entirely by the
// /WE pulse, and the setup/hold checks run at the instant /WE rises, using
// the last-change timestamps recorded for /CS, /WE, the address bus, and
// the data bus.
package sram

import (
	"github.com/joeycumines/go-sim8bit/fault"
	"github.com/joeycumines/go-sim8bit/schedule"
	"github.com/joeycumines/go-sim8bit/telemetry"
	"github.com/joeycumines/go-sim8bit/timestamp"
	"github.com/joeycumines/go-sim8bit/wire"
)

// SRAM is a reference asynchronous static RAM component. Construct with New;
// the zero value is not usable.
type SRAM struct {
	sched *schedule.Scheduler
	addr  *wire.BusMember
	data  *wire.BusMember
	cs    *wire.Net
	oe    *wire.Net
	we    *wire.Net

	capacity uint64
	timing   Timing
	logger   telemetry.Logger

	memory map[uint64]byte

	lastCS   timestamp.Timestamp
	lastOE   timestamp.Timestamp
	lastWE   timestamp.Timestamp
	lastAddr timestamp.Timestamp
	lastData timestamp.Timestamp
}

// New builds an SRAM wired to addr (the address bus, index 0 least
// significant) and data (the data bus), with cs, oe, and we as its
// active-low /CS, /OE, and /WE control nets. The SRAM registers listeners on
// all five; it does not take ownership of the buses or nets beyond that.
func New(sched *schedule.Scheduler, addr, data *wire.BusMember, cs, oe, we *wire.Net, opts ...Option) *SRAM {
	cfg := resolveOptions(opts)

	memory := make(map[uint64]byte, len(cfg.image))
	for k, v := range cfg.image {
		memory[k] = v
	}

	s := &SRAM{
		sched:    sched,
		addr:     addr,
		data:     data,
		cs:       cs,
		oe:       oe,
		we:       we,
		capacity: cfg.capacity,
		timing:   cfg.timing,
		logger:   cfg.logger,
		memory:   memory,
	}

	now := sched.Now()
	s.lastCS, s.lastOE, s.lastWE, s.lastAddr, s.lastData = now, now, now, now, now

	addr.AddListener(s.onAddrChange)
	data.AddListener(s.onDataChange)
	cs.AddListener(s.onCSChange)
	oe.AddListener(s.onOEChange)
	we.AddListener(s.onWEChange)

	return s
}

func (s *SRAM) effectiveAddress(v wire.BusValue) (uint64, bool) {
	bits, ok := v.Value()
	if !ok {
		return 0, false
	}
	if s.capacity != 0 {
		bits %= s.capacity
	}
	return bits, true
}

func (s *SRAM) onAddrChange(wire.BusValue) {
	s.lastAddr = s.sched.Now()
	s.scheduleReadyCheck(s.timing.AddressToData)
}

func (s *SRAM) onDataChange(wire.BusValue) {
	s.lastData = s.sched.Now()
}

func (s *SRAM) onCSChange(state wire.State) {
	s.lastCS = s.sched.Now()
	if state == wire.Low {
		s.scheduleReadyCheck(s.timing.ChipSelectToData)
	}
}

func (s *SRAM) onOEChange(state wire.State) {
	s.lastOE = s.sched.Now()
	if state == wire.Low {
		if s.we.State() == wire.Low && s.cs.State() == wire.Low {
			panic(&fault.UndefinedBehaviorError{Constraint: "writes with /OE low are not supported"})
		}
		s.scheduleReadyCheck(s.timing.OutputEnableToData)
	} else {
		s.scheduleFloatCheck(s.timing.OutputEnableHighToFloat)
	}
}

func (s *SRAM) onWEChange(state wire.State) {
	// The pulse-width check at the rising edge measures from the previous
	// transition (the falling edge), so keep it before recording this one.
	prevWE := s.lastWE
	s.lastWE = s.sched.Now()
	switch state {
	case wire.Low:
		if s.oe.State() == wire.Low && s.cs.State() == wire.Low {
			panic(&fault.UndefinedBehaviorError{Constraint: "writes with /OE low are not supported"})
		}
	case wire.High:
		if s.cs.State() == wire.Low && s.oe.State() == wire.High {
			s.commitWrite(prevWE)
		}
	}
}

// scheduleReadyCheck arms a deferred read-output check delayNanos from now.
// The check re-verifies every condition at firing time rather than trusting
// that the transition which armed it is still the limiting one (spec §9).
func (s *SRAM) scheduleReadyCheck(delayNanos int64) {
	fireAt := s.sched.Now().Add(timestamp.New(0, delayNanos))
	s.sched.Submit(fireAt, s.putDataIfReady)
}

// scheduleFloatCheck arms a deferred Hi-Z event delayNanos from now. It
// re-checks that /OE is still High at firing time, since a read that began
// again in the meantime must not be clobbered by a stale float.
func (s *SRAM) scheduleFloatCheck(delayNanos int64) {
	fireAt := s.sched.Now().Add(timestamp.New(0, delayNanos))
	s.sched.Submit(fireAt, s.floatIfStillDisabled)
}

func (s *SRAM) putDataIfReady(now timestamp.Timestamp) {
	if s.cs.State() != wire.Low || s.oe.State() != wire.Low {
		return
	}
	aa := timestamp.New(0, s.timing.AddressToData)
	acs := timestamp.New(0, s.timing.ChipSelectToData)
	oe := timestamp.New(0, s.timing.OutputEnableToData)
	if now.Sub(s.lastAddr).Before(aa) {
		return
	}
	if now.Sub(s.lastCS).Before(acs) {
		return
	}
	if now.Sub(s.lastOE).Before(oe) {
		return
	}

	addr, ok := s.effectiveAddress(s.addr.Value())
	if !ok {
		return
	}
	if err := s.data.Write(int64(s.memory[addr])); err != nil {
		panic(&fault.UndefinedBehaviorError{Constraint: "read output could not drive the data bus", Cause: err})
	}
	s.logger.Event(telemetry.LevelDebug, "sram", "read",
		telemetry.F("address", addr), telemetry.F("value", s.memory[addr]))
}

func (s *SRAM) floatIfStillDisabled(timestamp.Timestamp) {
	if s.oe.State() != wire.High {
		return
	}
	if err := s.data.Float_(); err != nil {
		panic(&fault.UndefinedBehaviorError{Constraint: "data bus could not release to floating", Cause: err})
	}
}

// commitWrite runs the setup/hold checks at the instant /WE rises, in the
// order /CS, /WE, address, data, and either raises the first violated
// constraint or writes the byte into memory. weFell is the stamp of the /WE
// falling edge that began this write pulse.
func (s *SRAM) commitWrite(weFell timestamp.Timestamp) {
	now := s.sched.Now()

	if now.Sub(s.lastCS).Before(timestamp.New(0, s.timing.ChipSelectSetup)) {
		panic(&fault.UndefinedBehaviorError{Constraint: "insufficient /CS setup time before end of write"})
	}
	if now.Sub(weFell).Before(timestamp.New(0, s.timing.WritePulseWidth)) {
		panic(&fault.UndefinedBehaviorError{Constraint: "insufficient /WE low time"})
	}
	if now.Sub(s.lastAddr).Before(timestamp.New(0, s.timing.AddressSetup)) {
		panic(&fault.UndefinedBehaviorError{Constraint: "insufficient address setup time before end of write"})
	}
	if now.Sub(s.lastData).Before(timestamp.New(0, s.timing.DataSetup)) {
		panic(&fault.UndefinedBehaviorError{Constraint: "insufficient data setup time before end of write"})
	}

	addr, ok := s.effectiveAddress(s.addr.Value())
	if !ok {
		panic(&fault.UndefinedBehaviorError{Constraint: "write committed with a floating address bus"})
	}
	value, ok := s.data.Value().Value()
	if !ok {
		panic(&fault.UndefinedBehaviorError{Constraint: "write committed with a floating data bus"})
	}
	s.memory[addr] = byte(value)
	s.logger.Event(telemetry.LevelDebug, "sram", "write",
		telemetry.F("address", addr), telemetry.F("value", byte(value)))
}

// Peek reads a byte directly from the memory array, bypassing every timing
// check and electrical net. It exists for test fixtures and debugger-style
// tooling, not for modeling a real bus access.
func (s *SRAM) Peek(addr uint64) byte {
	if s.capacity != 0 {
		addr %= s.capacity
	}
	return s.memory[addr]
}

// Poke writes a byte directly into the memory array, bypassing every timing
// check and electrical net. See Peek.
func (s *SRAM) Poke(addr uint64, value byte) {
	if s.capacity != 0 {
		addr %= s.capacity
	}
	s.memory[addr] = value
}
