package sram

// Timing holds the eight datasheet-derived delay/setup/hold constants that
// drive the SRAM's state machines (spec §4.4). All values are nanoseconds.
type Timing struct {
	// AddressToData (tAA) is the worst-case address-valid-to-data-valid
	// propagation delay.
	AddressToData int64
	// ChipSelectToData (tACS) is the worst-case /CS-low-to-data-valid delay.
	ChipSelectToData int64
	// OutputEnableToData (tOE) is the worst-case /OE-low-to-data-valid delay.
	OutputEnableToData int64
	// OutputEnableHighToFloat (tOHZ) is the worst-case /OE-high-to-Hi-Z delay.
	OutputEnableHighToFloat int64
	// ChipSelectSetup (tSCS) is the minimum /CS-low time before a write ends.
	ChipSelectSetup int64
	// AddressSetup (tSA) is the minimum address-stable time before a write ends.
	AddressSetup int64
	// DataSetup (tSD) is the minimum data-stable time before a write ends.
	DataSetup int64
	// WritePulseWidth (tWP) is the minimum /WE-low pulse width.
	WritePulseWidth int64
}

// Default62256Timing is the worst-case timing for the reference part, a
// 62256-class 32 KiB x 8 asynchronous SRAM (spec §4.4).
var Default62256Timing = Timing{
	AddressToData:           120,
	ChipSelectToData:        120,
	OutputEnableToData:      60,
	OutputEnableHighToFloat: 40,
	ChipSelectSetup:         85,
	AddressSetup:            85,
	DataSetup:               50,
	WritePulseWidth:         70,
}
