package sim

// numArchRegs is the number of architectural registers the rename table
// tracks (spec: 128 entries).
const numArchRegs = 128

// notInFlight marks a rename-table entry with no outstanding writer.
const notInFlight = -1

// RenameTable maps architectural registers to the tag of their youngest
// in-flight producer, or to notInFlight if no writer is currently in
// flight. It is the Go rendering of the teacher's fixed-size RegFile,
// generalized from register values to producer tags.
type RenameTable struct {
	slot [numArchRegs]int
}

// NewRenameTable returns a table with every register ready.
func NewRenameTable() *RenameTable {
	t := &RenameTable{}
	t.Reset()
	return t
}

// Reset marks every register ready (no in-flight producer).
func (t *RenameTable) Reset() {
	for i := range t.slot {
		t.slot[i] = notInFlight
	}
}

// Lookup reports whether reg is ready, and if not, the tag of its
// producer. An out-of-range register index is always ready.
func (t *RenameTable) Lookup(reg int) (tag int, ready bool) {
	if reg < 0 || reg >= numArchRegs {
		return 0, true
	}
	if t.slot[reg] == notInFlight {
		return 0, true
	}
	return t.slot[reg], false
}

// Bind overwrites reg's mapping with tag, unconditionally. Called only
// with a valid (in-range) destination register.
func (t *RenameTable) Bind(reg int, tag int) {
	if reg < 0 || reg >= numArchRegs {
		return
	}
	t.slot[reg] = tag
}

// ClearIfOwner clears reg's mapping only if it still equals tag — a
// younger writer may already have superseded the producer that is
// broadcasting.
func (t *RenameTable) ClearIfOwner(reg int, tag int) {
	if reg < 0 || reg >= numArchRegs {
		return
	}
	if t.slot[reg] == tag {
		t.slot[reg] = notInFlight
	}
}
