// Package sim implements the Tomasulo-style out-of-order pipeline core:
// renaming, reservation station, functional units, CDB arbitration, and
// the cycle-by-cycle driver that ties them together.
package sim

// numFUTypes is the number of functional-unit types the simulator models.
const numFUTypes = 3

// Record is the raw per-instruction payload pulled from a trace source.
// A negative field means "none" (no destination, no source).
type Record struct {
	OpCode int
	Dest   int
	Src    [2]int
}

// fuTypeFromOpCode derives a functional-unit type from an opcode.
// Opcodes 0, 1, 2 map directly to types 0, 1, 2. Negative opcodes map to
// type 1. Opcodes >= 3 map to op mod numFUTypes.
func fuTypeFromOpCode(op int) int {
	switch {
	case op < 0:
		return 1
	case op < numFUTypes:
		return op
	default:
		return op % numFUTypes
	}
}

// Instruction carries an immutable raw record plus the mutable simulation
// state tracked as it moves through fetch, dispatch, schedule, execute,
// and state-update.
type Instruction struct {
	// Raw is the trace record this instruction was fetched from.
	Raw Record

	// Tag is the monotonically assigned rename identifier and age key.
	Tag int

	// Type is the functional-unit type this instruction requires.
	Type int

	// Stage-entry cycle stamps.
	FetchCycle       int
	DispatchCycle    int
	ScheduleCycle    int
	ScheduleReadyC   int
	ExecuteCycle     int
	StateUpdateCycle int
	CompletionCycle  int

	// SrcReady/SrcTag track per-source readiness. SrcReady[s] true means
	// the source is available; otherwise SrcTag[s] names the producer.
	SrcReady [2]bool
	SrcTag   [2]int

	Issued      bool
	WaitingBus  bool
	EnqueuedBus bool

	// FU is the functional unit currently executing this instruction, or
	// nil if it has not started execution or has already broadcast.
	FU *FunctionalUnit
}

// NewInstruction creates an instruction from a fetched trace record,
// assigning it tag and stamping its fetch cycle.
func NewInstruction(tag int, raw Record, fetchCycle int) *Instruction {
	return &Instruction{
		Raw:        raw,
		Tag:        tag,
		Type:       fuTypeFromOpCode(raw.OpCode),
		FetchCycle: fetchCycle,
	}
}

// BothSourcesReady reports whether both operands are available.
func (inst *Instruction) BothSourcesReady() bool {
	return inst.SrcReady[0] && inst.SrcReady[1]
}
