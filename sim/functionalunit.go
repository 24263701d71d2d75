package sim

import "sort"

// unitLatency is the fixed one-cycle execute latency every FU type uses
// (spec Non-goals: no variable execution latencies).
const unitLatency = 1

// FunctionalUnit is a single typed execution resource. It holds at most
// one in-flight instruction between its bind (stage 4c) and its broadcast
// (stage 4b); completing the latency timer alone does not free it.
type FunctionalUnit struct {
	Type      int
	Inst      *Instruction
	Remaining int
}

// FunctionalUnitPool is the fixed multiset of FUs, partitioned by type.
type FunctionalUnitPool struct {
	units []*FunctionalUnit
}

// NewFunctionalUnitPool allocates k0 units of type 0, k1 of type 1, and
// k2 of type 2.
func NewFunctionalUnitPool(k0, k1, k2 int) *FunctionalUnitPool {
	p := &FunctionalUnitPool{}
	counts := [numFUTypes]int{k0, k1, k2}
	for fuType, count := range counts {
		for i := 0; i < count; i++ {
			p.units = append(p.units, &FunctionalUnit{Type: fuType})
		}
	}
	return p
}

// FreeUnit returns the first idle FU of the given type, or nil.
func (p *FunctionalUnitPool) FreeUnit(fuType int) *FunctionalUnit {
	for _, fu := range p.units {
		if fu.Type == fuType && fu.Inst == nil {
			return fu
		}
	}
	return nil
}

// Bind attaches inst to fu and arms its latency timer.
func (p *FunctionalUnitPool) Bind(fu *FunctionalUnit, inst *Instruction, cycle int) {
	fu.Inst = inst
	fu.Remaining = unitLatency
	inst.FU = fu
	inst.ExecuteCycle = cycle
}

// Release detaches fu from whatever instruction it holds.
func (p *FunctionalUnitPool) Release(fu *FunctionalUnit) {
	fu.Inst = nil
	fu.Remaining = 0
}

// AdvanceTimers decrements every busy FU's remaining-latency counter. For
// any FU whose timer reaches zero and whose instruction is not already
// bus-waiting, it stamps the completion cycle (first entry only) and
// marks the instruction bus-waiting, reporting it for CDB enqueue.
func (p *FunctionalUnitPool) AdvanceTimers(cycle int) []*Instruction {
	var justCompleted []*Instruction
	for _, fu := range p.units {
		if fu.Inst == nil || fu.Remaining <= 0 {
			continue
		}
		fu.Remaining--
		if fu.Remaining == 0 && !fu.Inst.WaitingBus {
			if fu.Inst.CompletionCycle == 0 {
				fu.Inst.CompletionCycle = cycle
			}
			fu.Inst.WaitingBus = true
			justCompleted = append(justCompleted, fu.Inst)
		}
	}
	return justCompleted
}

// freeCandidate is a busy FU that may free up by the next execute window.
type freeCandidate struct {
	fuType     int
	tag        int
	freeCycle  int
}

// ProjectFree returns, per FU type, how many FUs will be free at the
// start of the next execute window: idle FUs now, plus up to cdbWidth of
// the soonest busy-FU completions (sorted by (freeCycle, tag)), since
// only those are guaranteed to be evicted by the CDB in time.
func (p *FunctionalUnitPool) ProjectFree(cycle int, cdbWidth int) [numFUTypes]int {
	var free [numFUTypes]int
	var candidates []freeCandidate

	for _, fu := range p.units {
		if fu.Inst == nil {
			free[fu.Type]++
			continue
		}
		switch {
		case fu.Inst.WaitingBus:
			candidates = append(candidates, freeCandidate{fu.Type, fu.Inst.Tag, fu.Inst.CompletionCycle})
		case fu.Remaining == 1:
			candidates = append(candidates, freeCandidate{fu.Type, fu.Inst.Tag, cycle + 1})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].freeCycle != candidates[j].freeCycle {
			return candidates[i].freeCycle < candidates[j].freeCycle
		}
		return candidates[i].tag < candidates[j].tag
	})

	grant := cdbWidth
	if grant > len(candidates) {
		grant = len(candidates)
	}
	for i := 0; i < grant; i++ {
		free[candidates[i].fuType]++
	}
	return free
}

// AnyBusy reports whether any FU in the pool is currently bound.
func (p *FunctionalUnitPool) AnyBusy() bool {
	for _, fu := range p.units {
		if fu.Inst != nil {
			return true
		}
	}
	return false
}
