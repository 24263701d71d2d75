package sim

import "sort"

// CDBArbiter holds the bus-wait set and grants broadcast slots to up to
// width completed instructions per cycle, ordered by (completion cycle,
// tag) ascending.
type CDBArbiter struct {
	waiting []*Instruction
}

// NewCDBArbiter returns an empty arbiter.
func NewCDBArbiter() *CDBArbiter {
	return &CDBArbiter{}
}

// Enqueue adds inst to the bus-wait set, if it is not already present.
func (c *CDBArbiter) Enqueue(inst *Instruction) {
	if inst.EnqueuedBus {
		return
	}
	inst.EnqueuedBus = true
	c.waiting = append(c.waiting, inst)
}

// Len reports how many instructions are currently waiting for the bus.
func (c *CDBArbiter) Len() int {
	return len(c.waiting)
}

// Broadcast grants up to width bus slots this cycle, oldest-completion
// (then lowest-tag) first. Granted instructions are removed from the
// wait set and returned, in grant order; ungranted instructions remain
// queued for the next cycle.
func (c *CDBArbiter) Broadcast(width int) []*Instruction {
	if len(c.waiting) == 0 {
		return nil
	}

	ordered := make([]*Instruction, len(c.waiting))
	copy(ordered, c.waiting)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CompletionCycle != ordered[j].CompletionCycle {
			return ordered[i].CompletionCycle < ordered[j].CompletionCycle
		}
		return ordered[i].Tag < ordered[j].Tag
	})

	grant := width
	if grant > len(ordered) {
		grant = len(ordered)
	}
	granted := ordered[:grant]
	remaining := ordered[grant:]

	for _, inst := range granted {
		inst.WaitingBus = false
		inst.EnqueuedBus = false
	}
	c.waiting = remaining
	return granted
}
