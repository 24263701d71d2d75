package sim

import "sort"

// ReservationStation is the unified pool of dispatched-but-not-retired
// instructions (combined reservation station / reorder buffer).
type ReservationStation struct {
	entries []*Instruction
}

// NewReservationStation returns an empty RS.
func NewReservationStation() *ReservationStation {
	return &ReservationStation{}
}

// Len returns the number of entries currently held.
func (rs *ReservationStation) Len() int {
	return len(rs.entries)
}

// Insert appends inst to the RS.
func (rs *ReservationStation) Insert(inst *Instruction) {
	rs.entries = append(rs.entries, inst)
}

// Remove deletes inst from the RS by identity. No-op if absent.
func (rs *ReservationStation) Remove(inst *Instruction) {
	for i, e := range rs.entries {
		if e == inst {
			rs.entries = append(rs.entries[:i], rs.entries[i+1:]...)
			return
		}
	}
}

// WakeUp flips to ready any entry with an unready source pending on
// producerTag, clearing its pending tag.
func (rs *ReservationStation) WakeUp(producerTag int) {
	for _, e := range rs.entries {
		for s := 0; s < 2; s++ {
			if !e.SrcReady[s] && e.SrcTag[s] == producerTag {
				e.SrcReady[s] = true
				e.SrcTag[s] = 0
			}
		}
	}
}

// IssueReady scans the RS in ascending tag order and returns the entries
// that can issue this cycle: not yet issued, whose ready-cycle has
// arrived, whose both sources are ready, and whose FU type still has
// projected headroom. free holds the lookahead-projected free-FU count
// per type; it is consumed (not mutated) via a local per-type reservation
// counter so tag order is preserved among what is actually issuable.
func (rs *ReservationStation) IssueReady(cycle int, free [numFUTypes]int) []*Instruction {
	if len(rs.entries) == 0 {
		return nil
	}

	ordered := make([]*Instruction, len(rs.entries))
	copy(ordered, rs.entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Tag < ordered[j].Tag
	})

	reserved := [numFUTypes]int{}
	var fired []*Instruction
	for _, inst := range ordered {
		if inst.Issued {
			continue
		}
		if cycle < inst.ScheduleReadyC {
			continue
		}
		if !inst.BothSourcesReady() {
			continue
		}
		t := inst.Type
		if free[t]-reserved[t] <= 0 {
			continue
		}
		inst.Issued = true
		reserved[t]++
		fired = append(fired, inst)
	}
	return fired
}
