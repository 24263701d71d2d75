package sim

// Pipeline is the cycle-accurate Tomasulo driver: fetch, dispatch,
// schedule, execute, and state-update, advanced one cycle at a time in
// the reverse intra-cycle order described by spec §4.1.
type Pipeline struct {
	source Source
	cfg    Config

	rename *RenameTable
	fus    *FunctionalUnitPool
	rs     *ReservationStation
	cdb    *CDBArbiter

	fetchToDispatch *Latch
	dispatchToSched *Latch
	schedToExecute  *Latch

	dispatchQueue []*Instruction
	stateUpdate   []*Instruction

	nextTag    int
	traceDone  bool
}

// NewPipeline creates a driver pulling trace records from source. Setup
// must be called before Run or Tick.
func NewPipeline(source Source) *Pipeline {
	return &Pipeline{source: source}
}

// Setup clears all simulator state and (re)allocates the FU pool per cfg.
// It may be called more than once; a second call to Setup yields a run
// identical to a single Setup with the second parameters (idempotence).
func (p *Pipeline) Setup(cfg Config) {
	p.cfg = cfg.Normalize()

	p.rename = NewRenameTable()
	p.fus = NewFunctionalUnitPool(int(p.cfg.K0), int(p.cfg.K1), int(p.cfg.K2))
	p.rs = NewReservationStation()
	p.cdb = NewCDBArbiter()

	p.fetchToDispatch = &Latch{}
	p.dispatchToSched = &Latch{}
	p.schedToExecute = &Latch{}

	p.dispatchQueue = nil
	p.stateUpdate = nil

	p.nextTag = 1
	p.traceDone = false
}

// empty reports whether every component holds no state: no dispatch
// queue entries, no RS entries, no state-update entries, no bus-waiters,
// no latch contents, and no busy FU.
func (p *Pipeline) empty() bool {
	if len(p.dispatchQueue) != 0 || p.rs.Len() != 0 || len(p.stateUpdate) != 0 || p.cdb.Len() != 0 {
		return false
	}
	if !p.fetchToDispatch.Empty() || !p.dispatchToSched.Empty() || !p.schedToExecute.Empty() {
		return false
	}
	return !p.fus.AnyBusy()
}

// Run executes the simulation to completion and writes the final
// statistics: the reported cycle count is one less than the internal
// loop counter, since the final iteration performs only empty advances
// after the last retirement (spec §4.1 termination).
func (p *Pipeline) Run(stats *Statistics) {
	cycle := 0
	for !p.traceDone || !p.empty() {
		cycle++
		p.Tick(cycle, stats)
	}

	if p.nextTag == 1 {
		// Nothing was ever fetched: empty trace.
		stats.CycleCount = 0
		stats.RetiredInstructions = 0
		return
	}

	if cycle > 0 {
		cycle--
	}
	stats.CycleCount = uint64(cycle)
}

// Tick executes exactly one cycle of the eleven-step reverse-order
// sequence from spec §4.1, folding per-cycle counters into stats.
func (p *Pipeline) Tick(cycle int, stats *Statistics) {
	p.retire(stats)                 // 1. retire
	completed := p.fus.AdvanceTimers(cycle) // 2. advance FU timers
	for _, inst := range completed {
		p.cdb.Enqueue(inst)
	}
	p.broadcast(cycle) // 3. CDB broadcast
	p.startExecutions(cycle)           // 4. start executions from S->E
	p.insertIntoRS(cycle)               // 5. insert D->S latch into RS
	p.moveIntoDispatchQueue(cycle)      // 6. move F->D latch into dispatch queue

	stats.sampleDispatchQueue(len(p.dispatchQueue)) // 7. sample occupancy

	fired := p.issue(cycle) // 8. issue ready RS entries into next S->E
	stats.recordIssued(len(fired))

	p.dispatchToScheduleLatch() // 9. move dispatch queue into next D->S
	p.fetch(cycle)              // 10. fetch into next F->D

	p.advanceLatches() // 11. advance latches
}

// retire flushes the state-update list: remove each entry from the RS
// and count it retired. Unbounded in width (spec §4.2).
func (p *Pipeline) retire(stats *Statistics) {
	for _, inst := range p.stateUpdate {
		p.rs.Remove(inst)
		stats.RetiredInstructions++
	}
	p.stateUpdate = nil
}

// broadcast grants up to R bus-waiters this cycle: frees their FU,
// conditionally clears their rename entry, wakes dependents, and moves
// them to the state-update list.
func (p *Pipeline) broadcast(cycle int) {
	granted := p.cdb.Broadcast(int(p.cfg.R))
	for _, inst := range granted {
		if inst.FU != nil {
			p.fus.Release(inst.FU)
			inst.FU = nil
		}

		if d := inst.Raw.Dest; d >= 0 {
			p.rename.ClearIfOwner(d, inst.Tag)
		}

		p.rs.WakeUp(inst.Tag)

		inst.StateUpdateCycle = cycle
		p.stateUpdate = append(p.stateUpdate, inst)
	}
}

// startExecutions binds each S->E current-latch entry to a free FU of
// its type. A free FU of the required type must exist by construction
// of the lookahead projection; if not, that is a simulator bug.
func (p *Pipeline) startExecutions(cycle int) {
	for _, inst := range p.schedToExecute.Current {
		fu := p.fus.FreeUnit(inst.Type)
		if fu == nil {
			panic("sim: start_executions found no free FU of the required type; lookahead projection is wrong")
		}
		p.fus.Bind(fu, inst, cycle)
	}
	p.schedToExecute.Current = nil
}

// insertIntoRS computes per-source readiness from the rename table,
// installs the destination rename, and appends each D->S latch entry
// to the RS. Same-cycle issue is permitted if dependencies resolve.
func (p *Pipeline) insertIntoRS(cycle int) {
	for _, inst := range p.dispatchToSched.Current {
		inst.ScheduleCycle = cycle
		inst.ScheduleReadyC = cycle

		for s := 0; s < 2; s++ {
			r := inst.Raw.Src[s]
			if tag, ready := p.rename.Lookup(r); ready {
				inst.SrcReady[s] = true
				inst.SrcTag[s] = 0
			} else {
				inst.SrcReady[s] = false
				inst.SrcTag[s] = tag
			}
		}

		if d := inst.Raw.Dest; d >= 0 {
			p.rename.Bind(d, inst.Tag)
		}

		p.rs.Insert(inst)
	}
	p.dispatchToSched.Current = nil
}

// moveIntoDispatchQueue drains the F->D current latch into the FIFO
// dispatch queue.
func (p *Pipeline) moveIntoDispatchQueue(cycle int) {
	for _, inst := range p.fetchToDispatch.Current {
		inst.DispatchCycle = cycle
		p.dispatchQueue = append(p.dispatchQueue, inst)
	}
	p.fetchToDispatch.Current = nil
}

// issue scans the RS for entries that can fire this cycle, bounded by
// the FU lookahead projection, and appends them to the next S->E latch.
func (p *Pipeline) issue(cycle int) []*Instruction {
	free := p.fus.ProjectFree(cycle, int(p.cfg.R))
	fired := p.rs.IssueReady(cycle, free)
	for _, inst := range fired {
		p.schedToExecute.Push(inst)
	}
	return fired
}

// dispatchToScheduleLatch pops from the dispatch queue into the D->S
// next-latch while RS headroom, counting admissions already in flight
// this cycle, permits it.
func (p *Pipeline) dispatchToScheduleLatch() {
	capacity := p.cfg.RSCapacity()
	for len(p.dispatchQueue) > 0 {
		if uint64(p.rs.Len())+uint64(len(p.dispatchToSched.Next)) >= capacity {
			break
		}
		inst := p.dispatchQueue[0]
		p.dispatchQueue = p.dispatchQueue[1:]
		p.dispatchToSched.Push(inst)
	}
}

// fetch pulls up to F instructions from the trace source into the F->D
// next-latch. The first failed pull halts fetch permanently.
func (p *Pipeline) fetch(cycle int) {
	if p.traceDone {
		return
	}

	for i := uint64(0); i < p.cfg.F; i++ {
		rec, ok := p.source.Next()
		if !ok {
			p.traceDone = true
			return
		}

		inst := NewInstruction(p.nextTag, rec, cycle)
		p.nextTag++
		p.fetchToDispatch.Push(inst)
	}
}

// advanceLatches moves every latch's next slot into its current slot.
func (p *Pipeline) advanceLatches() {
	p.fetchToDispatch.Advance()
	p.dispatchToSched.Advance()
	p.schedToExecute.Advance()
}
