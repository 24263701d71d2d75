package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duckyzx/OoOcpusim/sim"
)

var _ = Describe("FunctionalUnitPool", func() {
	It("allocates the requested counts per type", func() {
		pool := sim.NewFunctionalUnitPool(2, 1, 3)
		Expect(pool.FreeUnit(0)).NotTo(BeNil())
		Expect(pool.FreeUnit(1)).NotTo(BeNil())
		Expect(pool.FreeUnit(2)).NotTo(BeNil())
	})

	It("returns nil when no free unit of a type exists", func() {
		pool := sim.NewFunctionalUnitPool(0, 1, 0)
		Expect(pool.FreeUnit(0)).To(BeNil())
		Expect(pool.FreeUnit(2)).To(BeNil())
	})

	It("binds and releases a unit", func() {
		pool := sim.NewFunctionalUnitPool(1, 0, 0)
		fu := pool.FreeUnit(0)
		inst := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)

		pool.Bind(fu, inst, 4)
		Expect(pool.FreeUnit(0)).To(BeNil())
		Expect(pool.AnyBusy()).To(BeTrue())

		pool.Release(fu)
		Expect(pool.FreeUnit(0)).NotTo(BeNil())
		Expect(pool.AnyBusy()).To(BeFalse())
	})

	It("projects idle units as immediately free", func() {
		pool := sim.NewFunctionalUnitPool(1, 1, 1)
		free := pool.ProjectFree(1, 1)
		Expect(free).To(Equal([3]int{1, 1, 1}))
	})

	It("projects a busy unit with remaining==1 as free next cycle, bounded by CDB width", func() {
		pool := sim.NewFunctionalUnitPool(2, 0, 0)
		a := pool.FreeUnit(0)
		inst1 := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
		pool.Bind(a, inst1, 1)

		b := pool.FreeUnit(0)
		inst2 := sim.NewInstruction(2, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
		pool.Bind(b, inst2, 1)

		// Both FUs are busy with remaining==1: both are completion
		// candidates for "cycle+1", but CDB width 1 only admits one.
		free := pool.ProjectFree(1, 1)
		Expect(free[0]).To(Equal(1))
	})

	It("advances timers and reports completions only once", func() {
		pool := sim.NewFunctionalUnitPool(1, 0, 0)
		fu := pool.FreeUnit(0)
		inst := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
		pool.Bind(fu, inst, 1)

		completed := pool.AdvanceTimers(2)
		Expect(completed).To(ConsistOf(inst))
		Expect(inst.CompletionCycle).To(Equal(2))
		Expect(inst.WaitingBus).To(BeTrue())

		// A further tick without release should not re-report it, and
		// should not overwrite CompletionCycle.
		completed = pool.AdvanceTimers(3)
		Expect(completed).To(BeEmpty())
		Expect(inst.CompletionCycle).To(Equal(2))
	})
})
