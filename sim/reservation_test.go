package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duckyzx/OoOcpusim/sim"
)

func readyInst(tag int) *sim.Instruction {
	inst := sim.NewInstruction(tag, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
	inst.SrcReady = [2]bool{true, true}
	inst.ScheduleReadyC = 1
	return inst
}

var _ = Describe("ReservationStation", func() {
	var rs *sim.ReservationStation

	BeforeEach(func() {
		rs = sim.NewReservationStation()
	})

	It("inserts and removes entries", func() {
		inst := readyInst(1)
		rs.Insert(inst)
		Expect(rs.Len()).To(Equal(1))

		rs.Remove(inst)
		Expect(rs.Len()).To(Equal(0))
	})

	It("wakes up entries pending on a producer tag", func() {
		waiter := sim.NewInstruction(2, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{1, -1}}, 1)
		waiter.SrcReady = [2]bool{false, true}
		waiter.SrcTag = [2]int{1, 0}
		rs.Insert(waiter)

		rs.WakeUp(1)
		Expect(waiter.SrcReady[0]).To(BeTrue())
	})

	It("does not wake entries pending on a different tag", func() {
		waiter := sim.NewInstruction(2, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{1, -1}}, 1)
		waiter.SrcReady = [2]bool{false, true}
		waiter.SrcTag = [2]int{1, 0}
		rs.Insert(waiter)

		rs.WakeUp(99)
		Expect(waiter.SrcReady[0]).To(BeFalse())
	})

	It("issues ready entries in ascending tag order", func() {
		second := readyInst(2)
		first := readyInst(1)
		rs.Insert(second)
		rs.Insert(first)

		fired := rs.IssueReady(1, [3]int{2, 2, 2})
		Expect(fired).To(HaveLen(2))
		Expect(fired[0].Tag).To(Equal(1))
		Expect(fired[1].Tag).To(Equal(2))
	})

	It("skips entries whose sources are not ready", func() {
		inst := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{5, -1}}, 1)
		inst.SrcReady = [2]bool{false, true}
		inst.ScheduleReadyC = 1
		rs.Insert(inst)

		fired := rs.IssueReady(1, [3]int{2, 2, 2})
		Expect(fired).To(BeEmpty())
	})

	It("skips entries not yet at their ready cycle", func() {
		inst := readyInst(1)
		inst.ScheduleReadyC = 5
		rs.Insert(inst)

		fired := rs.IssueReady(1, [3]int{2, 2, 2})
		Expect(fired).To(BeEmpty())
	})

	It("stops issuing a type once its projected headroom is exhausted", func() {
		a := readyInst(1)
		b := readyInst(2)
		rs.Insert(a)
		rs.Insert(b)

		fired := rs.IssueReady(1, [3]int{1, 0, 0})
		Expect(fired).To(HaveLen(1))
		Expect(fired[0].Tag).To(Equal(1))
		Expect(b.Issued).To(BeFalse())
	})

	It("never reissues an already-issued entry", func() {
		inst := readyInst(1)
		inst.Issued = true
		rs.Insert(inst)

		fired := rs.IssueReady(1, [3]int{2, 2, 2})
		Expect(fired).To(BeEmpty())
	})
})
