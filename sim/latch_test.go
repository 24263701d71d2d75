package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duckyzx/OoOcpusim/sim"
)

var _ = Describe("Latch", func() {
	It("starts empty", func() {
		l := &sim.Latch{}
		Expect(l.Empty()).To(BeTrue())
	})

	It("moves pushed entries into Current only after Advance", func() {
		l := &sim.Latch{}
		inst := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
		l.Push(inst)

		Expect(l.Current).To(BeEmpty())
		Expect(l.Empty()).To(BeFalse())

		l.Advance()
		Expect(l.Current).To(ConsistOf(inst))
		Expect(l.Next).To(BeEmpty())
	})

	It("clears both slots", func() {
		l := &sim.Latch{}
		inst := sim.NewInstruction(1, sim.Record{OpCode: 0, Dest: -1, Src: [2]int{-1, -1}}, 1)
		l.Push(inst)
		l.Advance()
		l.Clear()
		Expect(l.Empty()).To(BeTrue())
	})
})
