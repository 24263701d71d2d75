package sim

// Statistics accumulates the counters the driver reports and exposes the
// derived averages computed by Complete.
type Statistics struct {
	// CycleCount is the total number of cycles simulated.
	CycleCount uint64
	// RetiredInstructions is the number of instructions retired.
	RetiredInstructions uint64

	// AvgInstFired is the average number of instructions issued per cycle.
	AvgInstFired float64
	// AvgInstRetired is the average number of instructions retired per cycle.
	AvgInstRetired float64
	// AvgDispSize is the average dispatch-queue occupancy.
	AvgDispSize float64
	// MaxDispSize is the peak observed dispatch-queue occupancy.
	MaxDispSize uint64

	issuedTotal uint64
	dispQueueSum float64
}

// recordIssued adds fired to the running issued-instruction total.
func (s *Statistics) recordIssued(fired int) {
	s.issuedTotal += uint64(fired)
}

// sampleDispatchQueue folds the current dispatch-queue size into the
// running sum and peak, to be called once per cycle per spec §6.
func (s *Statistics) sampleDispatchQueue(size int) {
	s.dispQueueSum += float64(size)
	if uint64(size) > s.MaxDispSize {
		s.MaxDispSize = uint64(size)
	}
}

// Complete computes the derived averages from the accumulated counters.
// When CycleCount is zero, every derived value is zero.
func (s *Statistics) Complete() {
	if s.CycleCount == 0 {
		s.AvgInstFired = 0
		s.AvgInstRetired = 0
		s.AvgDispSize = 0
		s.MaxDispSize = 0
		return
	}

	cycles := float64(s.CycleCount)
	s.AvgInstFired = float64(s.issuedTotal) / cycles
	s.AvgInstRetired = float64(s.RetiredInstructions) / cycles
	s.AvgDispSize = s.dispQueueSum / cycles
}
