package sim

// Source is the pull interface the driver fetches trace records through
// (spec §6's read_instruction). Next returns the next record and true,
// or a zero Record and false at end-of-trace. Once Next returns false it
// must keep returning false — fetch halts permanently on end-of-trace.
type Source interface {
	Next() (Record, bool)
}
