// Package trace provides the pull-based instruction sources the pipeline
// driver consumes. These are the external collaborators spec.md §1 scopes
// out of the simulation core: trace parsing and the instruction-source
// callback have no simulation semantics of their own.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/duckyzx/OoOcpusim/sim"
)

// SliceSource wraps an in-memory slice of records, yielding them in
// order. Used by tests and by embedders that already hold a trace.
type SliceSource struct {
	records []sim.Record
	pos     int
}

// NewSliceSource returns a Source that replays records in order.
func NewSliceSource(records []sim.Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record, or false once exhausted.
func (s *SliceSource) Next() (sim.Record, bool) {
	if s.pos >= len(s.records) {
		return sim.Record{}, false
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, true
}

// FileSource replays records parsed up front from a text trace file.
type FileSource struct {
	*SliceSource
}

// ParseRecord parses one whitespace-separated "op dest src0 src1" line
// into a Record. Any field negative means "none", per spec §6.
func ParseRecord(line string) (sim.Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return sim.Record{}, fmt.Errorf("trace: expected 4 fields (op dest src0 src1), got %d", len(fields))
	}

	values := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return sim.Record{}, fmt.Errorf("trace: field %d (%q) is not an integer: %w", i, f, err)
		}
		values[i] = v
	}

	return sim.Record{
		OpCode: values[0],
		Dest:   values[1],
		Src:    [2]int{values[2], values[3]},
	}, nil
}

// Load reads path as a text trace, one instruction per line, and returns
// a FileSource replaying it. Blank lines and lines starting with "#" are
// skipped. A malformed line is an error at load time, not a silent
// runtime skip, matching the corpus's loader.Load style: all trace-
// format validation happens at this boundary, never inside the core.
func Load(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: failed to open trace file: %w", err)
	}
	defer f.Close()

	var records []sim.Record
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("trace: %s:%d: %w", path, lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: failed to read trace file: %w", err)
	}

	return &FileSource{SliceSource: NewSliceSource(records)}, nil
}
