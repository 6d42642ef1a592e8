// Package trace reads the two line-oriented trace formats spec.md §6
// defines -- raw DRAM command traces and CPU instruction+address
// traces -- plus a multicores reader that parses one CPU trace per
// core and returns them separately. Grounded on spec.md §6 and
// original_source/scripts-ll/generatetrace.c, which generates the CPU
// trace format this package consumes.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/behrlich/go-dramsim/internal/logging"
)

// DRAMAccess is one line of a raw DRAM trace: an address and whether
// it is a read or a write.
type DRAMAccess struct {
	Addr  uint64
	Write bool
}

// CPUAccess is one line of a CPU trace: a bubble count (non-memory
// instructions preceding this access), the read address it issues,
// and an optional evicted dirty-cacheline write address.
type CPUAccess struct {
	Bubbles   int
	ReadAddr  uint64
	WriteAddr uint64
	HasWrite  bool
}

// SkippedLine records a malformed trace line skipped per spec.md §7
// ("malformed trace lines: skip with a logged warning; continue").
type SkippedLine struct {
	LineNo int
	Text   string
	Reason string
}

// ReadDRAMTrace parses `<addr_hex> <R|W>` lines from r.
func ReadDRAMTrace(r io.Reader) ([]DRAMAccess, []SkippedLine, error) {
	var out []DRAMAccess
	var skipped []SkippedLine

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			skipped = append(skipped, skip(lineNo, line, "expected two fields"))
			continue
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 64)
		if err != nil {
			skipped = append(skipped, skip(lineNo, line, "bad hex address"))
			continue
		}
		var write bool
		switch fields[1] {
		case "R", "r":
			write = false
		case "W", "w":
			write = true
		default:
			skipped = append(skipped, skip(lineNo, line, "expected R or W"))
			continue
		}
		out = append(out, DRAMAccess{Addr: addr, Write: write})
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("trace: read dram trace: %w", err)
	}
	return out, skipped, nil
}

// ReadCPUTrace parses `<bubble_count> <read_addr> [<write_addr>]`
// lines from r.
func ReadCPUTrace(r io.Reader) ([]CPUAccess, []SkippedLine, error) {
	var out []CPUAccess
	var skipped []SkippedLine

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields) > 3 {
			skipped = append(skipped, skip(lineNo, line, "expected 2 or 3 fields"))
			continue
		}
		bubbles, err := strconv.Atoi(fields[0])
		if err != nil {
			skipped = append(skipped, skip(lineNo, line, "bad bubble count"))
			continue
		}
		readAddr, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			skipped = append(skipped, skip(lineNo, line, "bad read address"))
			continue
		}
		access := CPUAccess{Bubbles: bubbles, ReadAddr: readAddr}
		if len(fields) == 3 {
			writeAddr, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				skipped = append(skipped, skip(lineNo, line, "bad write address"))
				continue
			}
			access.WriteAddr = writeAddr
			access.HasWrite = true
		}
		out = append(out, access)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("trace: read cpu trace: %w", err)
	}
	return out, skipped, nil
}

// ReadMultiCoreTraces parses one CPU trace per reader, returning one
// []CPUAccess per core in the same order as readers, per
// original_source/src/Main.cpp's multicores trace_type.
func ReadMultiCoreTraces(readers []io.Reader) ([][]CPUAccess, error) {
	cores := make([][]CPUAccess, len(readers))
	for i, r := range readers {
		accesses, skipped, err := ReadCPUTrace(r)
		if err != nil {
			return nil, fmt.Errorf("trace: core %d: %w", i, err)
		}
		for _, s := range skipped {
			logging.Default().Warn("skipped malformed trace line", "core", i, "line", s.LineNo, "reason", s.Reason)
		}
		cores[i] = accesses
	}
	return cores, nil
}

func skip(lineNo int, text, reason string) SkippedLine {
	logging.Default().Warn("skipped malformed trace line", "line", lineNo, "reason", reason)
	return SkippedLine{LineNo: lineNo, Text: text, Reason: reason}
}
