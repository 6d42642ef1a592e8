// Package addrmap turns a linear address into a devspec.AddrVec under
// one of the two address mapping schemes DRAM controllers commonly
// use: channel/rank/bank-major (ChRaBaRoCo) or row-major with the
// channel bit interleaved at the very bottom (RoBaRaCoCh).
package addrmap

import (
	"fmt"
	"math/bits"

	"github.com/behrlich/go-dramsim/internal/devspec"
)

// Scheme selects which field ordering Mapper consumes address bits in.
type Scheme int

const (
	// ChRaBaRoCo consumes bits, LSB first, as Column, Row, Bank,
	// [BankGroup], Rank, Channel -- i.e. Channel occupies the highest
	// bits and Column the lowest (after the burst-alignment bits).
	ChRaBaRoCo Scheme = iota
	// RoBaRaCoCh slices Channel off the very bottom, then Column, then
	// the remaining levels ascending up through Row at the top.
	RoBaRaCoCh
)

type field int

const (
	fChannel field = iota
	fColumn
	fRank
	fBankGroup
	fBank
	fRow
)

// Mapper holds the bit widths derived from one DeviceSpec's
// organization and the consumption order a Scheme prescribes.
type Mapper struct {
	scheme Scheme
	txBits int
	widths map[field]int
	order  []field // LSB-first consumption order
}

// New builds a Mapper for spec's organization. Channel and rank counts
// must already be powers of two -- devspec.Build enforces this.
func New(scheme Scheme, spec *devspec.DeviceSpec) *Mapper {
	org := spec.Org
	widths := map[field]int{
		fChannel: log2(org.Channels),
		fRank:    log2(org.Ranks),
		fBank:    log2(org.Banks),
		fRow:     log2(org.Rows),
		fColumn:  log2(org.Columns),
	}
	if org.HasBankGroups() {
		widths[fBankGroup] = log2(org.BankGroups)
	}

	txBits := log2(org.PrefetchBeats * org.ChannelWidthBits / 8)

	var order []field
	switch scheme {
	case RoBaRaCoCh:
		order = []field{fChannel, fColumn, fRank, fBankGroup, fBank, fRow}
	default:
		order = []field{fColumn, fRow, fBank, fBankGroup, fRank, fChannel}
	}

	return &Mapper{scheme: scheme, txBits: txBits, widths: widths, order: order}
}

// Map decodes a linear byte address into its hierarchy coordinates.
func (m *Mapper) Map(addr uint64) devspec.AddrVec {
	addr >>= uint(m.txBits)

	var vec devspec.AddrVec
	for _, f := range m.order {
		w := m.widths[f]
		if w == 0 {
			continue
		}
		val := int(addr & ((1 << uint(w)) - 1))
		addr >>= uint(w)
		switch f {
		case fChannel:
			vec.Channel = val
		case fColumn:
			vec.Column = val
		case fRank:
			vec.Rank = val
		case fBankGroup:
			vec.BankGroup = val
		case fBank:
			vec.Bank = val
		case fRow:
			vec.Row = val
		}
	}
	return vec
}

func log2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// String names the scheme, for config diagnostics.
func (s Scheme) String() string {
	switch s {
	case ChRaBaRoCo:
		return "ChRaBaRoCo"
	case RoBaRaCoCh:
		return "RoBaRaCoCh"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// ParseScheme maps a config string onto a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "ChRaBaRoCo", "":
		return ChRaBaRoCo, nil
	case "RoBaRaCoCh":
		return RoBaRaCoCh, nil
	default:
		return 0, fmt.Errorf("addrmap: unknown scheme %q", s)
	}
}
