package addrmap

import "github.com/behrlich/go-dramsim/internal/devspec"

// ChannelCapacityBytes returns one channel's total addressable byte
// capacity given spec's organization.
func ChannelCapacityBytes(spec *devspec.DeviceSpec) float64 {
	org := spec.Org
	banksPerRank := org.BanksPerRank()
	bytesPerRow := org.Columns * org.PrefetchBeats * org.ChannelWidthBits / 8
	return float64(org.Ranks) * float64(banksPerRank) * float64(org.Rows) * float64(bytesPerRow)
}

// PeakBandwidthBytesPerNS returns one channel's theoretical peak
// bandwidth in bytes/ns, derived from bus width and cycle time alone
// (DDR: two transfers per clock).
func PeakBandwidthBytesPerNS(spec *devspec.DeviceSpec) float64 {
	if spec.TCK <= 0 {
		return 0
	}
	bytesPerCycle := float64(spec.Org.ChannelWidthBits) * 2 / 8
	return bytesPerCycle / spec.TCK
}
