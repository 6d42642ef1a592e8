package stats

import "fmt"

// ChannelStats bundles the named counters §8 of the simulation's
// testable-properties list checks per channel: conservation (incoming
// == read + write requests served; the hit/miss/conflict counts cover
// only requests that reached the DRAM array, so write-forwarded reads
// are in incoming but in none of them), queue-length sums and averages,
// latency sums, active-cycle counts, and the channel's theoretical
// capacity and peak bandwidth.
type ChannelStats struct {
	Channel int

	Incoming   *ScalarStat
	ReadCount  *ScalarStat
	WriteCount *ScalarStat

	ReadRowHits       *ScalarStat
	ReadRowMisses     *ScalarStat
	ReadRowConflicts  *ScalarStat
	WriteRowHits      *ScalarStat
	WriteRowMisses    *ScalarStat
	WriteRowConflicts *ScalarStat

	ReadTransactionBytes  *ScalarStat
	WriteTransactionBytes *ScalarStat

	LatencySum *ScalarStat

	ReadQueueLenSum  *ScalarStat
	WriteQueueLenSum *ScalarStat
	OtherQueueLenSum *ScalarStat
	SampleCount      *ScalarStat

	ActiveCycles *ScalarStat

	CapacityBytes      *ScalarStat
	MaxBandwidthBytesS *ScalarStat
}

// NewChannelStats registers one channel's counters with r, prefixing
// every name with "ch<N>_" so a multi-channel run's flushed stats file
// disambiguates channels the way the teacher's per-queue metrics
// disambiguate queues.
func NewChannelStats(r *Registry, channel int) *ChannelStats {
	p := fmt.Sprintf("ch%d_", channel)
	return &ChannelStats{
		Channel:    channel,
		Incoming:   r.Scalar(p+"incoming_requests", "total requests sent to this channel", 0),
		ReadCount:  r.Scalar(p+"read_requests", "read requests served", 0),
		WriteCount: r.Scalar(p+"write_requests", "write requests served", 0),

		ReadRowHits:       r.Scalar(p+"read_row_hits", "reads that hit the open row", 0),
		ReadRowMisses:     r.Scalar(p+"read_row_misses", "reads to a closed bank", 0),
		ReadRowConflicts:  r.Scalar(p+"read_row_conflicts", "reads that required a precharge first", 0),
		WriteRowHits:      r.Scalar(p+"write_row_hits", "writes that hit the open row", 0),
		WriteRowMisses:    r.Scalar(p+"write_row_misses", "writes to a closed bank", 0),
		WriteRowConflicts: r.Scalar(p+"write_row_conflicts", "writes that required a precharge first", 0),

		ReadTransactionBytes:  r.Scalar(p+"read_transaction_bytes", "bytes transferred by completed read transactions", 0),
		WriteTransactionBytes: r.Scalar(p+"write_transaction_bytes", "bytes transferred by completed write transactions", 0),

		LatencySum: r.Scalar(p+"latency_sum", "sum of depart-arrive over completed requests, cycles", 0),

		ReadQueueLenSum:  r.Scalar(p+"readq_len_sum", "sum of readq length sampled every cycle", 0),
		WriteQueueLenSum: r.Scalar(p+"writeq_len_sum", "sum of writeq length sampled every cycle", 0),
		OtherQueueLenSum: r.Scalar(p+"otherq_len_sum", "sum of otherq length sampled every cycle", 0),
		SampleCount:      r.Scalar(p+"queue_samples", "number of cycles queue lengths were sampled", 0),

		ActiveCycles: r.Scalar(p+"active_cycles", "cycles in which a command was issued", 0),

		CapacityBytes:      r.Scalar(p+"capacity_bytes", "addressable byte capacity of this channel", 0),
		MaxBandwidthBytesS: r.Scalar(p+"max_bandwidth_bytes_per_ns", "theoretical peak bandwidth, bytes/ns", 3),
	}
}

// AvgLatency returns the mean completed-request latency in cycles.
func (c *ChannelStats) AvgLatency() float64 {
	served := c.ReadCount.Value + c.WriteCount.Value
	if served == 0 {
		return 0
	}
	return c.LatencySum.Value / served
}

// AvgReadQueueLen returns the mean sampled readq occupancy.
func (c *ChannelStats) AvgReadQueueLen() float64 {
	if c.SampleCount.Value == 0 {
		return 0
	}
	return c.ReadQueueLenSum.Value / c.SampleCount.Value
}

// AvgWriteQueueLen returns the mean sampled writeq occupancy.
func (c *ChannelStats) AvgWriteQueueLen() float64 {
	if c.SampleCount.Value == 0 {
		return 0
	}
	return c.WriteQueueLenSum.Value / c.SampleCount.Value
}
