package dramsim

import (
	"io"

	"github.com/behrlich/go-dramsim/internal/addrmap"
	"github.com/behrlich/go-dramsim/internal/controller"
	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/logging"
	"github.com/behrlich/go-dramsim/internal/stats"
)

// Options configures a Memory beyond what Config's DRAM-standard
// fields cover: a shared stats Registry/Logger (so an embedding caller
// can fold dramsim's counters into a larger run), and per-channel
// command-trace sinks.
type Options struct {
	Registry *stats.Registry
	Logger   *logging.Logger

	// CmdTraceWriters, if set, has one entry per channel; each entry is
	// itself indexed by rank within that channel, matching
	// controller.Config.CmdTraceWriters. A nil or short slice disables
	// tracing for the channels/ranks it omits.
	CmdTraceWriters [][]io.Writer
}

// Memory is the top-level simulated device: one DeviceSpec, one
// address mapper translating linear addresses into hierarchy
// coordinates, and one Controller per channel. Grounded on the
// teacher's Device type as the object a caller drives end to end, with
// CreateAndServe's kernel handshake replaced by pure in-process
// construction.
type Memory struct {
	spec   *devspec.DeviceSpec
	mapper *addrmap.Mapper

	channels []*controller.Controller
	chanStats []*stats.ChannelStats

	registry *stats.Registry
	logger   *logging.Logger

	clk int64
}

// New builds a Memory from cfg: a DeviceSpec, an address mapper, and
// cfg.Channels Controllers, each with its own Scheduler and RowPolicy
// instance (stateful policies like FRFCFS-Cap key off bank identity
// alone, so sharing one instance across channels would let one
// channel's occupancy throttle another's).
func New(cfg Config, opts *Options) (*Memory, error) {
	if opts == nil {
		opts = &Options{}
	}

	spec, err := cfg.BuildDeviceSpec()
	if err != nil {
		return nil, newError("New", CodeInvalidConfig, "build device spec", err)
	}
	scheme, err := addrmap.ParseScheme(cfg.AddrMapScheme)
	if err != nil {
		return nil, newError("New", CodeInvalidConfig, "parse address map scheme", err)
	}
	mapper := addrmap.New(scheme, spec)

	registry := opts.Registry
	if registry == nil {
		registry = stats.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	m := &Memory{spec: spec, mapper: mapper, registry: registry, logger: logger}

	capacity := addrmap.ChannelCapacityBytes(spec)
	bandwidth := addrmap.PeakBandwidthBytesPerNS(spec)

	for ch := 0; ch < spec.Org.Channels; ch++ {
		sched, err := cfg.BuildScheduler()
		if err != nil {
			return nil, newError("New", CodeInvalidConfig, "build scheduler", err)
		}
		rp, err := cfg.BuildRowPolicy()
		if err != nil {
			return nil, newError("New", CodeInvalidConfig, "build row policy", err)
		}

		cs := stats.NewChannelStats(registry, ch)
		cs.CapacityBytes.Set(capacity)
		cs.MaxBandwidthBytesS.Set(bandwidth)

		var traceWriters []io.Writer
		if ch < len(opts.CmdTraceWriters) {
			traceWriters = opts.CmdTraceWriters[ch]
		}

		c := controller.New(controller.Config{
			Channel:         ch,
			Spec:            spec,
			Scheduler:       sched,
			RowPolicy:       rp,
			ReadQueueMax:    cfg.ReadQueueMax,
			WriteQueueMax:   cfg.WriteQueueMax,
			OtherQueueMax:   cfg.OtherQueueMax,
			Stats:           cs,
			Logger:          logger,
			CmdTraceWriters: traceWriters,
		})

		m.channels = append(m.channels, c)
		m.chanStats = append(m.chanStats, cs)
	}

	return m, nil
}

// Spec returns the DeviceSpec this Memory was built from.
func (m *Memory) Spec() *devspec.DeviceSpec { return m.spec }

// Channels returns the number of channels this Memory simulates.
func (m *Memory) Channels() int { return len(m.channels) }

// Registry returns the stats registry every channel's counters are
// registered in -- the same one passed via Options, if any.
func (m *Memory) Registry() *stats.Registry { return m.registry }

// Clk returns the number of cycles Tick has been called.
func (m *Memory) Clk() int64 { return m.clk }

// Serving sums every channel's in-flight serving counter -- zero once
// a run has fully drained.
func (m *Memory) Serving() int64 {
	var total int64
	for _, c := range m.channels {
		total += c.Serving()
	}
	return total
}

// ChannelStats returns channel ch's counters, for tests and
// diagnostics that want a single channel's numbers without parsing a
// flushed stats file.
func (m *Memory) ChannelStats(ch int) *stats.ChannelStats {
	return m.chanStats[ch]
}

// Send maps req.Addr to hierarchy coordinates, routes it to its
// channel's Controller, and enqueues it. Reports false if the target
// queue is full -- the caller must retry on a later cycle.
func (m *Memory) Send(req *Request) bool {
	req.AddrVec = m.mapper.Map(req.Addr)
	c := m.channels[req.AddrVec.Channel]
	return c.Enqueue(req)
}

// Tick advances every channel by one cycle. Held under the registry's
// lock so a concurrent metrics scrape (cmd/dramsim -metrics-addr)
// never observes a stat mid-update.
func (m *Memory) Tick() {
	m.registry.Lock()
	defer m.registry.Unlock()
	m.clk++
	for _, c := range m.channels {
		c.Tick()
	}
}

// PendingRequests sums every channel's in-flight request count.
func (m *Memory) PendingRequests() int {
	total := 0
	for _, c := range m.channels {
		total += c.PendingRequests()
	}
	return total
}

// IsEmpty reports whether every channel has drained its queues --
// the condition a batch runner waits for after the last trace line is
// consumed, per spec.md §6's early-exit behavior.
func (m *Memory) IsEmpty() bool {
	return m.PendingRequests() == 0
}

// FlushStats writes every registered statistic to w, in registration
// order, once a run is finished.
func (m *Memory) FlushStats(w io.Writer) error {
	m.registry.Lock()
	defer m.registry.Unlock()
	if err := m.registry.Flush(w); err != nil {
		return newError("FlushStats", CodeInternal, "flush registry", err)
	}
	return nil
}

// ChannelOf reports which channel addr maps to, without enqueuing
// anything -- useful for a caller building its own multi-channel
// routing diagnostics.
func (m *Memory) ChannelOf(addr uint64) int {
	return m.mapper.Map(addr).Channel
}
