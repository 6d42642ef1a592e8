// Command dramsim runs a trace-driven batch simulation against a
// configured DRAM device and flushes its statistics on completion.
// Grounded on the teacher's cmd/ublk-mem/main.go: flag parsing,
// logging.SetDefault, and a SIGINT handler that finishes the current
// trace line instead of killing the process mid-run.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/behrlich/go-dramsim"
	"github.com/behrlich/go-dramsim/internal/logging"
	"github.com/behrlich/go-dramsim/internal/stats"
	"github.com/behrlich/go-dramsim/internal/trace"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dramsim", flag.ContinueOnError)
	mode := fs.String("mode", "", "cpu, dram, or multicores (overrides the config file's trace_type)")
	statsPath := fs.String("stats", "", "path to write flushed statistics (default: stdout)")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve live Prometheus metrics at this address under /metrics")
	verbose := fs.Bool("v", false, "verbose debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) < 2 {
		return fmt.Errorf("usage: dramsim <cfg> --mode=cpu|dram|multicores [--stats <path>] [--metrics-addr <addr>] <trace...>")
	}
	cfgPath := positional[0]
	tracePaths := positional[1:]

	cfg, err := dramsim.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logLevel := logging.LevelInfo
	if *verbose {
		logLevel = logging.LevelDebug
	}
	logger := logging.NewLogger(&logging.Config{Level: logLevel, Output: os.Stderr})
	logging.SetDefault(logger)

	effectiveMode := *mode
	if effectiveMode == "" {
		effectiveMode = cfg.TraceType
	}
	if effectiveMode == "" {
		effectiveMode = "dram"
	}

	traceFiles, err := openAll(tracePaths)
	if err != nil {
		return err
	}
	defer closeAll(traceFiles)

	cmdTraceWriters, closeCmdTraces, err := openCmdTraceWriters(cfg)
	if err != nil {
		return err
	}
	defer closeCmdTraces()

	mem, err := dramsim.New(cfg, &dramsim.Options{CmdTraceWriters: cmdTraceWriters, Logger: logger})
	if err != nil {
		return err
	}

	logger.Info("simulation starting", "standard", cfg.Standard, "mode", effectiveMode, "channels", mem.Channels())

	if *metricsAddr != "" {
		stopMetrics := serveMetrics(*metricsAddr, mem.Registry(), logger)
		defer stopMetrics()
	}

	var stopRequested atomic.Bool
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		logger.Warn("received interrupt, finishing current trace line then draining")
		stopRequested.Store(true)
	}()

	switch effectiveMode {
	case "dram":
		err = driveDRAMTrace(mem, traceFiles[0], &stopRequested, cfg.EarlyExit)
	case "cpu":
		err = driveCPUTrace(mem, traceFiles[0], cfg.CPUTick, cfg.MemTick, 0, &stopRequested, cfg.EarlyExit)
	case "multicores":
		err = driveMultiCores(mem, traceFiles, cfg.CPUTick, cfg.MemTick, &stopRequested, cfg.EarlyExit)
	default:
		err = fmt.Errorf("dramsim: unknown mode %q", effectiveMode)
	}
	if err != nil {
		return err
	}

	logger.Info("simulation complete", "cycles", mem.Clk())

	return flushStats(mem, *statsPath)
}

func openAll(paths []string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("dramsim: open trace %s: %w", p, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}

// openCmdTraceWriters builds the per-channel, per-rank writer grid
// Options.CmdTraceWriters expects, per spec.md §6's record_cmd_trace /
// print_cmd_trace / cmd_trace_prefix fields: one file named
// "<prefix>-ch<N>-rank<M>.trace" per (channel, rank) when
// record_cmd_trace is set, additionally tee'd to stdout when
// print_cmd_trace is set.
func openCmdTraceWriters(cfg dramsim.Config) ([][]io.Writer, func(), error) {
	if !cfg.RecordCmdTrace && !cfg.PrintCmdTrace {
		return nil, func() {}, nil
	}

	spec, err := cfg.BuildDeviceSpec()
	if err != nil {
		return nil, func() {}, err
	}

	var opened []*os.File
	closeAllFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	grid := make([][]io.Writer, spec.Org.Channels)
	for ch := 0; ch < spec.Org.Channels; ch++ {
		grid[ch] = make([]io.Writer, spec.Org.Ranks)
		for rank := 0; rank < spec.Org.Ranks; rank++ {
			var writers []io.Writer
			if cfg.RecordCmdTrace {
				path := fmt.Sprintf("%s-ch%d-rank%d.trace", cfg.CmdTracePrefix, ch, rank)
				f, err := os.Create(path)
				if err != nil {
					closeAllFiles()
					return nil, func() {}, fmt.Errorf("dramsim: create cmd trace %s: %w", path, err)
				}
				opened = append(opened, f)
				writers = append(writers, f)
			}
			if cfg.PrintCmdTrace {
				writers = append(writers, os.Stdout)
			}
			if len(writers) == 1 {
				grid[ch][rank] = writers[0]
			} else if len(writers) > 1 {
				grid[ch][rank] = io.MultiWriter(writers...)
			}
		}
	}
	return grid, closeAllFiles, nil
}

// serveMetrics starts an HTTP server exposing registry's counters at
// addr under /metrics so a long batch run can be scraped while it is
// still running, per -metrics-addr. The returned func shuts the
// server down; the caller defers it.
func serveMetrics(addr string, registry *stats.Registry, logger *logging.Logger) func() {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(stats.NewCollector(registry, "dramsim"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving live metrics", "addr", addr)

	return func() {
		if err := srv.Close(); err != nil {
			logger.Warn("metrics server close failed", "error", err)
		}
	}
}

func flushStats(mem *dramsim.Memory, path string) error {
	if path == "" {
		return mem.FlushStats(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dramsim: create stats file %s: %w", path, err)
	}
	defer f.Close()
	return mem.FlushStats(f)
}

func driveDRAMTrace(mem *dramsim.Memory, f *os.File, stopRequested *atomic.Bool, earlyExit bool) error {
	accesses, _, err := trace.ReadDRAMTrace(f)
	if err != nil {
		return err
	}
	for _, a := range accesses {
		if stopRequested.Load() {
			break
		}
		req := &dramsim.Request{Addr: a.Addr, Type: dramsim.ReadReq}
		if a.Write {
			req.Type = dramsim.WriteReq
		}
		for !mem.Send(req) {
			mem.Tick()
		}
		mem.Tick()
	}
	return drainIfRequested(mem, earlyExit)
}

func driveCPUTrace(mem *dramsim.Memory, f *os.File, cpuTick, memTick, coreID int, stopRequested *atomic.Bool, earlyExit bool) error {
	accesses, _, err := trace.ReadCPUTrace(f)
	if err != nil {
		return err
	}
	ticker := newClockRatio(cpuTick, memTick, mem)
	for _, a := range accesses {
		if stopRequested.Load() {
			break
		}
		issueCPUAccess(mem, ticker, a, coreID)
	}
	return drainIfRequested(mem, earlyExit)
}

func driveMultiCores(mem *dramsim.Memory, files []*os.File, cpuTick, memTick int, stopRequested *atomic.Bool, earlyExit bool) error {
	perCore := make([][]trace.CPUAccess, len(files))
	for i, f := range files {
		accesses, _, err := trace.ReadCPUTrace(f)
		if err != nil {
			return fmt.Errorf("dramsim: core %d trace: %w", i, err)
		}
		perCore[i] = accesses
	}

	ticker := newClockRatio(cpuTick, memTick, mem)
	idx := make([]int, len(perCore))
	for {
		if stopRequested.Load() {
			break
		}
		progressed := false
		for core, accs := range perCore {
			if idx[core] >= len(accs) {
				continue
			}
			progressed = true
			issueCPUAccess(mem, ticker, accs[idx[core]], core)
			idx[core]++
		}
		if !progressed {
			break
		}
	}
	return drainIfRequested(mem, earlyExit)
}

func issueCPUAccess(mem *dramsim.Memory, ticker *clockRatio, a trace.CPUAccess, coreID int) {
	for b := 0; b < a.Bubbles; b++ {
		ticker.cpuTick()
	}
	readReq := &dramsim.Request{Addr: a.ReadAddr, Type: dramsim.ReadReq, CoreID: coreID}
	for !mem.Send(readReq) {
		ticker.cpuTick()
	}
	ticker.cpuTick()
	if a.HasWrite {
		writeReq := &dramsim.Request{Addr: a.WriteAddr, Type: dramsim.WriteReq, CoreID: coreID}
		for !mem.Send(writeReq) {
			ticker.cpuTick()
		}
		ticker.cpuTick()
	}
}

func drainIfRequested(mem *dramsim.Memory, earlyExit bool) error {
	if !earlyExit {
		return nil
	}
	for i := 0; i < 10_000_000 && !mem.IsEmpty(); i++ {
		mem.Tick()
	}
	if !mem.IsEmpty() {
		return fmt.Errorf("dramsim: memory did not drain before early_exit")
	}
	return nil
}

// clockRatio advances the memory clock mem_tick times for every
// cpu_tick CPU-side ticks, per spec.md §6's cpu_tick/mem_tick fields.
type clockRatio struct {
	cpuTick int
	memTick int
	count   int
	mem     *dramsim.Memory
}

func newClockRatio(cpuTick, memTick int, mem *dramsim.Memory) *clockRatio {
	if cpuTick <= 0 {
		cpuTick = 1
	}
	if memTick <= 0 {
		memTick = 1
	}
	return &clockRatio{cpuTick: cpuTick, memTick: memTick, mem: mem}
}

func (c *clockRatio) cpuTick() {
	c.count++
	if c.count >= c.cpuTick {
		c.count = 0
		for i := 0; i < c.memTick; i++ {
			c.mem.Tick()
		}
	}
}
