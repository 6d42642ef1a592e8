// Package dramsim is a cycle-accurate DRAM timing simulator: given a
// DeviceSpec describing a JEDEC standard (or research variant) and a
// stream of memory requests, it reproduces the command sequence a real
// memory controller would issue, and the cycle counts, row-buffer
// hit/miss/conflict rates, and queueing statistics that come out of
// doing so.
//
// Memory is the top-level entry point: New builds one from a Config,
// Send enqueues a Request, and Tick advances the simulated clock by
// one cycle. cmd/dramsim wraps this into a trace-driven batch runner;
// callers embedding dramsim directly drive Tick from their own loop.
package dramsim
