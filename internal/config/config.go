// Package config loads a simulation run's parameters from a TOML file
// and turns them into the concrete components the root dramsim package
// and internal/controller need: a devspec.DeviceSpec and the
// Scheduler/RowPolicy implementations the run asked for. Grounded
// on the teacher's ctrl.DeviceParams/DefaultDeviceParams flat-struct
// pattern, loaded from TOML instead of passed as a Go literal.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/rowpolicy"
	"github.com/behrlich/go-dramsim/internal/scheduler"
)

// Config is every knob a run's TOML file may set, matching spec.md §6's
// configuration table.
type Config struct {
	Standard  string `toml:"standard"`
	Org       string `toml:"org"`
	Speed     string `toml:"speed"`
	Channels  int    `toml:"channels"`
	Ranks     int    `toml:"ranks"`
	Subarrays int    `toml:"subarrays"`

	AddrMapScheme string `toml:"addrmap"`

	SchedulerPolicy string `toml:"scheduler"`
	SchedulerCap    int    `toml:"scheduler_cap"`

	RowPolicy        string `toml:"row_policy"`
	RowPolicyTimeout int64  `toml:"row_policy_timeout"`

	ReadQueueMax  int `toml:"readq_max"`
	WriteQueueMax int `toml:"writeq_max"`
	OtherQueueMax int `toml:"otherq_max"`

	TraceType string `toml:"trace_type"`
	CPUTick   int    `toml:"cpu_tick"`
	MemTick   int    `toml:"mem_tick"`
	Cores     int    `toml:"cores"`

	EarlyExit        bool   `toml:"early_exit"`
	RecordCmdTrace   bool   `toml:"record_cmd_trace"`
	PrintCmdTrace    bool   `toml:"print_cmd_trace"`
	CmdTracePrefix   string `toml:"cmd_trace_prefix"`
}

// DefaultConfig mirrors the teacher's DefaultDeviceParams: a runnable
// baseline (single-channel, single-rank DDR3) a caller can override
// field by field, and that Load starts from, so it falls back to these
// values for any key the file leaves unset.
func DefaultConfig() Config {
	return Config{
		Standard:  "DDR3",
		Org:       "2Gb_x8",
		Speed:     "1600K",
		Channels:  1,
		Ranks:     1,
		Subarrays: 1,

		AddrMapScheme: "ChRaBaRoCo",

		SchedulerPolicy: "frfcfs",
		SchedulerCap:    4,

		RowPolicy:        "closed",
		RowPolicyTimeout: 0,

		ReadQueueMax:  32,
		WriteQueueMax: 32,
		OtherQueueMax: 8,

		TraceType: "dram",
		CPUTick:   1,
		MemTick:   1,
		Cores:     1,

		EarlyExit:      true,
		RecordCmdTrace: false,
		PrintCmdTrace:  false,
		CmdTracePrefix: "cmd-trace",
	}
}

// Load decodes path as TOML over DefaultConfig: any key the file omits
// keeps its default value, matching the teacher's "construct defaults,
// then apply overrides" convention.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: decode %s", path)
	}
	return cfg, nil
}

// BuildDeviceSpec turns the standard/org/speed/channels/ranks/subarrays
// fields into a devspec.DeviceSpec.
func (c Config) BuildDeviceSpec() (*devspec.DeviceSpec, error) {
	spec, err := devspec.Build(devspec.BuildOptions{
		Standard:  devspec.Standard(c.Standard),
		Org:       c.Org,
		Speed:     c.Speed,
		Channels:  c.Channels,
		Ranks:     c.Ranks,
		Subarrays: c.Subarrays,
	})
	if err != nil {
		return nil, errors.Wrap(err, "config: build device spec")
	}
	return spec, nil
}

// BuildScheduler resolves SchedulerPolicy to a concrete
// scheduler.Policy.
func (c Config) BuildScheduler() (scheduler.Policy, error) {
	switch c.SchedulerPolicy {
	case "", "fcfs":
		return scheduler.FCFS{}, nil
	case "frfcfs":
		return scheduler.FRFCFS{}, nil
	case "frfcfs-cap":
		cap := c.SchedulerCap
		if cap <= 0 {
			cap = 4
		}
		return scheduler.NewFRFCFSCap(cap), nil
	case "frfcfs-priorhit":
		return scheduler.FRFCFSPriorHit{}, nil
	default:
		return nil, fmt.Errorf("config: unknown scheduler policy %q", c.SchedulerPolicy)
	}
}

// BuildRowPolicy resolves RowPolicy to a concrete rowpolicy.Policy.
func (c Config) BuildRowPolicy() (rowpolicy.Policy, error) {
	switch c.RowPolicy {
	case "", "closed":
		return rowpolicy.Closed{}, nil
	case "open":
		return rowpolicy.Open{}, nil
	case "timeout":
		return rowpolicy.Timeout{T: c.RowPolicyTimeout}, nil
	default:
		return nil, fmt.Errorf("config: unknown row policy %q", c.RowPolicy)
	}
}
