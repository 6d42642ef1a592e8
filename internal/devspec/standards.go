package devspec

import "fmt"

// Standard names one of the DRAM protocols (or research variant) this
// package can build a DeviceSpec for.
type Standard string

const (
	DDR3     Standard = "DDR3"
	DDR4     Standard = "DDR4"
	LPDDR3   Standard = "LPDDR3"
	LPDDR4   Standard = "LPDDR4"
	GDDR5    Standard = "GDDR5"
	HBM      Standard = "HBM"
	WideIO   Standard = "WideIO"
	WideIO2  Standard = "WideIO2"
	SALPMASA Standard = "SALP-MASA"
	DSARP    Standard = "DSARP"
	ALDRAM   Standard = "ALDRAM"
	TLDRAM   Standard = "TLDRAM"
)

// BuildOptions parameterizes Build: named organization/speed presets
// plus the instance counts a config file sets explicitly (spec.md
// section 6's `channels`, `ranks`, `subarrays`).
type BuildOptions struct {
	Standard  Standard
	Org       string // named organization preset, e.g. "2Gb_x8"
	Speed     string // named speed preset, e.g. "1600K"
	Channels  int    // overrides the preset's channel count if > 0
	Ranks     int    // overrides the preset's rank count if > 0
	Subarrays int    // overrides the preset's subarray count if > 0
}

// Build constructs the DeviceSpec for the requested standard and named
// presets. It is the single entry point config.Config uses to turn a
// `standard`/`org`/`speed` triple into an immutable DeviceSpec.
func Build(opts BuildOptions) (*DeviceSpec, error) {
	family, ok := families[opts.Standard]
	if !ok {
		return nil, fmt.Errorf("devspec: unknown standard %q", opts.Standard)
	}

	org, ok := family.organizations[opts.Org]
	if !ok {
		return nil, fmt.Errorf("devspec: unknown organization %q for standard %s", opts.Org, opts.Standard)
	}
	speed, ok := family.speeds[opts.Speed]
	if !ok {
		return nil, fmt.Errorf("devspec: unknown speed grade %q for standard %s", opts.Speed, opts.Standard)
	}

	if opts.Channels > 0 {
		org.Channels = opts.Channels
	}
	if opts.Ranks > 0 {
		org.Ranks = opts.Ranks
	}
	if opts.Subarrays > 0 {
		org.Subarrays = opts.Subarrays
	}
	if org.Channels <= 0 {
		org.Channels = 1
	}
	if org.Ranks <= 0 {
		org.Ranks = 1
	}
	if org.Subarrays <= 0 {
		org.Subarrays = 1
	}
	if !isPowerOfTwo(org.Channels) {
		return nil, fmt.Errorf("devspec: channel count %d must be a power of two", org.Channels)
	}
	if !isPowerOfTwo(org.Ranks) {
		return nil, fmt.Errorf("devspec: rank count %d must be a power of two", org.Ranks)
	}

	spec := &DeviceSpec{
		Standard: opts.Standard,
		Org:      org,
		TCK:      speed.tck,
		Timing:   cloneTiming(speed.timing),
	}
	if family.subarrayRowBuffer {
		spec.RowBufferAt = Subarray
	} else {
		spec.RowBufferAt = Bank
	}

	buildCommon(spec, family.hasRefSB)
	family.extend(spec)
	spec.ReadLatency = computeReadLatency(spec)

	return spec, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func cloneTiming(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// computeReadLatency derives spec.read_latency: the cycles from
// issuing the terminal RD to data being available, CL + burst transfer.
func computeReadLatency(spec *DeviceSpec) int {
	cl := spec.Timing["tCL"]
	burst := spec.Org.PrefetchBeats / 2
	if burst < 1 {
		burst = 1
	}
	return cl + burst
}

// family bundles the organization/speed presets and the table
// extensions particular to one standard.
type family struct {
	organizations     map[string]Organization
	speeds            map[string]speedGrade
	hasRefSB          bool
	subarrayRowBuffer bool
	extend            func(*DeviceSpec)
}

type speedGrade struct {
	tck    float64
	timing map[string]int
}

var families map[Standard]family

func init() {
	families = map[Standard]family{
		DDR3:     ddr3Family(),
		DDR4:     ddr4Family(),
		LPDDR3:   lpddr3Family(),
		LPDDR4:   lpddr4Family(),
		GDDR5:    gddr5Family(),
		HBM:      hbmFamily(),
		WideIO:   wideIOFamily(),
		WideIO2:  wideIO2Family(),
		SALPMASA: salpMASAFamily(),
		DSARP:    dsarpFamily(),
		ALDRAM:   aldramFamily(),
		TLDRAM:   tldramFamily(),
	}
}
