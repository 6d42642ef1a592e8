package stats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector adapts a Registry into a prometheus.Collector, for runs
// that expose live progress (cmd/dramsim's --metrics-addr) rather than
// only a flushed flat-file at exit. Gauges, not counters: several of
// these statistics (queue-length sums used for averages) are only
// monotonically increasing by accident of how this batch simulator
// happens to compute them, not by contract.
type Collector struct {
	registry  *Registry
	subsystem string
}

// NewCollector wraps r for export under subsystem (e.g. "dramsim").
func NewCollector(r *Registry, subsystem string) *Collector {
	return &Collector{registry: r, subsystem: subsystem}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Dynamic stat set: Collect emits untyped descs directly, so there
	// is nothing stable to predeclare here. Prometheus permits this for
	// collectors whose metric set is only known at collect time.
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.registry.Lock()
	defer c.registry.Unlock()
	for _, s := range c.registry.Scalars() {
		desc := prometheus.NewDesc(
			prometheus.BuildFQName(c.subsystem, "", sanitize(s.Name)),
			s.Description,
			nil, nil,
		)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, s.Value)
	}
	for _, v := range c.registry.Vectors() {
		desc := prometheus.NewDesc(
			prometheus.BuildFQName(c.subsystem, "", sanitize(v.Name)),
			v.Description,
			[]string{"index"}, nil,
		)
		for i, val := range v.Values {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, val, strconv.Itoa(i))
		}
	}
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '-' || r == '.' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}

var _ prometheus.Collector = (*Collector)(nil)
