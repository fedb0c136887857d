package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports call counts and last call durations of Stats as Prometheus metrics.
type Collector struct {
	stats        []*Stats
	calls        *prometheus.Desc
	lastDuration *prometheus.Desc
}

// NewCollector returns a collector over stats. Metric names are prefixed with namespace.
func NewCollector(namespace string, stats ...*Stats) *Collector {
	return &Collector{
		stats: stats,
		calls: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "calls_total"),
			"Number of calls made through the decorated function.",
			[]string{"function"}, nil,
		),
		lastDuration: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "last_call_seconds"),
			"Duration of the most recent completed call.",
			[]string{"function"}, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.calls
	ch <- c.lastDuration
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.stats {
		ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(s.CallCount()), s.Name())
		if span, ok := s.LastCall(); ok {
			ch <- prometheus.MustNewConstMetric(c.lastDuration, prometheus.GaugeValue, span.Duration().Seconds(), s.Name())
		}
	}
}
