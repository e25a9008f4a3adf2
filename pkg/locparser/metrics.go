package locparser

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	parses             *prometheus.CounterVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	validationFailures prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "locparse_parses_total",
			Help: "Loc files parsed, by format. Cache hits are not counted.",
		}, []string{"format"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locparse_cache_hits_total",
			Help: "Parse requests answered from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locparse_cache_misses_total",
			Help: "Parse requests that required parsing.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locparse_validation_failures_total",
			Help: "JSON loc files that failed schema validation.",
		}),
	}
}

// register adds every collector to reg and returns the first failure.
func (m *metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.parses, m.cacheHits, m.cacheMisses, m.validationFailures} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
