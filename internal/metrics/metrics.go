package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	DatagramsReceived Counter
	RecordsStored     Counter
	RecordsForwarded  Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func New() *Counters {
	return &Counters{
		DatagramsReceived: NewPrometheusCounter(
			"datagrams_received_total",
			"UDP datagrams received, by parse outcome",
			[]string{"parsed"},
		),
		RecordsStored: NewPrometheusCounter(
			"records_stored_total",
			"Ingested records written to the store, by outcome",
			[]string{"outcome"},
		),
		RecordsForwarded: NewPrometheusCounter(
			"records_forwarded_total",
			"Stored records forwarded to the broker, by outcome",
			[]string{"outcome"},
		),
	}
}

func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()

	datagramsReceived := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datagrams_received_total",
			Help: "UDP datagrams received, by parse outcome",
		}, []string{"parsed"}),
	}

	recordsStored := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_stored_total",
			Help: "Ingested records written to the store, by outcome",
		}, []string{"outcome"}),
	}

	recordsForwarded := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_forwarded_total",
			Help: "Stored records forwarded to the broker, by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(datagramsReceived.counter)
	reg.MustRegister(recordsStored.counter)
	reg.MustRegister(recordsForwarded.counter)

	return &Counters{
		DatagramsReceived: datagramsReceived,
		RecordsStored:     recordsStored,
		RecordsForwarded:  recordsForwarded,
	}
}
