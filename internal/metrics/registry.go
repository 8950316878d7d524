package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a new Prometheus registry with metrics
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	return reg, m
}

// WriteTextfile dumps the gathered metrics in the node_exporter textfile format.
// A CLI process is too short-lived to scrape, so metrics are flushed on exit.
func WriteTextfile(reg prometheus.Gatherer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
