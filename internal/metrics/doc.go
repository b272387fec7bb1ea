// Package metrics records build observability data.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	b := build.New(cfg, engine)                              // NoopRecorder
//	b := build.New(cfg, engine, build.WithRecorder(recorder)) // Prometheus
//
// PrometheusRecorder keeps its collectors in a private registry. A one-shot
// CLI run has nobody to scrape it, so WriteTextfile exports the registry in
// the Prometheus text format for the node_exporter textfile collector.
package metrics
