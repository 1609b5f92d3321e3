// Package metrics collects runtime memory readings and Prometheus sweep
// metrics. Prometheus metrics live in a per-run registry and are exported
// to a node-exporter textfile rather than served over the network.
package metrics
