// Package metrics provides Prometheus-based monitoring for the std clients.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics and the observability.Observer backed by it
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Implements observability.Observer, so client operations are counted and timed
//   - Optional registration of Go runtime and process-level metrics
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Namespace prefix and service label for multi-service observability
//
// # Operation Metrics
//
// Every operation reported through ObserveOperation updates:
//
//	operations_total{component,operation,resource,status}   status is "success" or "error"
//	operation_duration_seconds{component,operation}
//	operation_items_total{component,operation}              documents written, read or deleted
//
// # Request Metrics
//
// The facade never touches these. They belong to the application's own entry
// points, e.g. an HTTP handler or a job runner in front of the database:
//
//	func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
//		defer h.metrics.RecordRequestDuration(time.Now(), "/items")
//		...
//		h.metrics.IncrementRequests("success")
//	}
//
//	requests_total{status}
//	request_duration_seconds{endpoint}
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "inventory",
//	})
//	go m.Server.ListenAndServe()
//
//	db.WithObserver(m)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,  // Optional: lifecycle logs
//		metrics.FXModule, // Provides *Metrics and observability.Observer
//		mongo.FXModule,   // Attaches the observer to the facade
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "inventory"}
//		}),
//	)
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=inventory                # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=inventory-api         # Adds service label to all metrics
//
// # Thread Safety
//
// All methods on the Metrics struct are safe for concurrent use.
package metrics
