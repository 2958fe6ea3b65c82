// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// NewClient builds a TracerProvider, optionally exporting spans over OTLP/HTTP,
// and installs it as the global provider. The mongo facade starts one span
// per operation from the global provider, so installing the tracer is enough
// to trace database calls.
//
// Core Features:
//   - Simple span creation and management
//   - Error recording and status tracking
//   - Customizable span attributes
//   - Cross-service trace context propagation
//
// Basic Usage:
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "inventory",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(ctx)
//
//	ctx, span := tr.StartSpan(ctx, "import-catalog")
//	defer span.End()
//
//	tr.SetAttributes(span, map[string]interface{}{"catalog.size": 120})
//
// Propagation:
//
// Database spans stay in process. GetCarrier and SetCarrierOnContext are for
// the calls around them that cross a service boundary, so that a request
// handled by another service continues the same trace. The caller injects the
// carrier into HTTP or message headers, and the receiver extracts it before
// starting its own spans:
//
//	for k, v := range tr.GetCarrier(ctx) { // outgoing
//		req.Header.Set(k, v)
//	}
//
//	carrier := map[string]string{"traceparent": msg.Headers["traceparent"]}
//	ctx = tr.SetCarrierOnContext(ctx, carrier) // incoming
package tracer
