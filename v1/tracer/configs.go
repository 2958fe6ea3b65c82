package tracer

// Config defines the configuration of the tracer provider.
//
// The OTLP exporter itself is configured through the standard
// OTEL_EXPORTER_OTLP_* environment variables.
type Config struct {
	// ServiceName is reported as the service.name resource attribute
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as the deployment.environment resource attribute
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends finished spans to an OTLP/HTTP collector. When false
	// spans are still created, so trace IDs reach the logs, but never leave
	// the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
