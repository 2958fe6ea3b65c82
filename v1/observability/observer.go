// Package observability defines the hook through which std clients report the
// operations they perform. Metrics and tracing integrations implement Observer
// and are attached to a client with its WithObserver method.
package observability

import "time"

// OperationContext describes one completed client operation.
type OperationContext struct {
	// Component names the client that performed the operation, e.g. "mongo".
	Component string

	// Operation is the operation name, e.g. "save" or "find_by".
	Operation string

	// Resource is the primary target of the operation, e.g. a collection name.
	Resource string

	// SubResource carries additional context such as the filtered field.
	SubResource string

	Duration time.Duration

	// Error is the failure of the operation, nil on success. It can be set
	// when the caller saw a plain false result, e.g. for a rejected write.
	Error error

	// Size is the number of documents read or written.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives OperationContext values. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Status returns "success" or "error" depending on ctx.Error. It is the label
// value used by metrics integrations.
func (ctx OperationContext) Status() string {
	if ctx.Error != nil {
		return "error"
	}
	return "success"
}
