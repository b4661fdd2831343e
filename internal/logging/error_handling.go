package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes closer and logs a failure. attrs are appended to the log line.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err, operationAttrs(operation, "resource_management", attrs)...)
	}
}

// HandleDeferredError runs deferredOp from a defer statement and logs its
// failure. The failure becomes the returned error only when *originalErr is nil.
func HandleDeferredError(originalErr *error, deferredOp func() error, logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if deferredOp == nil {
		return
	}
	err := deferredOp()
	if err == nil {
		return
	}

	LogError(logger, "deferred operation failed", err, operationAttrs(operation, "deferred_cleanup", attrs)...)
	if *originalErr == nil {
		*originalErr = fmt.Errorf("%s failed: %w", operation, err)
	}
}

func operationAttrs(operation, component string, extra []slog.Attr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(extra)+2)
	attrs = append(attrs, slog.String("operation", operation))
	hasComponent := false
	for _, a := range extra {
		if a.Key == "component" {
			hasComponent = true
		}
		attrs = append(attrs, a)
	}
	if !hasComponent {
		attrs = append(attrs, slog.String("component", component))
	}
	return attrs
}
