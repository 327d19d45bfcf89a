// Package logging builds the service's slog logger and carries it through contexts.
//
// The level and output format come from configuration (log_level, log_format).
// Request-scoped loggers pick up the request ID set by the requestid middleware
// and the trace ID of the active span:
//
//	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	func (h *Handler) serve(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("proxy request")
//	}
package logging
