// Package logging wraps uber/zap for the deck backend.
//
// Two modes:
//   - Production: JSON lines on stdout, info level, no stacktraces
//   - Development: colored console output, debug level
//
// Every component takes a *zap.Logger (or this package's Logger) at
// construction and annotates entries with structured fields, so a
// card ID or service name can be followed across the HTTP layer, the
// stream and the providers.
//
// Example:
//
//	logger := logging.NewDefault()
//	logger.Info("card opened", zap.String("card_id", id))
package logging
