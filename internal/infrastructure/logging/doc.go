// Package logging provides structured logging for the C.A.F.E. panel host.
//
// It wraps the standard library log/slog with:
//   - Configuration-driven setup (level, format, output)
//   - Default fields (service name, version) on every record
//   - A Default() bootstrap logger for use before config is loaded
//
// All loggers are safe for concurrent use.
package logging
