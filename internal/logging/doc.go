// Package logging provides structured logging with per-module log levels.
//
// It fronts Go's slog package with automatic output routing: records go
// to the systemd journal when journald is available, to stdout when a
// terminal, pipe or file is connected, and to both when both are.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info", // debug, info, warn, error
//		Format: "text", // text or json
//		Modules: map[string]string{
//			"daemon": "debug", // per-module overrides
//		},
//	})
//
// Then fetch a logger per module:
//
//	logger := logging.GetLogger("daemon")
//	logger.Info("Set brightness", "percent", 75)
//
// When running under systemd, logs can be filtered with
//
//	journalctl -t backlightd MODULE=daemon
package logging
