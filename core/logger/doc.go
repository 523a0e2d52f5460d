// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber status server.
//
// # Correlation
//
// Two helpers attach correlation ids to a logger:
//   - WithRayID extracts the RayID (request id) of a status server request.
//   - WithCycle tags every entry written during one reconciliation cycle, so all
//     send/edit decisions of a cycle can be grepped together.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//   - File: optional additional output path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Bot started")
//
//	l := logger.WithCycle(log, cycleID)
//	l.Warn("Edit rejected", zap.Error(err))
package logger
