// Package logger provides a structured logging interface for the scanner.
//
// It wraps the zerolog library behind a small Logger interface with
// support for leveled logging, structured fields, pretty console output
// on stderr and optional file output. A global instance is available
// through Initialize/GetLogger so components that are constructed
// without an explicit logger still log consistently.
//
// Basic usage:
//
//	cfg := &config.LoggingConfig{Level: "info"}
//	if err := logger.Initialize(cfg); err != nil { ... }
//
//	logger.Info("scan started")
//	logger.WithField("target", "alice").Info("profile fetched")
//	logger.WithError(err).Warn("post stream ended early")
//
// Console output goes to stderr so that the text exporter's report on
// stdout stays machine-consumable.
package logger
