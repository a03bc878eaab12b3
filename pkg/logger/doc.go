// Package logger provides the slog factory and attribute helpers shared
// across the SDK.
//
// New builds a configured *slog.Logger from functional options, with
// WithDevelopment and WithProduction presets for the common cases:
//
//	log := logger.New(logger.WithProduction("ebfdash"))
//
// Attribute helpers follow the empty-Attr pattern: nil or empty inputs return an empty
// slog.Attr that the handler drops, so callers can write
//
//	log.Warn("refresh failed", logger.Error(err), logger.RequestID(id))
//
// without nil checks.
package logger
