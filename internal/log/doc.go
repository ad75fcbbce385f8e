// Package log provides logging with automatic sanitization of API
// credentials, built on top of the standard slog package.
//
// The posting client signs requests with OAuth 1.0a user credentials, and
// those values must never land in a log file that might be pasted into a
// bug report. The SecureHandler masks attributes whose key or value looks
// like a credential before they reach the underlying handler, even in
// verbose mode.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
