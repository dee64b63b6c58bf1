// Package logging provides logging utilities including sensitive data filtering.
// This package contains hooks and utilities for zerolog that help ensure key
// material is never written to log output.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting
// sensitive values. A signing node's most dangerous leak is its private
// scalar, so 32-byte hex strings in key-like positions are treated as secret.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Signer key environment assignments (ATTESTD_SIGNER_KEY=...)
	regexp.MustCompile(`(?i)ATTESTD_SIGNER_KEY\s*[:=]\s*["']?(0x)?[0-9a-fA-F]{64}["']?`),

	// Key-labelled 32-byte hex scalars (private_key: 0x..., signer key = ...)
	regexp.MustCompile(`(?i)(private[_-]?key|signer[_-]?key|secret[_-]?key|nonce[_-]?key)\s*[:=]\s*["']?(0x)?[0-9a-fA-F]{64}["']?`),

	// Generic secret patterns (secret, password, credential, token with values)
	regexp.MustCompile(`(?i)(secret|password|credential|passwd|pwd|token)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// PEM-style private key blocks
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

// sensitiveFieldNames contains field names that should always have their values redacted.
// Case-insensitive matching is performed.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"private_key",
	"privatekey",
	"private-key",
	"signer_key",
	"signerkey",
	"signer-key",
	"nonce_key",
	"noncekey",
	"nonce_scalar",
	"secret",
	"password",
	"passwd",
	"credential",
	"credentials",
	"attestd_signer_key",
}

// SensitiveDataHook is a zerolog hook that flags log entries whose message
// carries sensitive data. Zerolog hooks cannot rewrite the message itself, so
// redaction happens at call sites via SafeValue and in file output via
// FilteringWriter; the hook marks anything that slipped through.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook for filtering sensitive data.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether the value matches any known sensitive
// pattern.
func ContainsSensitiveData(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces sensitive patterns in the value with
// RedactedValue. This function should be used when logging potentially
// sensitive values.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName checks if a field name indicates sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if lowerName == sensitive || strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns RedactedValue if the field name indicates
// sensitive data, otherwise the pattern-filtered value.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// SafeValue returns a filtered value for a field, redacting sensitive data.
// This is a convenience wrapper for adding filtered string fields to log events.
//
// Usage:
//
//	log.Info().Str("key_source", logging.SafeValue("key_source", src)).Msg("identity loaded")
func SafeValue(fieldName, value string) string {
	return RedactIfSensitive(fieldName, value)
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// Log file writers are wrapped with it so key material never reaches disk,
// even when it appears inside a formatted message.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	_, err = fw.w.Write([]byte(filtered))
	if err != nil {
		return 0, err
	}
	// Return original length so callers don't think there was a short write.
	return len(p), nil
}
