// Package errors provides centralized error handling for attestd.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrModuleNotFound indicates that the requested computation module is not
	// registered. This is terminal for the request that named it.
	ErrModuleNotFound = errors.New("computation module not found")

	// ErrMalformedSignature indicates that a signature string does not decode
	// to exactly two 32-byte scalars (0x prefix plus 128 hex characters).
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrInvalidPoint indicates that a supplied point fails secp256k1 curve
	// validation. Verification paths translate this into a false result.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrInvalidScalar indicates a scalar outside [1, n) where a private
	// scalar was expected.
	ErrInvalidScalar = errors.New("invalid scalar")

	// ErrSignerKeyMissing indicates the signer key environment variable is not
	// set. This is fatal at process startup, never handled per-request.
	ErrSignerKeyMissing = errors.New("signer key not set")

	// ErrSignerKeyInvalid indicates the signer key environment variable does
	// not hold a valid 32-byte hex scalar in [1, n).
	ErrSignerKeyInvalid = errors.New("signer key invalid")

	// ErrModuleAlreadyRegistered indicates an attempt to register two
	// computation modules under the same name.
	ErrModuleAlreadyRegistered = errors.New("computation module already registered")

	// ErrInvalidParams indicates request parameters a computation module
	// cannot work with. Terminal for the request.
	ErrInvalidParams = errors.New("invalid request parameters")

	// ErrUnknownFieldType indicates a signed field carries a type tag outside
	// the packed-hash vocabulary.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrFieldValueMismatch indicates a signed field value does not match its
	// declared type tag.
	ErrFieldValueMismatch = errors.New("field value does not match type")

	// ErrDigestLength indicates a message digest that is not exactly 32 bytes.
	ErrDigestLength = errors.New("digest must be 32 bytes")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidServer indicates an invalid server configuration value.
	ErrConfigInvalidServer = errors.New("invalid server configuration")

	// ErrConfigInvalidLog indicates an invalid logging configuration value.
	ErrConfigInvalidLog = errors.New("invalid log configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")
)
