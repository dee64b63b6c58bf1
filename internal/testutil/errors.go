// Package testutil provides testing utilities for attestd.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCompute indicates a mock computation module failure (used in tests).
	ErrMockCompute = errors.New("compute failed")

	// ErrMockFields indicates a mock signed-fields description failure (used in tests).
	ErrMockFields = errors.New("signed fields failed")

	// ErrMockSource indicates a mock quote source failure (used in tests).
	ErrMockSource = errors.New("source unavailable")
)
