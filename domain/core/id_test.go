package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"valid-id", RunID("valid-id"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		result, err := ParseRunID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("Expected error for input %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input %q: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, result)
		}
	}
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("seed:1234"))
	if len(h) != 64 {
		t.Fatalf("Expected 64 hex chars, got %d", len(h))
	}
	if h.Short() != string(h[:12]) {
		t.Errorf("Short() = %s, want prefix of %s", h.Short(), h)
	}
	if Hash("abc").Short() != "abc" {
		t.Error("Short() should return short hashes unchanged")
	}
}

// TestErrorKinds verifies constructors wrap the right sentinel
func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
		input bool
	}{
		{"invalid parameter", NewInvalidParameterError("samples", "must be positive"), IsInvalidParameter, true},
		{"shape mismatch", NewShapeMismatchError("Porosity", 3, 4), IsShapeMismatch, false},
		{"empty sample", NewEmptySampleError("Area"), IsEmptySample, false},
		{"invalid percentile", NewInvalidPercentileError(150), IsInvalidPercentile, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.check(tc.err) {
				t.Errorf("%v does not match its kind", tc.err)
			}
			if IsInputError(tc.err) != tc.input {
				t.Errorf("IsInputError(%v) = %v, want %v", tc.err, !tc.input, tc.input)
			}
			if errors.Unwrap(tc.err) == nil {
				t.Errorf("%v should wrap a sentinel", tc.err)
			}
		})
	}
}
