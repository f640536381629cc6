package errors

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(TypeState, "unknown industry")
	if plain.Error() != "[STATE] unknown industry" {
		t.Errorf("unexpected format: %s", plain.Error())
	}

	wrapped := Wrap(TypeNetwork, "fetch failed", fmt.Errorf("connection reset"))
	if wrapped.Error() != "[NETWORK] fetch failed: connection reset" {
		t.Errorf("unexpected format: %s", wrapped.Error())
	}
	if wrapped.Unwrap() == nil {
		t.Error("cause lost")
	}
}

func TestIsType(t *testing.T) {
	err := Statef("unknown industry: %q", "atlantis")
	if !IsType(err, TypeState) {
		t.Error("expected STATE")
	}
	if IsType(err, TypeValidation) {
		t.Error("unexpected VALIDATION")
	}
	if IsType(fmt.Errorf("plain"), TypeState) {
		t.Error("plain errors have no type")
	}
}

func TestClassifyPricing(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Type
	}{
		{"deadline exceeded", fmt.Errorf("context deadline exceeded"), TypeTimeout},
		{"timeout word", fmt.Errorf("dial tcp: i/o timeout"), TypeTimeout},
		{"timed out", fmt.Errorf("request Timed Out"), TypeTimeout},
		{"other failure", fmt.Errorf("connection refused"), TypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPricing(tt.err)
			if got.Type != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.Type)
			}
			if got.Unwrap() != tt.err {
				t.Error("original error must be preserved as the cause")
			}
		})
	}

	t.Run("typed errors pass through", func(t *testing.T) {
		orig := Validation("bad pairing")
		if got := ClassifyPricing(orig); got != orig {
			t.Error("typed errors must not be re-wrapped")
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if ClassifyPricing(nil) != nil {
			t.Error("expected nil")
		}
	})
}
