package wizard

import "testing"

func TestStateForZIP(t *testing.T) {
	tests := []struct {
		zip   string
		state string
	}{
		{"90210", "CA"},
		{"10001", "NY"},
		{"78701", "TX"},
		{"60601", "IL"},
		{"02108", "MA"},
		{"99501", "AK"},
		{"96801", "HI"},
		{"00501", "NY"},
		{"96901", ""}, // unallocated prefix
		{"12", ""},
		{"abcde", ""},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			if got := StateForZIP(tt.zip); got != tt.state {
				t.Errorf("StateForZIP(%q) = %q, want %q", tt.zip, got, tt.state)
			}
		})
	}
}
