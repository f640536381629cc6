// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndustrySlug is a canonical industry identifier (e.g. "hotel", "gas_station")
type IndustrySlug string

// String returns the string representation
func (s IndustrySlug) String() string {
	return string(s)
}

// IndustryAuto is the sentinel meaning "not yet chosen, infer from context"
const IndustryAuto IndustrySlug = "auto"

// Answers holds raw intake answers keyed by question id.
// Values are free-form (string/number/boolean); use the typed getters.
type Answers map[string]interface{}

// Get retrieves a value, returning nil if not found
func (a Answers) Get(key string) interface{} {
	if v, ok := a[key]; ok {
		return v
	}
	return nil
}

// GetString retrieves a string value
func (a Answers) GetString(key string) string {
	if v := a.Get(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetFloat retrieves a float64 value, coercing integer types
func (a Answers) GetFloat(key string) float64 {
	if v := a.Get(key); v != nil {
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}

// GetInt retrieves an integer value
func (a Answers) GetInt(key string) int {
	return int(a.GetFloat(key))
}

// GetBool retrieves a boolean value
func (a Answers) GetBool(key string) bool {
	if v := a.Get(key); v != nil {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Has reports whether the key is present
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Clone returns a shallow copy
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// CalcInputs is the canonical input shape a calculator expects.
// Produced by the template mapping engine with raw answers merged underneath.
type CalcInputs = Answers

// LocationCard is an already-resolved facility address, supplied by an
// external location provider.
type LocationCard struct {
	RawInput   string  `json:"raw_input,omitempty"`
	Address    string  `json:"address,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
}

// LocationIntel carries utility-rate context for a location. Nil pointer
// fields mean the provider had no data; consumers apply documented fallbacks.
type LocationIntel struct {
	UtilityRate  *decimal.Decimal `json:"utility_rate,omitempty"`  // $/kWh
	DemandCharge *decimal.Decimal `json:"demand_charge,omitempty"` // $/kW-month
	UtilityName  string           `json:"utility_name,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BusinessCard is a detected business identity from an external lookup
type BusinessCard struct {
	Name       string  `json:"name"`
	Domain     string  `json:"domain,omitempty"`
	Category   string  `json:"category,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}
