// Package types - Quote pipeline output types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoadProfile is the computed facility load.
// Invariant (soft): PeakLoadKW >= BaseLoadKW >= 0 and
// EnergyKWhPerDay <= PeakLoadKW * 24. Violations are warnings, not errors,
// since calculators are external and may legitimately approach the boundary.
type LoadProfile struct {
	BaseLoadKW      float64 `json:"base_load_kw"`
	PeakLoadKW      float64 `json:"peak_load_kw"`
	EnergyKWhPerDay float64 `json:"energy_kwh_per_day"`
}

// SizingHints suggests storage sizing relative to the load profile
type SizingHints struct {
	// StorageToPeakRatio is storage power as a fraction of peak load
	StorageToPeakRatio float64 `json:"storage_to_peak_ratio"`

	// DurationHours is the default discharge duration
	DurationHours float64 `json:"duration_hours"`

	// Source names where the hints came from (industry defaults, computed)
	Source string `json:"source"`
}

// TrueQuoteValidation is the audit envelope attached to a quote result.
// It is not used for control flow; downstream export/compliance requires it.
type TrueQuoteValidation struct {
	Version               string             `json:"version"`
	DutyCycle             float64            `json:"duty_cycle"`
	KWContributors        map[string]float64 `json:"kw_contributors,omitempty"`
	KWContributorsTotalKW float64            `json:"kw_contributors_total_kw"`
	KWContributorShares   map[string]float64 `json:"kw_contributor_shares,omitempty"`
	Assumptions           []string           `json:"assumptions,omitempty"`
}

// CalcResult is what a calculator returns. Pure data; calculators never
// throw for well-formed inputs - degenerate inputs surface as Warnings.
type CalcResult struct {
	BaseLoadKW      float64 `json:"base_load_kw"`
	PeakLoadKW      float64 `json:"peak_load_kw"`
	EnergyKWhPerDay float64 `json:"energy_kwh_per_day"`

	// DutyCycle is average/peak load ratio, when the calculator computes one
	DutyCycle *float64 `json:"duty_cycle,omitempty"`

	// KWContributors breaks peak load down by contributor
	KWContributors map[string]float64 `json:"kw_contributors,omitempty"`

	Assumptions []string `json:"assumptions,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`

	// Validation is a full audit envelope emitted by newer calculators.
	// When absent the runner synthesizes one from DutyCycle/KWContributors.
	Validation *TrueQuoteValidation `json:"validation,omitempty"`
}

// InputUsage records one resolved calculator input for audit
type InputUsage struct {
	Field    string      `json:"field"`
	Value    interface{} `json:"value"`
	Fallback bool        `json:"fallback"`
	Source   string      `json:"source"`
}

// InputsUsed is the audit record of every input a run consumed and whether
// it came from a real value or a system default. Drives fallback disclosure.
type InputsUsed struct {
	ElectricityRate decimal.Decimal `json:"electricity_rate"` // $/kWh
	DemandCharge    decimal.Decimal `json:"demand_charge"`    // $/kW-month
	Fields          []InputUsage    `json:"fields,omitempty"`
	FallbackFields  []string        `json:"fallback_fields,omitempty"`
}

// PricingFreeze is an immutable snapshot of the quote-determining inputs at
// the moment a quote was computed. Created exclusively by the contract quote
// runner; once built its fields are never mutated in place - any change
// produces a new freeze.
type PricingFreeze struct {
	PowerMW      decimal.Decimal `json:"power_mw"`
	Hours        float64         `json:"hours"`
	MWH          decimal.Decimal `json:"mwh"`
	UseCase      IndustrySlug    `json:"use_case"`
	CreatedAtISO string          `json:"created_at_iso"`
}

// QuoteOutput is the user-facing quote payload for one contract run
type QuoteOutput struct {
	UseCase     IndustrySlug         `json:"use_case"`
	LoadProfile LoadProfile          `json:"load_profile"`
	Sizing      SizingHints          `json:"sizing"`
	TrueQuote   *TrueQuoteValidation `json:"true_quote_validation,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
	Assumptions []string             `json:"assumptions,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ContractQuoteResult is the full result bundle of one contract run
type ContractQuoteResult struct {
	SessionID   string        `json:"session_id"`
	Freeze      PricingFreeze `json:"freeze"`
	Quote       QuoteOutput   `json:"quote"`
	LoadProfile LoadProfile   `json:"load_profile"`
	SizingHints SizingHints   `json:"sizing_hints"`
	InputsUsed  InputsUsed    `json:"inputs_used"`
	Warnings    []string      `json:"warnings,omitempty"`
}
