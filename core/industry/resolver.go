// Package industry resolves raw industry identifiers to a canonical slug,
// template key, calculator id, and industry sizing defaults.
package industry

import (
	"strings"
	"sync"

	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

// Context is the resolved industry context for a contract run
type Context struct {
	// CanonicalSlug is the normalized industry identifier
	CanonicalSlug types.IndustrySlug

	// TemplateKey names the question template to load. Normally equal to
	// CanonicalSlug; differs when the industry borrows another industry's
	// question set ("borrowed template").
	TemplateKey string

	// CalculatorID names the paired calculator
	CalculatorID string

	// SizingDefaults are the industry's own storage sizing defaults,
	// independent of any template donor
	SizingDefaults types.SizingHints
}

// Borrowed reports whether the template is borrowed from another industry.
// Borrowed templates skip structural validation against the calculator.
func (c Context) Borrowed() bool {
	return c.TemplateKey != c.CanonicalSlug.String()
}

// Profile is one registered industry
type Profile struct {
	Slug types.IndustrySlug

	// TemplateKey overrides the template lookup key; empty means the slug
	TemplateKey string

	CalculatorID string

	StorageToPeakRatio float64
	DurationHours      float64
}

// Resolver maps raw industry inputs to registered profiles
type Resolver struct {
	mu       sync.RWMutex
	profiles map[types.IndustrySlug]Profile
	aliases  map[string]types.IndustrySlug
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{
		profiles: make(map[types.IndustrySlug]Profile),
		aliases:  make(map[string]types.IndustrySlug),
	}
}

// Register adds an industry profile
func (r *Resolver) Register(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Slug] = p
	r.aliases[string(p.Slug)] = p.Slug
}

// Alias maps an alternate spelling to a registered slug
func (r *Resolver) Alias(alias string, slug types.IndustrySlug) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[normalize(alias)] = slug
}

// normalize lowercases and collapses separators to underscores
func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// Resolve maps a raw industry identifier to its context.
// Returns a STATE error when the input matches no registered industry.
func (r *Resolver) Resolve(industryInput string) (Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := normalize(industryInput)
	slug, ok := r.aliases[key]
	if !ok {
		return Context{}, errors.Statef("unknown industry: %q", industryInput).
			WithContext("normalized", key)
	}

	p, ok := r.profiles[slug]
	if !ok {
		return Context{}, errors.Statef("industry %q has no registered profile", slug)
	}

	templateKey := p.TemplateKey
	if templateKey == "" {
		templateKey = string(p.Slug)
	}

	return Context{
		CanonicalSlug: p.Slug,
		TemplateKey:   templateKey,
		CalculatorID:  p.CalculatorID,
		SizingDefaults: types.SizingHints{
			StorageToPeakRatio: p.StorageToPeakRatio,
			DurationHours:      p.DurationHours,
			Source:             "industry_defaults:" + string(p.Slug),
		},
	}, nil
}

// Slugs lists registered canonical slugs
func (r *Resolver) Slugs() []types.IndustrySlug {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.IndustrySlug, 0, len(r.profiles))
	for slug := range r.profiles {
		out = append(out, slug)
	}
	return out
}

// Default is the resolver preloaded with the built-in industries
var Default = NewResolver()

func init() {
	for _, p := range []Profile{
		{Slug: "hotel", CalculatorID: "hotel_load_v1", StorageToPeakRatio: 0.6, DurationHours: 4},
		// gas_station reuses hotel's occupancy-style question set but pairs
		// its own calculator and sizing defaults.
		{Slug: "gas_station", TemplateKey: "hotel", CalculatorID: "gas_station_load_v1", StorageToPeakRatio: 0.5, DurationHours: 2},
		{Slug: "office", CalculatorID: "office_load_v1", StorageToPeakRatio: 0.7, DurationHours: 4},
		{Slug: "grocery", CalculatorID: "grocery_load_v1", StorageToPeakRatio: 0.8, DurationHours: 6},
		{Slug: "manufacturing", CalculatorID: "manufacturing_load_v1", StorageToPeakRatio: 0.5, DurationHours: 4},
		{Slug: "data_center", CalculatorID: "data_center_load_v1", StorageToPeakRatio: 1.0, DurationHours: 2},
		{Slug: "generic", CalculatorID: "generic_load_v1", StorageToPeakRatio: 0.5, DurationHours: 4},
	} {
		Default.Register(p)
	}

	for alias, slug := range map[string]types.IndustrySlug{
		"hotels":        "hotel",
		"hospitality":   "hotel",
		"motel":         "hotel",
		"resort":        "hotel",
		"gas station":   "gas_station",
		"fuel station":  "gas_station",
		"c-store":       "gas_station",
		"convenience":   "gas_station",
		"offices":       "office",
		"commercial":    "office",
		"supermarket":   "grocery",
		"grocery store": "grocery",
		"factory":       "manufacturing",
		"industrial":    "manufacturing",
		"datacenter":    "data_center",
		"data centers":  "data_center",
		"other":         "generic",
		"unknown":       "generic",
	} {
		Default.Alias(alias, slug)
	}
}
