// Package contract - Contract quote runner
package contract

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"energy-quote/core/calc"
	"energy-quote/core/industry"
	"energy-quote/core/telemetry"
	"energy-quote/core/template"
	"energy-quote/core/types"
	"energy-quote/internal/config"
	"energy-quote/internal/errors"
	"energy-quote/internal/logging"
)

// dutyCycleCeiling is the highest duty cycle the sanity checks accept
// without a warning. Slightly above 1 because external calculators may
// legitimately report average load brushing peak.
const dutyCycleCeiling = 1.25

// contributorTolerance is the allowed overshoot of the contributor total
// relative to peak load before it is flagged.
const contributorTolerance = 1.05

// RunParams are the inputs of one contract run
type RunParams struct {
	// Industry is the raw industry identifier (aliases accepted)
	Industry string

	// Answers are the accumulated raw intake answers
	Answers types.Answers

	// Location and LocationIntel are already-resolved context, optional
	Location      *types.LocationCard
	LocationIntel *types.LocationIntel
}

// Deps are the runner's collaborators. Zero-value fields fall back to the
// package defaults, so tests can substitute any subset.
type Deps struct {
	Resolver    *industry.Resolver
	Templates   template.Source
	Calculators calc.Source

	// NewLogger constructs the telemetry sink for one run
	NewLogger func(slug types.IndustrySlug, templateVersion, calculatorID string) telemetry.Logger

	// Bounds constrains validation; zero means config defaults
	Bounds Bounds

	// Now supplies the freeze timestamp; nil means time.Now
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Resolver == nil {
		d.Resolver = industry.Default
	}
	if d.Templates == nil {
		d.Templates = template.Default
	}
	if d.Calculators == nil {
		d.Calculators = calc.Default
	}
	if d.NewLogger == nil {
		d.NewLogger = telemetry.New
	}
	if d.Bounds == (Bounds{}) {
		cfg := config.Get().Wizard
		d.Bounds = Bounds{MinQuestions: cfg.MinQuestions, MaxQuestions: cfg.MaxQuestions}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// RunContractQuote executes the Layer A pipeline for one set of answers.
//
// Fatal precondition failures (unknown industry, missing template or
// calculator, validation failure for a non-borrowed template) return a typed
// *errors.Error with type STATE or VALIDATION. All other anomalies stay
// local as warning strings on the result. Errors are never swallowed: any
// failure is logged to telemetry (best effort) and returned unchanged.
func RunContractQuote(params RunParams, deps Deps) (result *types.ContractQuoteResult, err error) {
	deps = deps.withDefaults()

	var runLog telemetry.Logger
	defer func() {
		if err != nil && runLog != nil {
			code := string(errors.TypeInternal)
			if typed, ok := err.(*errors.Error); ok {
				code = string(typed.Type)
			}
			safeLog(func() { runLog.LogFailure(code, err.Error()) })
		}
	}()

	// 1. Resolve industry context
	ctx, err := deps.Resolver.Resolve(params.Industry)
	if err != nil {
		return nil, err
	}

	// 2. Load template
	tmpl := deps.Templates.GetTemplate(ctx.TemplateKey)
	if tmpl == nil {
		return nil, errors.Statef("no template registered for key %q (industry %q)", ctx.TemplateKey, ctx.CanonicalSlug)
	}

	// 3. Load calculator
	calculator, ok := deps.Calculators.Get(ctx.CalculatorID)
	if !ok {
		return nil, errors.Statef("no calculator registered for id %q (industry %q)", ctx.CalculatorID, ctx.CanonicalSlug)
	}

	// 4. Telemetry is best-effort from here on
	runLog = deps.NewLogger(ctx.CanonicalSlug, tmpl.Version, ctx.CalculatorID)
	safeLog(func() { runLog.LogStart(len(tmpl.Questions)) })

	// 5. Structural validation, skipped for borrowed templates: the donor
	// template was authored for a different calculator and will not match.
	if !ctx.Borrowed() {
		report := Validate(tmpl, calculator, deps.Bounds)
		if !report.OK {
			safeLog(func() { runLog.LogValidationFailed(report.IssueStrings()) })
			return nil, errors.Validation(
				fmt.Sprintf("template %q failed validation against calculator %q: %s",
					tmpl.ID, ctx.CalculatorID, strings.Join(report.IssueStrings(), "; ")),
			)
		}
	}

	// 6. Map answers; raw answers merge underneath so unmapped legacy keys
	// stay visible to calculators that read them directly.
	mapped := template.ApplyTemplateMapping(tmpl, params.Answers)
	inputs := template.MergeRaw(mapped, params.Answers)

	// 7. Compute
	computed := calculator.Compute(inputs)

	// 8. Derive the load profile, defaulting missing numerics to 0
	profile := types.LoadProfile{
		BaseLoadKW:      zeroIfNaN(computed.BaseLoadKW),
		PeakLoadKW:      zeroIfNaN(computed.PeakLoadKW),
		EnergyKWhPerDay: zeroIfNaN(computed.EnergyKWhPerDay),
	}

	// 9. Sanity checks always run; config only gates log verbosity
	warnings := append([]string{}, computed.Warnings...)
	warnings = append(warnings, sanityCheck(profile, computed)...)
	if len(warnings) > 0 {
		safeLog(func() { runLog.LogWarnings(warnings) })
		if config.Get().Wizard.VerboseSanityChecks {
			for _, w := range warnings {
				logging.Warn("sanity check", zap.String("warning", w), zap.String("industry", ctx.CanonicalSlug.String()))
			}
		}
	}

	// 10. Sizing hints come from the resolver's own defaults so a
	// borrowed-template industry never inherits the donor's duration/ratio.
	sizing := ctx.SizingDefaults

	// 11. Audit record with rate/demand-charge fallbacks
	inputsUsed, fallbackWarnings := buildInputsUsed(inputs, params.LocationIntel)
	warnings = append(warnings, fallbackWarnings...)

	// 12. Pricing freeze: kW -> MW, kWh/day -> MWh/day
	now := deps.Now().UTC()
	freeze := types.PricingFreeze{
		PowerMW:      decimal.NewFromFloat(profile.PeakLoadKW).Div(decimal.NewFromInt(1000)).Round(6),
		Hours:        sizing.DurationHours,
		MWH:          decimal.NewFromFloat(profile.EnergyKWhPerDay).Div(decimal.NewFromInt(1000)).Round(6),
		UseCase:      ctx.CanonicalSlug,
		CreatedAtISO: now.Format(time.RFC3339),
	}

	// 13. Quote output with its audit envelope; prefer the calculator's own
	// envelope, else synthesize one from the loose fields (back-compat path)
	envelope := computed.Validation
	if envelope == nil {
		envelope = synthesizeEnvelope(computed)
	}

	quote := types.QuoteOutput{
		UseCase:     ctx.CanonicalSlug,
		LoadProfile: profile,
		Sizing:      sizing,
		TrueQuote:   envelope,
		Warnings:    warnings,
		Assumptions: computed.Assumptions,
		CreatedAt:   now,
	}

	// 14. Success telemetry
	safeLog(func() {
		runLog.LogSuccess(telemetry.SuccessMetrics{
			BaseLoadKW:      profile.BaseLoadKW,
			PeakLoadKW:      profile.PeakLoadKW,
			EnergyKWhPerDay: profile.EnergyKWhPerDay,
			WarningCount:    len(warnings),
			AssumptionCount: len(computed.Assumptions),
			MissingInputs:   scanMissing(computed.Warnings),
		})
	})

	return &types.ContractQuoteResult{
		SessionID:   runLog.SessionID(),
		Freeze:      freeze,
		Quote:       quote,
		LoadProfile: profile,
		SizingHints: sizing,
		InputsUsed:  inputsUsed,
		Warnings:    warnings,
	}, nil
}

// Run executes a contract quote with the package defaults
func Run(params RunParams) (*types.ContractQuoteResult, error) {
	return RunContractQuote(params, Deps{})
}

// sanityCheck produces the non-blocking consistency warnings of a run
func sanityCheck(profile types.LoadProfile, computed types.CalcResult) []string {
	var warnings []string

	if profile.PeakLoadKW < profile.BaseLoadKW {
		warnings = append(warnings, fmt.Sprintf(
			"Peak < Base: peak %.1f kW below base %.1f kW", profile.PeakLoadKW, profile.BaseLoadKW))
	}
	if profile.BaseLoadKW < 0 {
		warnings = append(warnings, fmt.Sprintf("negative base load %.1f kW", profile.BaseLoadKW))
	}
	if profile.EnergyKWhPerDay > profile.PeakLoadKW*24 {
		warnings = append(warnings, fmt.Sprintf(
			"daily energy %.0f kWh exceeds peak capacity %.0f kWh", profile.EnergyKWhPerDay, profile.PeakLoadKW*24))
	}
	if computed.DutyCycle != nil {
		dc := *computed.DutyCycle
		if dc < 0 || dc > dutyCycleCeiling {
			warnings = append(warnings, fmt.Sprintf("duty cycle %.2f outside [0, %.2f]", dc, dutyCycleCeiling))
		}
	}

	total := 0.0
	for _, name := range sortedKeys(computed.KWContributors) {
		kw := computed.KWContributors[name]
		if math.IsNaN(kw) || math.IsInf(kw, 0) {
			warnings = append(warnings, fmt.Sprintf("contributor %q is not finite", name))
			continue
		}
		if kw < 0 {
			warnings = append(warnings, fmt.Sprintf("contributor %q is negative (%.1f kW)", name, kw))
		}
		total += kw
	}
	if profile.PeakLoadKW > 0 && total > profile.PeakLoadKW*contributorTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"contributors total %.1f kW exceeds peak %.1f kW beyond tolerance", total, profile.PeakLoadKW))
	}

	return warnings
}

// buildInputsUsed assembles the audit record, applying documented fallbacks
// for electricity rate and demand charge when intel omits them.
func buildInputsUsed(inputs types.CalcInputs, intel *types.LocationIntel) (types.InputsUsed, []string) {
	cfg := config.Get().Wizard
	var warnings []string

	used := types.InputsUsed{}

	if intel != nil && intel.UtilityRate != nil {
		used.ElectricityRate = *intel.UtilityRate
	} else {
		used.ElectricityRate = decimal.NewFromFloat(cfg.FallbackElectricityRate)
		used.FallbackFields = append(used.FallbackFields, "electricityRate")
		warnings = append(warnings, fmt.Sprintf("electricity rate unavailable; using fallback $%s/kWh", used.ElectricityRate))
	}

	if intel != nil && intel.DemandCharge != nil {
		used.DemandCharge = *intel.DemandCharge
	} else {
		used.DemandCharge = decimal.NewFromFloat(cfg.FallbackDemandCharge)
		used.FallbackFields = append(used.FallbackFields, "demandCharge")
		warnings = append(warnings, fmt.Sprintf("demand charge unavailable; using fallback $%s/kW", used.DemandCharge))
	}

	fields := make([]string, 0, len(inputs))
	for key := range inputs {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	for _, key := range fields {
		used.Fields = append(used.Fields, types.InputUsage{
			Field:  key,
			Value:  inputs[key],
			Source: "answers",
		})
	}
	used.Fields = append(used.Fields,
		types.InputUsage{Field: "electricityRate", Value: used.ElectricityRate, Fallback: contains(used.FallbackFields, "electricityRate"), Source: "location_intel"},
		types.InputUsage{Field: "demandCharge", Value: used.DemandCharge, Fallback: contains(used.FallbackFields, "demandCharge"), Source: "location_intel"},
	)

	return used, warnings
}

// synthesizeEnvelope builds a validation envelope from the loose duty-cycle
// and contributor fields of calculators not yet emitting a full envelope.
func synthesizeEnvelope(computed types.CalcResult) *types.TrueQuoteValidation {
	if computed.DutyCycle == nil && len(computed.KWContributors) == 0 {
		return nil
	}

	env := &types.TrueQuoteValidation{
		Version:     "synthesized/1",
		Assumptions: computed.Assumptions,
	}
	if computed.DutyCycle != nil {
		env.DutyCycle = *computed.DutyCycle
	}
	if len(computed.KWContributors) > 0 {
		env.KWContributors = computed.KWContributors
		total := 0.0
		for _, name := range sortedKeys(computed.KWContributors) {
			total += computed.KWContributors[name]
		}
		env.KWContributorsTotalKW = total
		if total > 0 {
			env.KWContributorShares = make(map[string]float64, len(computed.KWContributors))
			for name, kw := range computed.KWContributors {
				env.KWContributorShares[name] = kw / total
			}
		}
	}
	return env
}

// scanMissing extracts inputs the calculator reported absent
func scanMissing(warnings []string) []string {
	var missing []string
	for _, w := range warnings {
		if strings.Contains(strings.ToLower(w), "missing") {
			if field, _, found := strings.Cut(w, " "); found {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// safeLog shields the run from a misbehaving telemetry sink
func safeLog(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func zeroIfNaN(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
