// Package wizard implements the session-level state machine driving the
// multi-step intake flow. State evolves only through dispatched intents;
// the reducer is pure and never mutates its input.
package wizard

import (
	"time"

	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

// Step is the wizard's current page
type Step string

const (
	StepLocation Step = "location"
	StepIndustry Step = "industry"
	StepProfile  Step = "profile"
	StepOptions  Step = "options"
	StepQuote    Step = "quote"
)

// Step3Status is the intake sub-machine state
type Step3Status string

const (
	Step3Idle            Step3Status = "idle"
	Step3TemplateLoading Step3Status = "template_loading"
	Step3TemplateReadyS  Step3Status = "template_ready"
	Step3PartActive      Step3Status = "part_active"
	Step3QuoteGenerating Step3Status = "quote_generating"
	Step3Complete        Step3Status = "complete"
	Step3Errored         Step3Status = "error"
)

// PricingStatus is the async pricing sub-machine state
type PricingStatus string

const (
	PricingIdle     PricingStatus = "idle"
	PricingPending  PricingStatus = "pending"
	PricingOK       PricingStatus = "ok"
	PricingFailed   PricingStatus = "error"
	PricingTimedOut PricingStatus = "timed_out"
)

// AnswerSource records who or what set an answer value
type AnswerSource string

const (
	SourceUser            AnswerSource = "user"
	SourceTemplateDefault AnswerSource = "template_default"
	SourceQuestionDefault AnswerSource = "question_default"
	SourceIntelPatch      AnswerSource = "intel_patch"
	SourceBusinessPatch   AnswerSource = "business_patch"
)

// Answer is one intake answer with its provenance. Value and provenance
// live in a single record so they cannot drift out of key-sync.
type Answer struct {
	Value  interface{}  `json:"value"`
	Source AnswerSource `json:"source"`
	At     time.Time    `json:"at"`
	Prev   interface{}  `json:"prev,omitempty"`
}

// TemplateMode distinguishes an industry-specific template from the generic one
type TemplateMode string

const (
	TemplateModeIndustry TemplateMode = "industry"
	TemplateModeGeneric  TemplateMode = "generic"
)

// AddOn is one step-4 equipment toggle
type AddOn struct {
	Enabled bool    `json:"enabled"`
	SizeKW  float64 `json:"size_kw,omitempty"`
	Count   int     `json:"count,omitempty"`
}

// AddOns is the step-4 configuration, independent of step 3
type AddOns struct {
	Solar     AddOn `json:"solar"`
	Generator AddOn `json:"generator"`
	Wind      AddOn `json:"wind"`
	EVCharger AddOn `json:"ev_charger"`
}

// WizardError is the single user-visible error surface. It always carries a
// code and message sufficient to render something meaningful without
// template/calculator internals.
type WizardError struct {
	Code    errors.Type `json:"code"`
	Message string      `json:"message"`
}

// State is the wizard session aggregate, owned exclusively by the reducer
type State struct {
	SessionID string `json:"session_id"`

	Step        Step   `json:"step"`
	StepHistory []Step `json:"step_history"`

	LocationRaw       string               `json:"location_raw,omitempty"`
	Location          *types.LocationCard  `json:"location,omitempty"`
	LocationIntel     *types.LocationIntel `json:"location_intel,omitempty"`
	LocationConfirmed bool                 `json:"location_confirmed"`

	Business          string              `json:"business,omitempty"`
	BusinessCard      *types.BusinessCard `json:"business_card,omitempty"`
	BusinessConfirmed bool                `json:"business_confirmed"`

	Goals          []string `json:"goals,omitempty"`
	GoalsConfirmed bool     `json:"goals_confirmed"`

	Industry       types.IndustrySlug `json:"industry"`
	IndustryLocked bool               `json:"industry_locked"`
	TemplateMode   TemplateMode       `json:"template_mode"`

	Step3Template             *types.Template   `json:"step3_template,omitempty"`
	Step3Answers              map[string]Answer `json:"step3_answers"`
	Step3Status               Step3Status       `json:"step3_status"`
	Step3PartIndex            int               `json:"step3_part_index"`
	Step3DefaultsAppliedParts []string          `json:"step3_defaults_applied_parts,omitempty"`
	Step3Done                 bool              `json:"step3_done"`

	Step4AddOns AddOns `json:"step4_add_ons"`

	PricingStatus     PricingStatus        `json:"pricing_status"`
	PricingRequestKey string               `json:"pricing_request_key,omitempty"`
	PricingFreeze     *types.PricingFreeze `json:"pricing_freeze,omitempty"`
	Quote             *types.QuoteOutput   `json:"quote,omitempty"`
	PricingWarnings   []string             `json:"pricing_warnings,omitempty"`
	PricingError      *WizardError         `json:"pricing_error,omitempty"`

	Error *WizardError `json:"error,omitempty"`

	// DebugTrail is a bounded ring of transition notes
	DebugTrail []string `json:"debug_trail,omitempty"`
}

// InitialState creates a fresh session
func InitialState(sessionID string) State {
	return State{
		SessionID:     sessionID,
		Step:          StepLocation,
		StepHistory:   []Step{StepLocation},
		Industry:      types.IndustryAuto,
		TemplateMode:  TemplateModeIndustry,
		Step3Answers:  map[string]Answer{},
		Step3Status:   Step3Idle,
		PricingStatus: PricingIdle,
	}
}

// clone copies the state deeply enough that the reducer can write to the
// copy without touching the input. Pointed-to objects (template, location,
// freeze, quote) are immutable by convention and shared.
func (s State) clone() State {
	out := s
	out.StepHistory = append([]Step(nil), s.StepHistory...)
	out.Goals = append([]string(nil), s.Goals...)
	out.Step3DefaultsAppliedParts = append([]string(nil), s.Step3DefaultsAppliedParts...)
	out.PricingWarnings = append([]string(nil), s.PricingWarnings...)
	out.DebugTrail = append([]string(nil), s.DebugTrail...)
	out.Step3Answers = make(map[string]Answer, len(s.Step3Answers))
	for k, v := range s.Step3Answers {
		out.Step3Answers[k] = v
	}
	return out
}

// AnswerValues flattens the answer records into raw answers for a contract run
func (s State) AnswerValues() types.Answers {
	out := make(types.Answers, len(s.Step3Answers))
	for k, a := range s.Step3Answers {
		out[k] = a.Value
	}
	return out
}
