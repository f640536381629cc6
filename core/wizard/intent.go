// Package wizard - Intent sum type
//
// Intents are the only mutation path into State. The set is closed: each
// variant is a struct implementing the unexported marker method, and the
// reducer switches exhaustively over them.
package wizard

import (
	"time"

	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

// Intent is one dispatched wizard event
type Intent interface {
	isIntent()
}

// Navigation

// SetStep unconditionally moves to a step. Legality of the transition is
// the dispatching caller's responsibility.
type SetStep struct {
	Step   Step
	Reason string
}

// PushHistory appends a step to the history unless it repeats the tail
type PushHistory struct {
	Step Step
}

// GoBack pops the history tail and returns to the step underneath
type GoBack struct{}

// ResetSession discards the session and starts over with a fresh id
type ResetSession struct {
	SessionID string
}

// Hydration (external persistence layer)

// HydrateStart marks a snapshot restore in progress
type HydrateStart struct{}

// HydrateSuccess replaces the session with a restored snapshot
type HydrateSuccess struct {
	Snapshot State
}

// HydrateFail records a failed restore; the session continues fresh
type HydrateFail struct {
	Message string
}

// Errors

// SetError sets the user-visible error
type SetError struct {
	Err WizardError
}

// ClearError clears the user-visible error
type ClearError struct{}

// Location

// SetLocationRaw records free-form location input. ZIP-shaped input
// pre-populates a minimal location and may revoke confirmation.
type SetLocationRaw struct {
	Raw string
}

// SetLocation sets (or clears) the resolved location and cascades a reset
// of everything computed downstream of it.
type SetLocation struct {
	Location *types.LocationCard
}

// SetLocationIntel attaches utility-rate intel for the current location
type SetLocationIntel struct {
	Intel *types.LocationIntel
}

// SetLocationConfirmed flips the location confirmation gate
type SetLocationConfirmed struct {
	Confirmed bool
}

// Business identity

// SetBusiness records the raw business name/identity input
type SetBusiness struct {
	Name string
}

// SetBusinessCard attaches a detected business identity
type SetBusinessCard struct {
	Card *types.BusinessCard
}

// SetBusinessConfirmed flips the business confirmation gate
type SetBusinessConfirmed struct {
	Confirmed bool
}

// Goals

// SetGoals replaces the selected goal tags
type SetGoals struct {
	Goals []string
}

// ToggleGoal adds or removes one goal tag
type ToggleGoal struct {
	Goal string
}

// SetGoalsConfirmed confirms goals and advances out of the location step
// when the gates allow. Goals never dictate which industry is chosen.
type SetGoalsConfirmed struct {
	Confirmed bool
}

// Industry

// SetIndustry selects an industry slug; changing it resets step 3
type SetIndustry struct {
	Industry types.IndustrySlug
}

// LockIndustry locks the industry against further auto-inference
type LockIndustry struct {
	Locked bool
}

// SetTemplateMode switches between industry-specific and generic templates
type SetTemplateMode struct {
	Mode TemplateMode
}

// Step 3: answers

// SetStep3Template installs a resolved template outside the FSM flow
type SetStep3Template struct {
	Template *types.Template
}

// SetStep3Answer records a single answer. Always overwrites, regardless of
// prior provenance: an explicit single-field edit wins.
type SetStep3Answer struct {
	ID     string
	Value  interface{}
	Source AnswerSource // defaults to "user"
	At     time.Time
}

// SetStep3Answers fully replaces the answer map. Initialization/reset only;
// patch variants must be used for incremental system updates.
type SetStep3Answers struct {
	Values types.Answers
	Source AnswerSource
	At     time.Time
}

// PatchStep3Answers merges system-inferred values without ever overwriting
// a user-sourced answer.
type PatchStep3Answers struct {
	Values types.Answers
	Source AnswerSource // intel_patch or business_patch
	At     time.Time
}

// ResetStep3ToDefaults is the explicit, user-requested reset that does
// overwrite user answers. Scope is ScopeAll or a part id.
type ResetStep3ToDefaults struct {
	Scope string
	At    time.Time
}

// ScopeAll resets every templated question
const ScopeAll = "all"

// SetStep3Done marks the intake as finished
type SetStep3Done struct {
	Done bool
}

// Step 3: FSM

// Step3TemplateRequested enters template_loading
type Step3TemplateRequested struct{}

// Step3TemplateReady installs the loaded template and enters template_ready
type Step3TemplateReady struct {
	Template *types.Template
}

// Step3DefaultsApplied applies a part's defaults to unanswered questions
// and records the (templateID, partID) key. Idempotent per key.
type Step3DefaultsApplied struct {
	TemplateID string
	PartID     string
	At         time.Time
}

// Step3PartNext advances the part cursor; rejected unless part_active
type Step3PartNext struct{}

// Step3PartPrev rewinds the part cursor; rejected unless part_active
type Step3PartPrev struct{}

// SetStep3PartIndex jumps the part cursor
type SetStep3PartIndex struct {
	Index int
}

// Step3QuoteRequested enters quote_generating; rejected unless part_active
type Step3QuoteRequested struct{}

// Step3QuoteDone completes the intake sub-machine
type Step3QuoteDone struct{}

// Step3Error absorbs the sub-machine into its error state
type Step3Error struct {
	Err WizardError
}

// Step 4: add-ons

// SetAddOnSolar configures the solar add-on
type SetAddOnSolar struct {
	AddOn AddOn
}

// SetAddOnGenerator configures the generator add-on
type SetAddOnGenerator struct {
	AddOn AddOn
}

// SetAddOnWind configures the wind add-on
type SetAddOnWind struct {
	AddOn AddOn
}

// SetAddOnEV configures the EV charger add-on
type SetAddOnEV struct {
	AddOn AddOn
}

// Pricing

// PricingStart registers a new in-flight pricing request. The stored key
// gatekeeps acceptance of the eventual result.
type PricingStart struct {
	RequestKey string
}

// PricingSuccess delivers a pricing result; ignored when stale
type PricingSuccess struct {
	RequestKey string
	Freeze     *types.PricingFreeze
	Quote      *types.QuoteOutput
	Warnings   []string
}

// PricingError delivers a pricing failure; ignored when stale. Err carries
// the structured kind set by the async caller (see errors.ClassifyPricing).
type PricingError struct {
	RequestKey string
	Err        *errors.Error
}

// PricingRetry returns the pricing sub-machine to idle
type PricingRetry struct{}

func (SetStep) isIntent()                {}
func (PushHistory) isIntent()            {}
func (GoBack) isIntent()                 {}
func (ResetSession) isIntent()           {}
func (HydrateStart) isIntent()           {}
func (HydrateSuccess) isIntent()         {}
func (HydrateFail) isIntent()            {}
func (SetError) isIntent()               {}
func (ClearError) isIntent()             {}
func (SetLocationRaw) isIntent()         {}
func (SetLocation) isIntent()            {}
func (SetLocationIntel) isIntent()       {}
func (SetLocationConfirmed) isIntent()   {}
func (SetBusiness) isIntent()            {}
func (SetBusinessCard) isIntent()        {}
func (SetBusinessConfirmed) isIntent()   {}
func (SetGoals) isIntent()               {}
func (ToggleGoal) isIntent()             {}
func (SetGoalsConfirmed) isIntent()      {}
func (SetIndustry) isIntent()            {}
func (LockIndustry) isIntent()           {}
func (SetTemplateMode) isIntent()        {}
func (SetStep3Template) isIntent()       {}
func (SetStep3Answer) isIntent()         {}
func (SetStep3Answers) isIntent()        {}
func (PatchStep3Answers) isIntent()      {}
func (ResetStep3ToDefaults) isIntent()   {}
func (SetStep3Done) isIntent()           {}
func (Step3TemplateRequested) isIntent() {}
func (Step3TemplateReady) isIntent()     {}
func (Step3DefaultsApplied) isIntent()   {}
func (Step3PartNext) isIntent()          {}
func (Step3PartPrev) isIntent()          {}
func (SetStep3PartIndex) isIntent()      {}
func (Step3QuoteRequested) isIntent()    {}
func (Step3QuoteDone) isIntent()         {}
func (Step3Error) isIntent()             {}
func (SetAddOnSolar) isIntent()          {}
func (SetAddOnGenerator) isIntent()      {}
func (SetAddOnWind) isIntent()           {}
func (SetAddOnEV) isIntent()             {}
func (PricingStart) isIntent()           {}
func (PricingSuccess) isIntent()         {}
func (PricingError) isIntent()           {}
func (PricingRetry) isIntent()           {}
