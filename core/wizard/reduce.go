// Package wizard - Reducer
package wizard

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"energy-quote/core/types"
	"energy-quote/internal/config"
	"energy-quote/internal/errors"
	"energy-quote/internal/logging"
)

// Reduce computes the next state from the current state and one intent.
// Pure: the input state is never mutated; every branch returns a copy.
// Unrecognized intents are a defensive no-op.
func Reduce(state State, intent Intent) State {
	switch in := intent.(type) {

	case SetStep:
		next := state.clone()
		next.Step = in.Step
		return trail(next, "%s -> %s (%s)", state.Step, in.Step, in.Reason)

	case PushHistory:
		if n := len(state.StepHistory); n > 0 && state.StepHistory[n-1] == in.Step {
			return state
		}
		next := state.clone()
		next.StepHistory = append(next.StepHistory, in.Step)
		return next

	case GoBack:
		if len(state.StepHistory) <= 1 {
			devWarn("GO_BACK with no history to pop", zap.String("step", string(state.Step)))
			return state
		}
		next := state.clone()
		next.StepHistory = next.StepHistory[:len(next.StepHistory)-1]
		prev := next.StepHistory[len(next.StepHistory)-1]
		next.Step = prev
		return trail(next, "%s -> %s (back)", state.Step, prev)

	case ResetSession:
		fresh := InitialState(in.SessionID)
		return trail(fresh, "session reset")

	case HydrateStart:
		return trail(state.clone(), "hydrate started")

	case HydrateSuccess:
		next := in.Snapshot.clone()
		return trail(next, "hydrated session %s", in.Snapshot.SessionID)

	case HydrateFail:
		devWarn("hydration failed", zap.String("message", in.Message))
		return trail(state.clone(), "hydrate failed: %s", in.Message)

	case SetError:
		next := state.clone()
		err := in.Err
		next.Error = &err
		return next

	case ClearError:
		next := state.clone()
		next.Error = nil
		return next

	case SetLocationRaw:
		return reduceLocationRaw(state, in.Raw)

	case SetLocation:
		return reduceSetLocation(state, in.Location)

	case SetLocationIntel:
		next := state.clone()
		next.LocationIntel = in.Intel
		return next

	case SetLocationConfirmed:
		next := state.clone()
		next.LocationConfirmed = in.Confirmed
		return next

	case SetBusiness:
		next := state.clone()
		next.Business = in.Name
		return next

	case SetBusinessCard:
		next := state.clone()
		next.BusinessCard = in.Card
		return next

	case SetBusinessConfirmed:
		next := state.clone()
		next.BusinessConfirmed = in.Confirmed
		return next

	case SetGoals:
		next := state.clone()
		next.Goals = append([]string(nil), in.Goals...)
		return next

	case ToggleGoal:
		next := state.clone()
		for i, g := range next.Goals {
			if g == in.Goal {
				next.Goals = append(next.Goals[:i], next.Goals[i+1:]...)
				return next
			}
		}
		next.Goals = append(next.Goals, in.Goal)
		return next

	case SetGoalsConfirmed:
		return reduceGoalsConfirmed(state, in.Confirmed)

	case SetIndustry:
		return reduceSetIndustry(state, in.Industry)

	case LockIndustry:
		next := state.clone()
		next.IndustryLocked = in.Locked
		return next

	case SetTemplateMode:
		next := state.clone()
		next.TemplateMode = in.Mode
		return next

	case SetStep3Template:
		next := state.clone()
		next.Step3Template = in.Template
		return next

	case SetStep3Answer:
		next := state.clone()
		source := in.Source
		if source == "" {
			source = SourceUser
		}
		var prev interface{}
		if old, ok := next.Step3Answers[in.ID]; ok {
			prev = old.Value
		}
		next.Step3Answers[in.ID] = Answer{Value: in.Value, Source: source, At: in.At, Prev: prev}
		return next

	case SetStep3Answers:
		return reduceBulkAnswers(state, in)

	case PatchStep3Answers:
		return reducePatchAnswers(state, in)

	case ResetStep3ToDefaults:
		return reduceResetToDefaults(state, in)

	case SetStep3Done:
		next := state.clone()
		next.Step3Done = in.Done
		return next

	case Step3TemplateRequested:
		next := state.clone()
		next.Step3Status = Step3TemplateLoading
		return trail(next, "step3: %s -> %s", state.Step3Status, next.Step3Status)

	case Step3TemplateReady:
		next := state.clone()
		next.Step3Template = in.Template
		next.Step3Status = Step3TemplateReadyS
		next.Step3PartIndex = 0
		return trail(next, "step3: %s -> %s", state.Step3Status, next.Step3Status)

	case Step3DefaultsApplied:
		return reduceDefaultsApplied(state, in)

	case Step3PartNext:
		if state.Step3Status != Step3PartActive {
			devWarn("STEP3_PART_NEXT outside part_active", zap.String("status", string(state.Step3Status)))
			return state
		}
		next := state.clone()
		if max := partCount(state.Step3Template) - 1; next.Step3PartIndex < max {
			next.Step3PartIndex++
		}
		return next

	case Step3PartPrev:
		if state.Step3Status != Step3PartActive {
			devWarn("STEP3_PART_PREV outside part_active", zap.String("status", string(state.Step3Status)))
			return state
		}
		next := state.clone()
		if next.Step3PartIndex > 0 {
			next.Step3PartIndex--
		}
		return next

	case SetStep3PartIndex:
		next := state.clone()
		idx := in.Index
		if idx < 0 {
			idx = 0
		}
		if max := partCount(state.Step3Template) - 1; max >= 0 && idx > max {
			idx = max
		}
		next.Step3PartIndex = idx
		return next

	case Step3QuoteRequested:
		if state.Step3Status != Step3PartActive {
			devWarn("STEP3_QUOTE_REQUESTED outside part_active", zap.String("status", string(state.Step3Status)))
			return state
		}
		next := state.clone()
		next.Step3Status = Step3QuoteGenerating
		return trail(next, "step3: %s -> %s", state.Step3Status, next.Step3Status)

	case Step3QuoteDone:
		next := state.clone()
		next.Step3Status = Step3Complete
		next.Step3Done = true
		return trail(next, "step3: %s -> %s", state.Step3Status, next.Step3Status)

	case Step3Error:
		next := state.clone()
		next.Step3Status = Step3Errored
		err := in.Err
		next.Error = &err
		return trail(next, "step3: %s -> error (%s)", state.Step3Status, in.Err.Message)

	case SetAddOnSolar:
		next := state.clone()
		next.Step4AddOns.Solar = in.AddOn
		return next

	case SetAddOnGenerator:
		next := state.clone()
		next.Step4AddOns.Generator = in.AddOn
		return next

	case SetAddOnWind:
		next := state.clone()
		next.Step4AddOns.Wind = in.AddOn
		return next

	case SetAddOnEV:
		next := state.clone()
		next.Step4AddOns.EVCharger = in.AddOn
		return next

	case PricingStart:
		next := state.clone()
		next.PricingStatus = PricingPending
		next.PricingRequestKey = in.RequestKey
		next.PricingError = nil
		return trail(next, "pricing: start %s", in.RequestKey)

	case PricingSuccess:
		if in.RequestKey != state.PricingRequestKey {
			return trail(state.clone(), "pricing: stale success %s ignored (current %s)", in.RequestKey, state.PricingRequestKey)
		}
		next := state.clone()
		next.PricingStatus = PricingOK
		next.PricingFreeze = copyFreeze(in.Freeze)
		next.Quote = in.Quote
		next.PricingWarnings = append([]string(nil), in.Warnings...)
		next.PricingError = nil
		return trail(next, "pricing: ok %s", in.RequestKey)

	case PricingError:
		if in.RequestKey != state.PricingRequestKey {
			return trail(state.clone(), "pricing: stale error %s ignored (current %s)", in.RequestKey, state.PricingRequestKey)
		}
		next := state.clone()
		if in.Err != nil && in.Err.Type == errors.TypeTimeout {
			next.PricingStatus = PricingTimedOut
		} else {
			next.PricingStatus = PricingFailed
		}
		next.PricingError = toWizardError(in.Err)
		return trail(next, "pricing: %s %s", next.PricingStatus, in.RequestKey)

	case PricingRetry:
		next := state.clone()
		next.PricingStatus = PricingIdle
		next.PricingError = nil
		return trail(next, "pricing: retry")

	default:
		logging.Debug("unrecognized intent ignored", zap.String("type", fmt.Sprintf("%T", intent)))
		return state
	}
}

// reduceLocationRaw handles free-form location input. Input that is purely
// numeric with exactly 5 digits is treated as a ZIP code and pre-populates
// a minimal location; editing a previously-confirmed ZIP revokes
// confirmation, re-typing the same one does not.
func reduceLocationRaw(state State, raw string) State {
	next := state.clone()
	next.LocationRaw = raw

	trimmed := strings.TrimSpace(raw)
	digits := stripNonDigits(trimmed)
	if len(digits) != 5 || !purelyNumeric(trimmed) {
		return next
	}

	prevZip := ""
	if state.Location != nil {
		prevZip = state.Location.PostalCode
	}

	loc := types.LocationCard{}
	if state.Location != nil {
		loc = *state.Location
	}
	loc.RawInput = raw
	loc.PostalCode = digits
	if loc.State == "" {
		loc.State = StateForZIP(digits)
	}
	next.Location = &loc

	if state.LocationConfirmed && digits != prevZip {
		next.LocationConfirmed = false
		next = trail(next, "location: ZIP edited %s -> %s, confirmation revoked", prevZip, digits)
	}
	return next
}

// reduceSetLocation sets or clears the location and cascades the downstream
// reset. Everything below depends transitively on location, so staleness is
// impossible by construction rather than by callers remembering to clear.
func reduceSetLocation(state State, loc *types.LocationCard) State {
	next := state.clone()
	next.Location = loc
	next.LocationIntel = nil
	next.Industry = types.IndustryAuto
	next.IndustryLocked = false
	next.TemplateMode = TemplateModeIndustry
	next.Step3Template = nil
	next.Step3Answers = map[string]Answer{}
	next.Step3Done = false
	next.Step3Status = Step3Idle
	next.Step3PartIndex = 0
	next.Step3DefaultsAppliedParts = nil
	next.PricingFreeze = nil
	next.Quote = nil
	return trail(next, "location set; downstream reset")
}

// reduceGoalsConfirmed advances out of the location step when the gates
// allow: straight to profile when a concrete industry is locked and its
// template loaded, else to industry when the location is confirmed.
func reduceGoalsConfirmed(state State, confirmed bool) State {
	next := state.clone()
	next.GoalsConfirmed = confirmed
	if !confirmed || state.Step != StepLocation {
		return next
	}

	if state.IndustryLocked && state.Industry != types.IndustryAuto && state.Step3Template != nil {
		next.Step = StepProfile
		next.StepHistory = append(next.StepHistory, StepProfile)
		return trail(next, "%s -> %s (goals confirmed, industry locked)", state.Step, next.Step)
	}

	if state.LocationConfirmed {
		next.Step = StepIndustry
		next.StepHistory = append(next.StepHistory, StepIndustry)
		return trail(next, "%s -> %s (goals confirmed)", state.Step, next.Step)
	}

	return next
}

// reduceSetIndustry selects an industry. An actual change invalidates the
// loaded template and everything computed from it.
func reduceSetIndustry(state State, slug types.IndustrySlug) State {
	next := state.clone()
	next.Industry = slug
	if slug == state.Industry {
		return next
	}
	next.Step3Template = nil
	next.Step3Answers = map[string]Answer{}
	next.Step3Done = false
	next.Step3Status = Step3Idle
	next.Step3PartIndex = 0
	next.Step3DefaultsAppliedParts = nil
	next.PricingFreeze = nil
	next.Quote = nil
	return trail(next, "industry: %s -> %s; step3 reset", state.Industry, slug)
}

// reduceBulkAnswers fully replaces the answer map. Replacing user answers
// with a non-user source is a likely misuse of this intent (the patch
// variant preserves user edits), so it is flagged for developers.
func reduceBulkAnswers(state State, in SetStep3Answers) State {
	source := in.Source
	if source == "" {
		source = SourceUser
	}

	if source != SourceUser {
		for id, a := range state.Step3Answers {
			if a.Source == SourceUser {
				devWarn("SET_STEP3_ANSWERS overwrites user answers; PATCH_STEP3_ANSWERS preserves them",
					zap.String("example_id", id), zap.String("incoming_source", string(source)))
				break
			}
		}
	}

	next := state.clone()
	next.Step3Answers = make(map[string]Answer, len(in.Values))
	for id, value := range in.Values {
		var prev interface{}
		if old, ok := state.Step3Answers[id]; ok {
			prev = old.Value
		}
		next.Step3Answers[id] = Answer{Value: value, Source: source, At: in.At, Prev: prev}
	}
	return next
}

// reducePatchAnswers merges system-inferred values. For every key whose
// existing provenance is "user" the patch is skipped entirely: asynchronous
// inference never overwrites an explicit user edit.
func reducePatchAnswers(state State, in PatchStep3Answers) State {
	source := in.Source
	if source == "" {
		source = SourceIntelPatch
	}

	next := state.clone()
	for id, value := range in.Values {
		if old, ok := next.Step3Answers[id]; ok && old.Source == SourceUser {
			continue
		}
		var prev interface{}
		if old, ok := next.Step3Answers[id]; ok {
			prev = old.Value
		}
		next.Step3Answers[id] = Answer{Value: value, Source: source, At: in.At, Prev: prev}
	}
	return next
}

// reduceResetToDefaults is the explicit user-requested override that does
// overwrite user answers. Scope "all" covers every templated question; a
// part id covers the part's declared question list.
func reduceResetToDefaults(state State, in ResetStep3ToDefaults) State {
	tmpl := state.Step3Template
	if tmpl == nil {
		devWarn("RESET_STEP3_TO_DEFAULTS with no template loaded")
		return state
	}

	var ids []string
	if in.Scope == ScopeAll {
		for _, q := range tmpl.Questions {
			ids = append(ids, q.ID)
		}
	} else {
		part := tmpl.FindPart(in.Scope)
		if part == nil {
			devWarn("RESET_STEP3_TO_DEFAULTS for unknown part", zap.String("part", in.Scope))
			return state
		}
		ids = part.QuestionIDs
	}

	next := state.clone()
	for _, id := range ids {
		var prev interface{}
		if old, ok := next.Step3Answers[id]; ok {
			prev = old.Value
		}

		value, ok := tmpl.DefaultFor(id)
		if !ok {
			// No declared default at either level: the question goes unset
			delete(next.Step3Answers, id)
			continue
		}
		source := SourceQuestionDefault
		if _, fromTemplate := tmpl.Defaults[id]; fromTemplate {
			source = SourceTemplateDefault
		}
		next.Step3Answers[id] = Answer{Value: value, Source: source, At: in.At, Prev: prev}
	}

	if in.Scope == ScopeAll {
		// Replacement semantics: every part counts as freshly applied
		next.Step3DefaultsAppliedParts = nil
		for _, part := range tmpl.Parts {
			next.Step3DefaultsAppliedParts = append(next.Step3DefaultsAppliedParts, partKey(tmpl.ID, part.ID))
		}
	} else {
		// Removal; the key returns when STEP3_DEFAULTS_APPLIED re-fires
		key := partKey(tmpl.ID, in.Scope)
		kept := next.Step3DefaultsAppliedParts[:0]
		for _, k := range next.Step3DefaultsAppliedParts {
			if k != key {
				kept = append(kept, k)
			}
		}
		next.Step3DefaultsAppliedParts = kept
	}

	return trail(next, "step3: reset to defaults (%s)", in.Scope)
}

// reduceDefaultsApplied fills a part's unanswered questions from defaults
// and records the key; repeats for an already-applied key are a no-op.
func reduceDefaultsApplied(state State, in Step3DefaultsApplied) State {
	key := partKey(in.TemplateID, in.PartID)
	for _, applied := range state.Step3DefaultsAppliedParts {
		if applied == key {
			return state
		}
	}

	next := state.clone()
	next.Step3DefaultsAppliedParts = append(next.Step3DefaultsAppliedParts, key)
	next.Step3Status = Step3PartActive

	tmpl := state.Step3Template
	if tmpl == nil || tmpl.ID != in.TemplateID {
		return trail(next, "step3: defaults recorded for %s (template not loaded)", key)
	}
	part := tmpl.FindPart(in.PartID)
	if part == nil {
		return trail(next, "step3: defaults recorded for %s (unknown part)", key)
	}

	for _, id := range part.QuestionIDs {
		if _, answered := next.Step3Answers[id]; answered {
			continue
		}
		value, ok := tmpl.DefaultFor(id)
		if !ok {
			continue
		}
		source := SourceQuestionDefault
		if _, fromTemplate := tmpl.Defaults[id]; fromTemplate {
			source = SourceTemplateDefault
		}
		next.Step3Answers[id] = Answer{Value: value, Source: source, At: in.At}
	}

	return trail(next, "step3: defaults applied for %s", key)
}

func partKey(templateID, partID string) string {
	return templateID + "." + partID
}

func partCount(tmpl *types.Template) int {
	if tmpl == nil {
		return 1
	}
	if len(tmpl.Parts) == 0 {
		return 1
	}
	return len(tmpl.Parts)
}

// copyFreeze copies the freeze by value so state never aliases the
// runner's object.
func copyFreeze(f *types.PricingFreeze) *types.PricingFreeze {
	if f == nil {
		return nil
	}
	copied := *f
	return &copied
}

func toWizardError(err *errors.Error) *WizardError {
	if err == nil {
		return &WizardError{Code: errors.TypeInternal, Message: "pricing failed"}
	}
	return &WizardError{Code: err.Type, Message: err.Message}
}

// trail appends a bounded debug-trail note
func trail(state State, format string, args ...interface{}) State {
	limit := config.Get().Wizard.DebugTrailLimit
	if limit <= 0 {
		limit = 50
	}
	state.DebugTrail = append(state.DebugTrail, fmt.Sprintf(format, args...))
	if overflow := len(state.DebugTrail) - limit; overflow > 0 {
		state.DebugTrail = append([]string(nil), state.DebugTrail[overflow:]...)
	}
	return state
}

// devWarn reports a programming-level misuse. Fail safe, not loud: the
// reducer returns state unchanged rather than surfacing these to the user.
func devWarn(msg string, fields ...zap.Field) {
	logging.Warn(msg, fields...)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// purelyNumeric accepts digits and common ZIP separators only
func purelyNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return true
}
