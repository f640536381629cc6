package wizard

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"energy-quote/core/template"
	"energy-quote/core/types"
	"energy-quote/internal/errors"
)

func hotelState(t *testing.T) State {
	t.Helper()
	tmpl := template.Default.GetTemplate("hotel")
	if tmpl == nil {
		t.Fatal("hotel template not registered")
	}
	s := InitialState("test-session")
	return Reduce(s, Step3TemplateReady{Template: tmpl})
}

func TestStalePricingSuccessIgnored(t *testing.T) {
	s := InitialState("s1")
	s = Reduce(s, PricingStart{RequestKey: "K1"})

	freeze := &types.PricingFreeze{PowerMW: decimal.NewFromFloat(1.5), UseCase: "hotel"}
	got := Reduce(s, PricingSuccess{RequestKey: "K2", Freeze: freeze, Quote: &types.QuoteOutput{}})

	if got.PricingStatus != PricingPending {
		t.Errorf("expected status pending after stale success, got %s", got.PricingStatus)
	}
	if got.PricingFreeze != nil {
		t.Error("stale success must not install a freeze")
	}
	if got.Quote != nil {
		t.Error("stale success must not install a quote")
	}
}

func TestStalePricingErrorIgnored(t *testing.T) {
	s := InitialState("s1")
	s = Reduce(s, PricingStart{RequestKey: "K1"})

	got := Reduce(s, PricingError{RequestKey: "K-old", Err: errors.New(errors.TypeNetwork, "boom")})
	if got.PricingStatus != PricingPending {
		t.Errorf("expected status pending after stale error, got %s", got.PricingStatus)
	}
	if got.PricingError != nil {
		t.Error("stale error must not set pricing error")
	}
}

func TestMatchingPricingSuccessApplies(t *testing.T) {
	s := InitialState("s1")
	s = Reduce(s, PricingStart{RequestKey: "K1"})

	freeze := &types.PricingFreeze{PowerMW: decimal.NewFromFloat(0.5), UseCase: "hotel"}
	got := Reduce(s, PricingSuccess{RequestKey: "K1", Freeze: freeze, Quote: &types.QuoteOutput{UseCase: "hotel"}})

	if got.PricingStatus != PricingOK {
		t.Fatalf("expected status ok, got %s", got.PricingStatus)
	}
	if got.PricingFreeze == nil || !got.PricingFreeze.PowerMW.Equal(freeze.PowerMW) {
		t.Error("freeze not applied")
	}
	if got.PricingFreeze == freeze {
		t.Error("freeze must be copied into state, not aliased")
	}
}

func TestPricingErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected PricingStatus
	}{
		{"deadline exceeded", fmt.Errorf("context deadline exceeded"), PricingTimedOut},
		{"timed out", fmt.Errorf("request Timed Out after 30s"), PricingTimedOut},
		{"network failure", fmt.Errorf("connection refused"), PricingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := InitialState("s1")
			s = Reduce(s, PricingStart{RequestKey: "K1"})
			got := Reduce(s, PricingError{RequestKey: "K1", Err: errors.ClassifyPricing(tt.err)})
			if got.PricingStatus != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.PricingStatus)
			}
			if got.PricingError == nil {
				t.Fatal("expected pricing error to be set")
			}
		})
	}
}

func TestPricingRetryReturnsToIdle(t *testing.T) {
	s := InitialState("s1")
	s = Reduce(s, PricingStart{RequestKey: "K1"})
	s = Reduce(s, PricingError{RequestKey: "K1", Err: errors.New(errors.TypeTimeout, "timed out")})
	if s.PricingStatus != PricingTimedOut {
		t.Fatalf("setup: expected timed_out, got %s", s.PricingStatus)
	}

	got := Reduce(s, PricingRetry{})
	if got.PricingStatus != PricingIdle {
		t.Errorf("expected idle after retry, got %s", got.PricingStatus)
	}
	if got.PricingError != nil {
		t.Error("retry must clear the pricing error")
	}
}

func TestUserEditProtectedFromPatch(t *testing.T) {
	now := time.Now()
	s := InitialState("s1")
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 150.0, At: now})

	got := Reduce(s, PatchStep3Answers{
		Values: types.Answers{"rooms": 99.0, "occupancyPct": 70.0},
		Source: SourceIntelPatch,
		At:     now.Add(time.Second),
	})

	rooms := got.Step3Answers["rooms"]
	if rooms.Value != 150.0 {
		t.Errorf("user answer overwritten by patch: got %v", rooms.Value)
	}
	if rooms.Source != SourceUser {
		t.Errorf("user provenance lost: got %s", rooms.Source)
	}

	occ := got.Step3Answers["occupancyPct"]
	if occ.Value != 70.0 || occ.Source != SourceIntelPatch {
		t.Errorf("non-user key should accept the patch: got %v (%s)", occ.Value, occ.Source)
	}
}

func TestSingleFieldEditAlwaysWins(t *testing.T) {
	now := time.Now()
	s := InitialState("s1")
	s = Reduce(s, PatchStep3Answers{Values: types.Answers{"rooms": 80.0}, Source: SourceBusinessPatch, At: now})
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 200.0, At: now.Add(time.Second)})

	a := s.Step3Answers["rooms"]
	if a.Value != 200.0 || a.Source != SourceUser {
		t.Errorf("explicit edit must overwrite regardless of prior source: got %v (%s)", a.Value, a.Source)
	}
	if a.Prev != 80.0 {
		t.Errorf("prev must record the overwritten value: got %v", a.Prev)
	}
}

func TestLocationCascade(t *testing.T) {
	s := hotelState(t)
	s.Industry = "hotel"
	s.IndustryLocked = true
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 150.0, At: time.Now()})
	s = Reduce(s, PricingStart{RequestKey: "K1"})
	s = Reduce(s, PricingSuccess{
		RequestKey: "K1",
		Freeze:     &types.PricingFreeze{UseCase: "hotel"},
		Quote:      &types.QuoteOutput{UseCase: "hotel"},
	})

	for _, loc := range []*types.LocationCard{
		{City: "Austin", State: "TX", PostalCode: "78701"},
		nil,
	} {
		got := Reduce(s, SetLocation{Location: loc})
		if got.Industry != types.IndustryAuto {
			t.Errorf("industry not reset: %s", got.Industry)
		}
		if got.IndustryLocked {
			t.Error("industry lock not reset")
		}
		if got.Step3Template != nil {
			t.Error("template not cleared")
		}
		if len(got.Step3Answers) != 0 {
			t.Errorf("answers not cleared: %d remain", len(got.Step3Answers))
		}
		if got.Step3Status != Step3Idle || got.Step3PartIndex != 0 || got.Step3DefaultsAppliedParts != nil {
			t.Error("step3 FSM not reset")
		}
		if got.PricingFreeze != nil || got.Quote != nil {
			t.Error("pricing freeze/quote not cleared")
		}
	}
}

func TestZIPConfirmationSemantics(t *testing.T) {
	base := InitialState("s1")
	base.Location = &types.LocationCard{PostalCode: "90210", State: "CA"}
	base.LocationConfirmed = true

	t.Run("same ZIP keeps confirmation", func(t *testing.T) {
		got := Reduce(base, SetLocationRaw{Raw: "90210"})
		if !got.LocationConfirmed {
			t.Error("re-typing the confirmed ZIP must not revoke confirmation")
		}
	})

	t.Run("different ZIP revokes confirmation", func(t *testing.T) {
		got := Reduce(base, SetLocationRaw{Raw: "10001"})
		if got.LocationConfirmed {
			t.Error("editing to a different ZIP must revoke confirmation")
		}
		if got.Location.PostalCode != "10001" {
			t.Errorf("postal code not updated: %s", got.Location.PostalCode)
		}
		if got.Location.State != "CA" {
			t.Errorf("already-set state must not be disturbed: %s", got.Location.State)
		}
	})

	t.Run("ZIP pre-populates state when unset", func(t *testing.T) {
		got := Reduce(InitialState("s2"), SetLocationRaw{Raw: "10001"})
		if got.Location == nil || got.Location.PostalCode != "10001" {
			t.Fatal("minimal location not created from ZIP")
		}
		if got.Location.State != "NY" {
			t.Errorf("expected NY from prefix lookup, got %q", got.Location.State)
		}
	})

	t.Run("non-ZIP input leaves confirmation untouched", func(t *testing.T) {
		got := Reduce(base, SetLocationRaw{Raw: "123 Main St"})
		if !got.LocationConfirmed {
			t.Error("street address input must not revoke confirmation")
		}
		if got.LocationRaw != "123 Main St" {
			t.Errorf("raw text not recorded: %q", got.LocationRaw)
		}
		if got.Location.PostalCode != "90210" {
			t.Error("non-ZIP input must not disturb the location")
		}
	})
}

func TestDefaultsAppliedIdempotent(t *testing.T) {
	s := hotelState(t)
	now := time.Now()

	once := Reduce(s, Step3DefaultsApplied{TemplateID: "hotel", PartID: "basics", At: now})
	twice := Reduce(once, Step3DefaultsApplied{TemplateID: "hotel", PartID: "basics", At: now.Add(time.Minute)})

	if len(once.Step3DefaultsAppliedParts) != 1 {
		t.Fatalf("expected 1 applied part, got %d", len(once.Step3DefaultsAppliedParts))
	}
	if len(twice.Step3DefaultsAppliedParts) != 1 {
		t.Errorf("repeat application must not duplicate the key")
	}
	if len(once.Step3Answers) != len(twice.Step3Answers) {
		t.Error("repeat application must not change answers")
	}
	for id, a := range once.Step3Answers {
		if twice.Step3Answers[id] != a {
			t.Errorf("answer %q changed on repeat application", id)
		}
	}
	if once.Step3Status != Step3PartActive {
		t.Errorf("expected part_active after defaults applied, got %s", once.Step3Status)
	}
}

func TestDefaultsApplicationFillsOnlyUnanswered(t *testing.T) {
	s := hotelState(t)
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 300.0, At: time.Now()})

	got := Reduce(s, Step3DefaultsApplied{TemplateID: "hotel", PartID: "basics", At: time.Now()})

	if got.Step3Answers["rooms"].Value != 300.0 {
		t.Error("defaults application must not overwrite an existing answer")
	}
	if occ := got.Step3Answers["occupancyPct"]; occ.Value != 65.0 || occ.Source != SourceQuestionDefault {
		t.Errorf("unanswered question should receive its default: got %v (%s)", occ.Value, occ.Source)
	}
}

func TestResetToDefaultsRoundTrip(t *testing.T) {
	s := hotelState(t)
	now := time.Now()
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 500.0, At: now})
	s = Reduce(s, SetStep3Answer{ID: "occupancyPct", Value: 90.0, At: now})

	got := Reduce(s, ResetStep3ToDefaults{Scope: ScopeAll, At: now.Add(time.Second)})

	for id, a := range got.Step3Answers {
		if a.Source != SourceTemplateDefault && a.Source != SourceQuestionDefault {
			t.Errorf("answer %q has source %s after reset", id, a.Source)
		}
	}

	rooms := got.Step3Answers["rooms"]
	if rooms.Value != 120.0 {
		t.Errorf("rooms not reset to its default: %v", rooms.Value)
	}
	if rooms.Prev != 500.0 {
		t.Errorf("prev must capture the pre-reset value, got %v", rooms.Prev)
	}

	// Replacement semantics: every part is marked applied
	tmpl := template.Default.GetTemplate("hotel")
	if len(got.Step3DefaultsAppliedParts) != len(tmpl.Parts) {
		t.Errorf("expected %d applied parts, got %d", len(tmpl.Parts), len(got.Step3DefaultsAppliedParts))
	}
}

func TestResetToDefaultsPartScope(t *testing.T) {
	s := hotelState(t)
	now := time.Now()
	s = Reduce(s, Step3DefaultsApplied{TemplateID: "hotel", PartID: "basics", At: now})
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 500.0, At: now})
	s = Reduce(s, SetStep3Answer{ID: "hasPool", Value: true, At: now})

	got := Reduce(s, ResetStep3ToDefaults{Scope: "basics", At: now.Add(time.Second)})

	if got.Step3Answers["rooms"].Value != 120.0 {
		t.Errorf("in-scope answer not reset: %v", got.Step3Answers["rooms"].Value)
	}
	if got.Step3Answers["hasPool"].Value != true {
		t.Error("out-of-scope answer must be untouched")
	}
	// Removal semantics: the part key is dropped until defaults re-fire
	for _, k := range got.Step3DefaultsAppliedParts {
		if k == "hotel.basics" {
			t.Error("partial reset must remove the part's applied key")
		}
	}
}

func TestPartNavigationGuards(t *testing.T) {
	s := hotelState(t)

	if got := Reduce(s, Step3PartNext{}); got.Step3PartIndex != 0 {
		t.Error("PART_NEXT outside part_active must be rejected")
	}
	if got := Reduce(s, Step3QuoteRequested{}); got.Step3Status == Step3QuoteGenerating {
		t.Error("QUOTE_REQUESTED outside part_active must be rejected")
	}

	s = Reduce(s, Step3DefaultsApplied{TemplateID: "hotel", PartID: "basics", At: time.Now()})
	s = Reduce(s, Step3PartNext{})
	if s.Step3PartIndex != 1 {
		t.Errorf("expected part index 1, got %d", s.Step3PartIndex)
	}
	s = Reduce(s, Step3PartPrev{})
	if s.Step3PartIndex != 0 {
		t.Errorf("expected part index 0, got %d", s.Step3PartIndex)
	}
	s = Reduce(s, Step3QuoteRequested{})
	if s.Step3Status != Step3QuoteGenerating {
		t.Errorf("expected quote_generating, got %s", s.Step3Status)
	}
}

func TestGoBack(t *testing.T) {
	s := InitialState("s1")
	if got := Reduce(s, GoBack{}); got.Step != StepLocation || len(got.StepHistory) != 1 {
		t.Error("GO_BACK with single-entry history must be a no-op")
	}

	s = Reduce(s, SetStep{Step: StepIndustry, Reason: "test"})
	s = Reduce(s, PushHistory{Step: StepIndustry})
	s = Reduce(s, PushHistory{Step: StepIndustry}) // repeat: idempotent
	if len(s.StepHistory) != 2 {
		t.Fatalf("expected history length 2, got %d", len(s.StepHistory))
	}

	got := Reduce(s, GoBack{})
	if got.Step != StepLocation {
		t.Errorf("expected return to location, got %s", got.Step)
	}
	if len(got.StepHistory) != 1 {
		t.Errorf("expected history length 1 after back, got %d", len(got.StepHistory))
	}
}

func TestGoalsConfirmationGating(t *testing.T) {
	t.Run("unconfirmed location blocks advancement", func(t *testing.T) {
		s := InitialState("s1")
		got := Reduce(s, SetGoalsConfirmed{Confirmed: true})
		if got.Step != StepLocation {
			t.Errorf("expected to stay on location, got %s", got.Step)
		}
		if !got.GoalsConfirmed {
			t.Error("goals confirmation itself must still be recorded")
		}
	})

	t.Run("confirmed location advances to industry", func(t *testing.T) {
		s := InitialState("s1")
		s.LocationConfirmed = true
		got := Reduce(s, SetGoalsConfirmed{Confirmed: true})
		if got.Step != StepIndustry {
			t.Errorf("expected industry, got %s", got.Step)
		}
	})

	t.Run("locked industry with template skips to profile", func(t *testing.T) {
		s := hotelState(t)
		s.Industry = "hotel"
		s.IndustryLocked = true
		got := Reduce(s, SetGoalsConfirmed{Confirmed: true})
		if got.Step != StepProfile {
			t.Errorf("expected profile, got %s", got.Step)
		}
	})

	t.Run("locked auto industry does not skip", func(t *testing.T) {
		s := InitialState("s1")
		s.IndustryLocked = true
		s.LocationConfirmed = true
		got := Reduce(s, SetGoalsConfirmed{Confirmed: true})
		if got.Step != StepIndustry {
			t.Errorf("auto industry must not skip to profile, got %s", got.Step)
		}
	})
}

func TestIndustryChangeResetsStep3(t *testing.T) {
	s := hotelState(t)
	s.Industry = "hotel"
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 150.0, At: time.Now()})

	got := Reduce(s, SetIndustry{Industry: "office"})
	if got.Step3Template != nil || len(got.Step3Answers) != 0 {
		t.Error("changing industry must reset step3")
	}

	same := Reduce(s, SetIndustry{Industry: "hotel"})
	if same.Step3Template == nil || len(same.Step3Answers) != 1 {
		t.Error("re-selecting the same industry must not reset step3")
	}
}

func TestReducerNeverMutatesInput(t *testing.T) {
	s := hotelState(t)
	s = Reduce(s, SetStep3Answer{ID: "rooms", Value: 150.0, At: time.Now()})
	before := len(s.Step3Answers)
	historyBefore := len(s.StepHistory)

	_ = Reduce(s, SetStep3Answer{ID: "occupancyPct", Value: 70.0, At: time.Now()})
	_ = Reduce(s, PushHistory{Step: StepIndustry})
	_ = Reduce(s, SetLocation{Location: nil})

	if len(s.Step3Answers) != before {
		t.Error("input state answers mutated")
	}
	if len(s.StepHistory) != historyBefore {
		t.Error("input state history mutated")
	}
}

func TestHydrateSuccessRestoresSnapshot(t *testing.T) {
	snapshot := hotelState(t)
	snapshot.Industry = "hotel"
	snapshot.Step = StepProfile

	s := InitialState("fresh")
	got := Reduce(s, HydrateSuccess{Snapshot: snapshot})
	if got.Industry != "hotel" || got.Step != StepProfile {
		t.Error("snapshot not restored")
	}
	if got.SessionID != snapshot.SessionID {
		t.Error("hydration must keep the snapshot's session id")
	}
}

func TestResetSession(t *testing.T) {
	s := hotelState(t)
	s.Industry = "hotel"
	got := Reduce(s, ResetSession{SessionID: "fresh-id"})
	if got.SessionID != "fresh-id" {
		t.Errorf("expected fresh session id, got %s", got.SessionID)
	}
	if got.Industry != types.IndustryAuto || got.Step != StepLocation {
		t.Error("reset must return to the initial state")
	}
}
