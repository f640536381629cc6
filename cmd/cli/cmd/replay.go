// Package cmd - replay command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy-quote/core/types"
	"energy-quote/core/wizard"
)

// scriptEvent is one entry of a replay script
type scriptEvent struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

var replayTrail bool

// replayCmd folds a JSON intent script through the reducer and prints the
// final session state. Useful for reproducing reported wizard sessions.
var replayCmd = &cobra.Command{
	Use:   "replay [script.json]",
	Short: "Replay an intent script through the wizard reducer",
	Long: `Replay a recorded wizard session. The script is a JSON array of events:

  [
    {"type": "SET_LOCATION_RAW", "value": "90210"},
    {"type": "SET_LOCATION_CONFIRMED", "value": true},
    {"type": "SET_INDUSTRY", "value": "hotel"},
    {"type": "SET_STEP3_ANSWER", "value": {"id": "rooms", "value": 150}}
  ]`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayTrail, "trail", false, "print the debug trail instead of the full state")
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	var events []scriptEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("parsing script: %w", err)
	}

	store := wizard.NewStore()
	for i, ev := range events {
		intent, err := decodeIntent(ev)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i, ev.Type, err)
		}
		store.Dispatch(intent)
	}

	state := store.State()
	if replayTrail {
		for _, note := range state.DebugTrail {
			fmt.Println(note)
		}
		return nil
	}
	return printJSON(state)
}

// decodeIntent maps a script event to a wizard intent. Only the intents a
// recorded UI session can carry are supported here.
func decodeIntent(ev scriptEvent) (wizard.Intent, error) {
	switch ev.Type {
	case "SET_STEP":
		var step string
		if err := json.Unmarshal(ev.Value, &step); err != nil {
			return nil, err
		}
		return wizard.SetStep{Step: wizard.Step(step), Reason: "replay"}, nil
	case "PUSH_HISTORY":
		var step string
		if err := json.Unmarshal(ev.Value, &step); err != nil {
			return nil, err
		}
		return wizard.PushHistory{Step: wizard.Step(step)}, nil
	case "GO_BACK":
		return wizard.GoBack{}, nil
	case "SET_LOCATION_RAW":
		var raw string
		if err := json.Unmarshal(ev.Value, &raw); err != nil {
			return nil, err
		}
		return wizard.SetLocationRaw{Raw: raw}, nil
	case "SET_LOCATION":
		var loc *types.LocationCard
		if err := json.Unmarshal(ev.Value, &loc); err != nil {
			return nil, err
		}
		return wizard.SetLocation{Location: loc}, nil
	case "SET_LOCATION_CONFIRMED":
		var confirmed bool
		if err := json.Unmarshal(ev.Value, &confirmed); err != nil {
			return nil, err
		}
		return wizard.SetLocationConfirmed{Confirmed: confirmed}, nil
	case "SET_GOALS":
		var goals []string
		if err := json.Unmarshal(ev.Value, &goals); err != nil {
			return nil, err
		}
		return wizard.SetGoals{Goals: goals}, nil
	case "SET_GOALS_CONFIRMED":
		var confirmed bool
		if err := json.Unmarshal(ev.Value, &confirmed); err != nil {
			return nil, err
		}
		return wizard.SetGoalsConfirmed{Confirmed: confirmed}, nil
	case "SET_INDUSTRY":
		var slug string
		if err := json.Unmarshal(ev.Value, &slug); err != nil {
			return nil, err
		}
		return wizard.SetIndustry{Industry: types.IndustrySlug(slug)}, nil
	case "LOCK_INDUSTRY":
		var locked bool
		if err := json.Unmarshal(ev.Value, &locked); err != nil {
			return nil, err
		}
		return wizard.LockIndustry{Locked: locked}, nil
	case "SET_STEP3_ANSWER":
		var payload struct {
			ID     string      `json:"id"`
			Value  interface{} `json:"value"`
			Source string      `json:"source,omitempty"`
		}
		if err := json.Unmarshal(ev.Value, &payload); err != nil {
			return nil, err
		}
		return wizard.SetStep3Answer{ID: payload.ID, Value: payload.Value, Source: wizard.AnswerSource(payload.Source)}, nil
	case "PATCH_STEP3_ANSWERS":
		var payload struct {
			Values types.Answers `json:"values"`
			Source string        `json:"source,omitempty"`
		}
		if err := json.Unmarshal(ev.Value, &payload); err != nil {
			return nil, err
		}
		return wizard.PatchStep3Answers{Values: payload.Values, Source: wizard.AnswerSource(payload.Source)}, nil
	case "RESET_STEP3_TO_DEFAULTS":
		var scope string
		if err := json.Unmarshal(ev.Value, &scope); err != nil {
			return nil, err
		}
		return wizard.ResetStep3ToDefaults{Scope: scope}, nil
	case "RESET_SESSION":
		return wizard.ResetSession{SessionID: "replay"}, nil
	default:
		return nil, fmt.Errorf("unsupported event type %q", ev.Type)
	}
}
