package calc

import (
	"strings"
	"testing"

	"energy-quote/core/types"
)

func get(t *testing.T, id string) Calculator {
	t.Helper()
	c, ok := Default.Get(id)
	if !ok {
		t.Fatalf("calculator %q not registered", id)
	}
	return c
}

func TestAllCalculatorsHandleEmptyInputs(t *testing.T) {
	for _, id := range Default.IDs() {
		t.Run(id, func(t *testing.T) {
			c, _ := Default.Get(id)
			result := c.Compute(types.CalcInputs{})

			if result.PeakLoadKW <= 0 {
				t.Errorf("empty inputs should still produce a positive peak, got %.1f", result.PeakLoadKW)
			}
			if result.BaseLoadKW > result.PeakLoadKW {
				t.Errorf("base %.1f exceeds peak %.1f", result.BaseLoadKW, result.PeakLoadKW)
			}
			if result.EnergyKWhPerDay > result.PeakLoadKW*24 {
				t.Errorf("energy %.0f exceeds peak capacity", result.EnergyKWhPerDay)
			}
		})
	}
}

func TestHotelCalculator(t *testing.T) {
	c := get(t, "hotel_load_v1")

	t.Run("scales with rooms", func(t *testing.T) {
		small := c.Compute(types.CalcInputs{"roomCount": 50.0, "occupancy": 0.65})
		large := c.Compute(types.CalcInputs{"roomCount": 400.0, "occupancy": 0.65})
		if large.PeakLoadKW <= small.PeakLoadKW {
			t.Errorf("peak should grow with rooms: %.1f vs %.1f", small.PeakLoadKW, large.PeakLoadKW)
		}
	})

	t.Run("reads unmapped legacy keys", func(t *testing.T) {
		mapped := c.Compute(types.CalcInputs{"roomCount": 150.0, "occupancy": 0.7})
		legacy := c.Compute(types.CalcInputs{"rooms": 150.0, "occupancyPct": 70.0})
		if mapped.PeakLoadKW != legacy.PeakLoadKW {
			t.Errorf("legacy keys should compute identically: %.1f vs %.1f", mapped.PeakLoadKW, legacy.PeakLoadKW)
		}
	})

	t.Run("missing rooms warns and assumes", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{"occupancy": 0.6})
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "rooms missing") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a rooms-missing warning, got %v", result.Warnings)
		}
	})

	t.Run("occupancy above 100 percent clamps", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{"roomCount": 100.0, "occupancy": 1.4})
		if len(result.Warnings) == 0 {
			t.Error("expected a clamp warning")
		}
		if result.DutyCycle != nil && *result.DutyCycle > 1.0 {
			t.Errorf("clamped occupancy should keep duty cycle sane: %.2f", *result.DutyCycle)
		}
	})

	t.Run("utility bill peak overrides", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{"roomCount": 100.0, "occupancy": 0.65, "peakLoadKW": 900.0})
		if result.PeakLoadKW != 900.0 {
			t.Errorf("known peak should win: %.1f", result.PeakLoadKW)
		}
	})

	t.Run("emits its own envelope", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{"roomCount": 120.0, "occupancy": 0.65})
		if result.Validation == nil || result.Validation.Version != "hotel/1" {
			t.Fatal("expected a hotel/1 envelope")
		}
		shareTotal := 0.0
		for _, s := range result.Validation.KWContributorShares {
			shareTotal += s
		}
		if shareTotal < 0.999 || shareTotal > 1.001 {
			t.Errorf("contributor shares should sum to 1, got %.4f", shareTotal)
		}
	})
}

func TestGasStationCalculator(t *testing.T) {
	c := get(t, "gas_station_load_v1")

	t.Run("assumes positions when absent", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{})
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, "fuelingPositions missing; assumed 8") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected the assumed-positions warning, got %v", result.Warnings)
		}
	})

	t.Run("no required questions", func(t *testing.T) {
		if len(c.RequiredQuestions()) != 0 {
			t.Error("a borrowed-template calculator cannot require questions")
		}
	})

	t.Run("ev chargers add load", func(t *testing.T) {
		without := c.Compute(types.CalcInputs{"fuelingPositions": 8.0})
		with := c.Compute(types.CalcInputs{"fuelingPositions": 8.0, "evChargers": 2.0})
		if diff := with.PeakLoadKW - without.PeakLoadKW; diff < 99.9 || diff > 100.1 {
			t.Errorf("expected 100 kW from 2 chargers, got %.1f", diff)
		}
	})

	t.Run("no envelope of its own", func(t *testing.T) {
		result := c.Compute(types.CalcInputs{"fuelingPositions": 8.0})
		if result.Validation != nil {
			t.Error("gas station leaves envelope synthesis to the runner")
		}
	})
}

func TestDataCenterCalculator(t *testing.T) {
	c := get(t, "data_center_load_v1")

	result := c.Compute(types.CalcInputs{"itLoadKW": 400.0, "pue": 1.5})
	if result.PeakLoadKW != 600.0 {
		t.Errorf("expected 400 kW IT at PUE 1.5 to peak at 600, got %.1f", result.PeakLoadKW)
	}
	if result.BaseLoadKW <= 0 || result.BaseLoadKW > result.PeakLoadKW {
		t.Errorf("base load out of range: %.1f", result.BaseLoadKW)
	}
}

func TestCalculatorsAreDeterministic(t *testing.T) {
	inputs := types.CalcInputs{
		"roomCount": 150.0, "occupancy": 0.7,
		"employees": 200.0, "salesFloorSqFt": 25000.0,
		"refrigerationCases": 30.0, "shifts": 2.0,
		"connectedLoadKW": 400.0, "itLoadKW": 300.0,
	}
	for _, id := range Default.IDs() {
		t.Run(id, func(t *testing.T) {
			c, _ := Default.Get(id)
			a := c.Compute(inputs)
			b := c.Compute(inputs)
			if a.PeakLoadKW != b.PeakLoadKW || a.BaseLoadKW != b.BaseLoadKW || a.EnergyKWhPerDay != b.EnergyKWhPerDay {
				t.Error("calculator not deterministic")
			}
		})
	}
}
