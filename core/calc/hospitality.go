// Package calc - Hospitality and fueling calculators
package calc

import (
	"fmt"

	"energy-quote/core/types"
)

func init() {
	register("hotel_load_v1", []string{"rooms", "occupancyPct"}, computeHotel)
	register("gas_station_load_v1", nil, computeGasStation)
}

// computeHotel sizes a hotel load from room count and occupancy. Emits a
// full validation envelope itself rather than relying on runner synthesis.
func computeHotel(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	rooms := in.GetFloat("roomCount")
	if rooms == 0 {
		rooms = in.GetFloat("rooms")
	}
	if rooms <= 0 {
		rooms = 100
		warnings = append(warnings, "rooms missing or non-positive; assumed 100")
	}

	occ := in.GetFloat("occupancy")
	if occ == 0 && in.Has("occupancyPct") {
		occ = in.GetFloat("occupancyPct") / 100
	}
	if occ <= 0 {
		occ = 0.65
		assumptions = append(assumptions, "occupancy defaulted to 65%")
	}
	if occ > 1 {
		warnings = append(warnings, fmt.Sprintf("occupancy %.2f above 100%%; clamped", occ))
		occ = 1
	}

	facilitySize := in.GetFloat("facilitySize")

	contributors := map[string]float64{
		"hvac":         rooms * occ * 0.9,
		"lighting":     rooms*0.25 + 15,
		"common_areas": 20 + facilitySize*0.001,
	}
	if in.GetBool("hasLaundry") {
		contributors["laundry"] = rooms * 0.15
	}
	if in.GetBool("hasPool") {
		contributors["pool"] = 30
	}
	if in.GetBool("hasRestaurant") {
		contributors["kitchen"] = 40
	}

	peak := sumContributors(contributors)
	if known := in.GetFloat("peakLoadKW"); known > 0 {
		assumptions = append(assumptions, fmt.Sprintf("peak load %.0f kW taken from utility bill", known))
		peak = known
	}

	base := contributors["hvac"]*0.3 + contributors["lighting"]*0.4 + contributors["common_areas"]
	if base > peak {
		base = peak
	}

	avg := base + (peak-base)*occ*0.7
	energy := avg * 24
	duty := dutyCycle(avg, peak)

	return types.CalcResult{
		BaseLoadKW:      base,
		PeakLoadKW:      peak,
		EnergyKWhPerDay: energy,
		DutyCycle:       duty,
		KWContributors:  contributors,
		Assumptions:     assumptions,
		Warnings:        warnings,
		Validation: &types.TrueQuoteValidation{
			Version:               "hotel/1",
			DutyCycle:             *duty,
			KWContributors:        contributors,
			KWContributorsTotalKW: sumContributors(contributors),
			KWContributorShares:   shares(contributors),
			Assumptions:           assumptions,
		},
	}
}

// computeGasStation sizes a fueling station. It is paired with a borrowed
// question set, so every station-specific input is optional and assumed
// when absent.
func computeGasStation(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	positions := in.GetFloat("fuelingPositions")
	if positions <= 0 {
		positions = 8
		warnings = append(warnings, "fuelingPositions missing; assumed 8")
	}

	storeSqFt := in.GetFloat("facilitySize")
	if storeSqFt <= 0 {
		storeSqFt = 3000
		assumptions = append(assumptions, "store size defaulted to 3000 sq ft")
	}

	contributors := map[string]float64{
		"pumps":           positions * 0.75,
		"canopy_lighting": positions*0.3 + 5,
		"store":           storeSqFt * 0.004,
		"refrigeration":   12,
	}
	if in.GetBool("hasCarWash") {
		contributors["car_wash"] = 25
	}
	if chargers := in.GetFloat("evChargers"); chargers > 0 {
		contributors["ev_charging"] = chargers * 50
	}

	peak := sumContributors(contributors)
	if known := in.GetFloat("peakLoadKW"); known > 0 {
		assumptions = append(assumptions, fmt.Sprintf("peak load %.0f kW taken from utility bill", known))
		peak = known
	}

	// Stations run around the clock; refrigeration and store load never stop
	base := contributors["store"]*0.6 + contributors["refrigeration"] + contributors["canopy_lighting"]*0.5
	if base > peak {
		base = peak
	}

	avg := base + (peak-base)*0.35
	energy := avg * 24

	return types.CalcResult{
		BaseLoadKW:      base,
		PeakLoadKW:      peak,
		EnergyKWhPerDay: energy,
		DutyCycle:       dutyCycle(avg, peak),
		KWContributors:  contributors,
		Assumptions:     assumptions,
		Warnings:        warnings,
	}
}

func shares(contributors map[string]float64) map[string]float64 {
	total := sumContributors(contributors)
	if total <= 0 {
		return nil
	}
	out := make(map[string]float64, len(contributors))
	for k, v := range contributors {
		out[k] = v / total
	}
	return out
}
