// Package calc - Commercial building calculators
package calc

import (
	"fmt"

	"energy-quote/core/types"
)

func init() {
	register("office_load_v1", []string{"employees"}, computeOffice)
	register("grocery_load_v1", []string{"salesFloorSqFt", "refrigerationCases"}, computeGrocery)
	register("generic_load_v1", nil, computeGeneric)
}

func computeOffice(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	headcount := in.GetFloat("headcount")
	if headcount == 0 {
		headcount = in.GetFloat("employees")
	}
	if headcount <= 0 {
		headcount = 100
		warnings = append(warnings, "employees missing; assumed 100")
	}

	sqft := in.GetFloat("facilitySize")
	if sqft <= 0 {
		sqft = headcount * 150
		assumptions = append(assumptions, fmt.Sprintf("facility size estimated at %.0f sq ft from headcount", sqft))
	}

	contributors := map[string]float64{
		"hvac":      sqft * 0.0035,
		"lighting":  sqft * 0.0012,
		"plug_load": headcount * 0.2,
	}
	if in.GetBool("hasDataRoom") {
		contributors["data_room"] = 20
	}

	peak := sumContributors(contributors)
	if known := in.GetFloat("peakLoadKW"); known > 0 {
		assumptions = append(assumptions, fmt.Sprintf("peak load %.0f kW taken from utility bill", known))
		peak = known
	}

	base := contributors["hvac"]*0.25 + contributors["lighting"]*0.2 + contributors["data_room"]
	if base > peak {
		base = peak
	}

	hours := in.GetFloat("operatingHours")
	if hours <= 0 || hours > 24 {
		hours = 10
		assumptions = append(assumptions, "operating hours defaulted to 10")
	}

	energy := base*(24-hours) + peak*0.8*hours
	avg := energy / 24

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

func computeGrocery(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	salesFloor := in.GetFloat("salesFloor")
	if salesFloor == 0 {
		salesFloor = in.GetFloat("salesFloorSqFt")
	}
	if salesFloor <= 0 {
		salesFloor = 30000
		warnings = append(warnings, "salesFloorSqFt missing; assumed 30000")
	}

	cases := in.GetFloat("caseCount")
	if cases == 0 {
		cases = in.GetFloat("refrigerationCases")
	}
	if cases < 0 {
		warnings = append(warnings, "negative refrigeration case count; treated as 0")
		cases = 0
	}

	contributors := map[string]float64{
		"refrigeration": cases * 1.2,
		"hvac":          salesFloor * 0.003,
		"lighting":      salesFloor * 0.0015,
	}
	if in.GetBool("hasBakery") {
		contributors["bakery"] = 30
	}

	peak := sumContributors(contributors)
	if known := in.GetFloat("peakLoadKW"); known > 0 {
		assumptions = append(assumptions, fmt.Sprintf("peak load %.0f kW taken from utility bill", known))
		peak = known
	}

	// Refrigeration never cycles off
	base := contributors["refrigeration"] + contributors["hvac"]*0.3
	if base > peak {
		base = peak
	}

	avg := base + (peak-base)*0.5
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

// computeGeneric is the fallback calculator for templateMode=generic and for
// externally-authored templates that declare no specific calculator fit.
func computeGeneric(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	peak := in.GetFloat("peakLoadKW")
	if peak <= 0 {
		sqft := in.GetFloat("facilitySize")
		if sqft <= 0 {
			sqft = 10000
			warnings = append(warnings, "facilitySize missing; assumed 10000 sq ft")
		}
		peak = sqft * 0.005
		assumptions = append(assumptions, "peak load estimated at 5 W/sq ft")
	}

	base := peak * 0.3
	hours := in.GetFloat("operatingHours")
	if hours <= 0 || hours > 24 {
		hours = 12
		assumptions = append(assumptions, "operating hours defaulted to 12")
	}

	energy := base*(24-hours) + peak*0.7*hours
	avg := energy / 24

	return types.CalcResult{
		BaseLoadKW:      base,
		PeakLoadKW:      peak,
		EnergyKWhPerDay: energy,
		DutyCycle:       dutyCycle(avg, peak),
		KWContributors: map[string]float64{
			"facility": peak,
		},
		Assumptions: assumptions,
		Warnings:    warnings,
	}
}
