// Package calc - Industrial calculators
package calc

import (
	"fmt"

	"energy-quote/core/types"
)

func init() {
	register("manufacturing_load_v1", []string{"shifts", "connectedLoadKW"}, computeManufacturing)
	register("data_center_load_v1", []string{"racks", "kwPerRack"}, computeDataCenter)
}

func computeManufacturing(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	connected := in.GetFloat("connectedKW")
	if connected == 0 {
		connected = in.GetFloat("connectedLoadKW")
	}
	if connected <= 0 {
		connected = 500
		warnings = append(warnings, "connectedLoadKW missing; assumed 500")
	}

	shifts := in.GetFloat("shiftCount")
	if shifts == 0 {
		shifts = in.GetFloat("shifts")
	}
	if shifts <= 0 || shifts > 3 {
		shifts = 2
		assumptions = append(assumptions, "shift count defaulted to 2")
	}

	contributors := map[string]float64{
		// 0.7 demand factor: not all connected equipment runs at once
		"process_equipment": connected * 0.7,
		"compressed_air":    connected * 0.08,
		"facility":          in.GetFloat("facilitySize") * 0.002,
	}
	if in.GetBool("processHeat") {
		contributors["process_heat"] = 80
	}

	peak := sumContributors(contributors)
	if known := in.GetFloat("peakLoadKW"); known > 0 {
		assumptions = append(assumptions, fmt.Sprintf("peak load %.0f kW taken from utility bill", known))
		peak = known
	}

	base := connected * 0.12
	if base > peak {
		base = peak
	}

	hours := shifts * 8
	energy := base*(24-hours) + peak*0.85*hours
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

func computeDataCenter(in types.CalcInputs) types.CalcResult {
	var warnings, assumptions []string

	it := in.GetFloat("itLoadKW")
	if it == 0 {
		it = in.GetFloat("racks") * in.GetFloat("kwPerRack")
	}
	if it <= 0 {
		it = 400
		warnings = append(warnings, "rack inputs missing; assumed 400 kW IT load")
	}

	pue := in.GetFloat("pue")
	if pue < 1 {
		pue = 1.5
		assumptions = append(assumptions, "PUE defaulted to 1.5")
	}
	if pue > 3 {
		warnings = append(warnings, fmt.Sprintf("PUE %.2f is implausibly high", pue))
	}

	peak := it * pue
	contributors := map[string]float64{
		"it_load":            it,
		"cooling_and_losses": it * (pue - 1),
	}

	// Data center load is nearly flat
	base := peak * 0.85
	avg := peak * 0.92
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
