// Package sizing converts a consumption profile into a physically and
// commercially valid PV system description.
package sizing

import (
	"errors"
	"math"

	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/types"
)

// ErrNoValidConsumption is returned when a consumption history contains no
// readings greater than zero.
var ErrNoValidConsumption = errors.New("consumption history has no valid readings")

// Engine sizes PV systems against an injected reference dataset.
type Engine struct {
	ref *refdata.Set
}

// New returns a sizing engine bound to the given reference data.
func New(ref *refdata.Set) *Engine {
	return &Engine{ref: ref}
}

// NormalizeConsumption resolves a consumption input into a profile. A single
// value yields a degenerate profile where every statistic equals that value;
// a history is filtered to readings greater than zero before the statistics
// are derived, while HistoryKWH keeps the raw input as given. A single value
// is assumed to have been validated as positive at the boundary.
func (e *Engine) NormalizeConsumption(in types.ConsumptionInput) (types.ConsumptionProfile, error) {
	if len(in.HistoryKWH) == 0 {
		v := in.MonthlyKWH
		return types.ConsumptionProfile{
			AverageMonthlyKWH: v,
			MonthsReported:    1,
			HistoryKWH:        []float64{v},
			MinKWH:            v,
			MaxKWH:            v,
			VariationPct:      0,
		}, nil
	}

	var sum, min, max float64
	var valid int
	for _, v := range in.HistoryKWH {
		if v <= 0 {
			continue
		}
		if valid == 0 || v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		valid++
	}
	if valid == 0 {
		return types.ConsumptionProfile{}, ErrNoValidConsumption
	}

	variation := 0.0
	if min > 0 {
		variation = (max - min) / min * 100
	}
	history := make([]float64, len(in.HistoryKWH))
	copy(history, in.HistoryKWH)

	return types.ConsumptionProfile{
		AverageMonthlyKWH: sum / float64(valid),
		MonthsReported:    valid,
		HistoryKWH:        history,
		MinKWH:            min,
		MaxKWH:            max,
		VariationPct:      variation,
	}, nil
}

// AvailabilityKWH returns the minimum billable consumption for the service
// type.
func (e *Engine) AvailabilityKWH(st types.ServiceType) int {
	return e.ref.Availability(st)
}

// ModuleCount returns how many modules are needed to offset the average
// consumption beyond the availability floor. Monthly generation per module is
// modeled as irradiance x area x efficiency x (1 - loss) over a fixed 30-day
// month. Always at least 1.
func (e *Engine) ModuleCount(avgMonthlyKWH float64, availabilityKWH int, irradiance float64) int {
	perModuleMonthly := irradiance * e.ref.Module.AreaM2 * e.ref.Module.Efficiency * (1 - e.ref.System.LossFraction) * 30
	count := int(math.Ceil((avgMonthlyKWH - float64(availabilityKWH)) / perModuleMonthly))
	if count < 1 {
		return 1
	}
	return count
}

// SystemPowerKWP is the nameplate DC power of count modules.
func (e *Engine) SystemPowerKWP(count int, moduleWatts float64) float64 {
	return float64(count) * moduleWatts / 1000
}

// SelectInverter picks the smallest inverter rated at or above the DC:AC
// sizing target. The catalog is sorted descending, so the scan walks it from
// the back; a system larger than the whole catalog gets the largest entry.
func (e *Engine) SelectInverter(systemPowerKWP float64) types.InverterCatalogEntry {
	target := systemPowerKWP / e.ref.System.InverterSizingRatio
	catalog := e.ref.Inverters
	for i := len(catalog) - 1; i >= 0; i-- {
		if catalog[i].PowerKW >= target {
			return catalog[i]
		}
	}
	return catalog[0]
}

// RequiredAreaM2 is the roof area needed for count modules, including
// mounting clearance.
func (e *Engine) RequiredAreaM2(count int) float64 {
	return float64(count) * e.ref.Module.AreaM2 * e.ref.System.ClearanceFactor
}

// DailyGenerationKWH is the average daily generation of count modules.
func (e *Engine) DailyGenerationKWH(count int, irradiance float64) float64 {
	return irradiance * e.ref.Module.AreaM2 * e.ref.Module.Efficiency * (1 - e.ref.System.LossFraction) * float64(count)
}

// Size runs the full sizing pipeline for a profile. Reported figures are
// rounded to 2 decimals; the monthly generation figure is rounded before it
// feeds the financial projection, which downstream consumers rely on.
func (e *Engine) Size(profile types.ConsumptionProfile, st types.ServiceType, irradiance, moduleWatts float64) types.SizingResult {
	availability := e.AvailabilityKWH(st)
	count := e.ModuleCount(profile.AverageMonthlyKWH, availability, irradiance)
	power := e.SystemPowerKWP(count, moduleWatts)
	daily := e.DailyGenerationKWH(count, irradiance)
	annual := daily * 365

	yield := 0.0
	if power > 0 {
		yield = annual / power
	}

	return types.SizingResult{
		ModuleCount:            count,
		ModuleWatts:            moduleWatts,
		SystemPowerKWP:         round2(power),
		Inverter:               e.SelectInverter(power),
		RequiredAreaM2:         round2(e.RequiredAreaM2(count)),
		DailyGenerationKWH:     round2(daily),
		MonthlyGenerationKWH:   round2(daily * 30),
		AnnualGenerationKWH:    round2(annual),
		SpecificYieldKWHPerKWP: round2(yield),
		AvailabilityKWH:        availability,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
