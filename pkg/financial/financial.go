// Package financial projects billed amounts with and without the PV system
// over the proposal horizon, under tariff escalation and the regulatory
// compensation schedule.
package financial

import (
	"math"

	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/types"
)

// Engine projects bills against an injected reference dataset.
type Engine struct {
	ref *refdata.Set
}

// New returns a financial engine bound to the given reference data.
func New(ref *refdata.Set) *Engine {
	return &Engine{ref: ref}
}

// BillingInput carries the per-request figures the projection needs. The
// monthly generation figure is the sizing engine's reported (rounded) value.
type BillingInput struct {
	MonthlyConsumptionKWH float64
	MonthlyGenerationKWH  float64
	AvailabilityKWH       int
	Taxes                 types.TaxRates
	PublicLightingFee     float64
}

// EffectiveTariff is the billed price per kWh: the base tariff grossed up by
// the taxes charged "inside" the price ("imposto por dentro"), so taxes
// inflate rather than add to the consumer price.
func (e *Engine) EffectiveTariff(taxes types.TaxRates) float64 {
	base := e.ref.Tariff.DistributionPerKWH + e.ref.Tariff.EnergyPerKWH
	return base / (1 - taxes.Total())
}

// escalate compounds a value by the annual tariff escalation. Year 1 is
// unescalated.
func (e *Engine) escalate(value float64, year int) float64 {
	return value * math.Pow(1+e.ref.System.AnnualTariffEscalation, float64(year-1))
}

// CompensationFactor is the fraction of self-generation credited in the given
// projection year, per the regulatory phase-in schedule. Any year not in the
// schedule, including year 5 onwards, compensates in full.
func (e *Engine) CompensationFactor(year int) float64 {
	if frac, ok := e.ref.CompensationSchedule[year]; ok {
		return frac
	}
	return 1.0
}

// BillWithoutSystem is the monthly bill with no PV system in the given
// projection year, rounded to 2 decimals at this point. Intermediate tariff
// and escalation values stay full precision.
func (e *Engine) BillWithoutSystem(in BillingInput, year int) float64 {
	amount := in.MonthlyConsumptionKWH*e.escalate(e.EffectiveTariff(in.Taxes), year) + in.PublicLightingFee
	return round2(amount)
}

// BillWithSystem is the monthly bill with the PV system in the given
// projection year. The utility always bills at least the availability floor,
// even when generation fully covers consumption.
func (e *Engine) BillWithSystem(in BillingInput, year int) float64 {
	effectiveGeneration := in.MonthlyGenerationKWH * e.CompensationFactor(year)
	net := math.Max(in.MonthlyConsumptionKWH-effectiveGeneration, 0)
	billable := math.Max(net, float64(in.AvailabilityKWH))
	amount := billable*e.escalate(e.EffectiveTariff(in.Taxes), year) + in.PublicLightingFee
	return round2(amount)
}

// Project returns one record per projection year, in order. Savings can be
// negative while the compensation schedule is ramping up.
func (e *Engine) Project(in BillingInput) []types.YearlyBillingRecord {
	records := make([]types.YearlyBillingRecord, 0, e.ref.ProjectionYears)
	for year := 1; year <= e.ref.ProjectionYears; year++ {
		without := e.BillWithoutSystem(in, year)
		with := e.BillWithSystem(in, year)
		records = append(records, types.YearlyBillingRecord{
			CalendarYear:      e.ref.ProjectionStartYear + year - 1,
			BillWithoutSystem: without,
			BillWithSystem:    with,
			MonthlySavings:    round2(without - with),
		})
	}
	return records
}

// TotalSavings sums the already-rounded monthly savings across the horizon,
// twelve months per record. The rounding order matters: this is a sum of
// per-year rounded figures, not a rounded sum of full-precision ones.
func TotalSavings(records []types.YearlyBillingRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.MonthlySavings * 12
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
