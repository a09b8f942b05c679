package financial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/types"
)

var testTaxes = types.TaxRates{ICMS: 0.18, PIS: 0.0099, COFINS: 0.0463}

func testEngine(t *testing.T) *Engine {
	ref, err := refdata.Default()
	require.NoError(t, err)
	return New(ref)
}

func testInput() BillingInput {
	return BillingInput{
		MonthlyConsumptionKWH: 1000,
		MonthlyGenerationKWH:  962.48,
		AvailabilityKWH:       50,
		Taxes:                 testTaxes,
		PublicLightingFee:     14.75,
	}
}

func TestEffectiveTariff(t *testing.T) {
	e := testEngine(t)

	// base tariff grossed up by taxes charged inside the price
	base := e.ref.Tariff.DistributionPerKWH + e.ref.Tariff.EnergyPerKWH
	want := base / (1 - testTaxes.Total())
	assert.InDelta(t, want, e.EffectiveTariff(testTaxes), 1e-12)

	// grossing up always inflates the price
	assert.Greater(t, e.EffectiveTariff(testTaxes), base)
	assert.InDelta(t, base, e.EffectiveTariff(types.TaxRates{}), 1e-12)
}

func TestCompensationFactor(t *testing.T) {
	e := testEngine(t)

	assert.Equal(t, 0.78, e.CompensationFactor(1))
	assert.Equal(t, 0.82, e.CompensationFactor(2))
	assert.Equal(t, 0.88, e.CompensationFactor(3))
	assert.Equal(t, 0.95, e.CompensationFactor(4))
	for _, year := range []int{5, 6, 10, 25, 100} {
		assert.Equal(t, 1.0, e.CompensationFactor(year), "year %d", year)
	}
	// zero and negative years resolve through the default, never a partial
	// fraction
	assert.Equal(t, 1.0, e.CompensationFactor(0))
	assert.Equal(t, 1.0, e.CompensationFactor(-3))
}

func TestBillWithoutSystem(t *testing.T) {
	e := testEngine(t)
	in := testInput()

	tariff := e.EffectiveTariff(testTaxes)
	want := math.Round((1000*tariff+14.75)*100) / 100
	assert.Equal(t, want, e.BillWithoutSystem(in, 1))

	// year 2 escalates the tariff once
	escalated := tariff * (1 + e.ref.System.AnnualTariffEscalation)
	want2 := math.Round((1000*escalated+14.75)*100) / 100
	assert.Equal(t, want2, e.BillWithoutSystem(in, 2))
	assert.Greater(t, e.BillWithoutSystem(in, 2), e.BillWithoutSystem(in, 1))
}

func TestBillWithSystemAvailabilityFloor(t *testing.T) {
	e := testEngine(t)
	in := testInput()
	// generation dwarfs consumption: the utility still bills the floor
	in.MonthlyGenerationKWH = 5000

	tariff := e.EffectiveTariff(testTaxes)
	want := math.Round((50*tariff+14.75)*100) / 100
	assert.Equal(t, want, e.BillWithSystem(in, 5))
}

func TestBillWithSystemRampReducesCredit(t *testing.T) {
	e := testEngine(t)
	in := testInput()

	// year 1 credits only 78% of generation, so the bill exceeds the
	// escalation-adjusted year 5 bill in real terms
	year1 := e.BillWithSystem(in, 1)
	tariff := e.EffectiveTariff(testTaxes)
	net1 := math.Max(1000-962.48*0.78, 0)
	billable1 := math.Max(net1, 50)
	want1 := math.Round((billable1*tariff+14.75)*100) / 100
	assert.Equal(t, want1, year1)
}

func TestProject(t *testing.T) {
	e := testEngine(t)
	records := e.Project(testInput())

	require.Len(t, records, 25)
	assert.Equal(t, 2025, records[0].CalendarYear)
	assert.Equal(t, 2049, records[24].CalendarYear)
	for i := 1; i < len(records); i++ {
		assert.Equal(t, records[i-1].CalendarYear+1, records[i].CalendarYear)
	}
	for _, r := range records {
		assert.Equal(t, math.Round((r.BillWithoutSystem-r.BillWithSystem)*100)/100, r.MonthlySavings)
	}

	// savings grow once the schedule reaches full compensation
	assert.Greater(t, records[4].MonthlySavings, records[0].MonthlySavings)
}

func TestProjectDeterministic(t *testing.T) {
	e := testEngine(t)
	a := e.Project(testInput())
	b := e.Project(testInput())
	assert.Equal(t, a, b)
}

func TestTotalSavings(t *testing.T) {
	e := testEngine(t)
	records := e.Project(testInput())

	var want float64
	for _, r := range records {
		want += r.MonthlySavings * 12
	}
	want = math.Round(want*100) / 100
	assert.Equal(t, want, TotalSavings(records))

	assert.Zero(t, TotalSavings(nil))
}
