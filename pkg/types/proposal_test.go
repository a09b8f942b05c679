package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	tests := []struct {
		in      string
		want    ServiceType
		wantErr bool
	}{
		{"two_phase", ServiceTwoPhase, false},
		{"TWO_PHASE", ServiceTwoPhase, false},
		{"single-phase", ServiceSinglePhase, false},
		{"Trifasico", ServiceThreePhase, false},
		{"bifásico", ServiceTwoPhase, false},
		{" monofasico ", ServiceSinglePhase, false},
		{"four_phase", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseServiceType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTaxRatesTotal(t *testing.T) {
	taxes := TaxRates{ICMS: 0.18, PIS: 0.0099, COFINS: 0.0463}
	assert.InDelta(t, 0.2362, taxes.Total(), 1e-9)
	assert.Zero(t, TaxRates{}.Total())
}

func validRequest() ProposalRequest {
	return ProposalRequest{
		Client:      ClientInfo{Name: "João da Silva"},
		Consumption: ConsumptionInput{MonthlyKWH: 1000},
		ServiceType: "two_phase",
	}
}

func TestProposalRequestValidate(t *testing.T) {
	assert.NoError(t, validRequest().Validate())

	t.Run("MissingClientName", func(t *testing.T) {
		req := validRequest()
		req.Client.Name = ""
		assert.Error(t, req.Validate())
	})

	t.Run("UnknownServiceType", func(t *testing.T) {
		req := validRequest()
		req.ServiceType = "polyphase"
		assert.Error(t, req.Validate())
	})

	t.Run("BothConsumptionForms", func(t *testing.T) {
		req := validRequest()
		req.Consumption.HistoryKWH = []float64{500, 600}
		assert.Error(t, req.Validate())
	})

	t.Run("NeitherConsumptionForm", func(t *testing.T) {
		req := validRequest()
		req.Consumption = ConsumptionInput{}
		assert.Error(t, req.Validate())
	})

	t.Run("NegativeSingleValue", func(t *testing.T) {
		req := validRequest()
		req.Consumption.MonthlyKWH = -10
		assert.Error(t, req.Validate())
	})

	t.Run("HistoryTooLong", func(t *testing.T) {
		req := validRequest()
		req.Consumption.MonthlyKWH = 0
		req.Consumption.HistoryKWH = make([]float64, 14)
		for i := range req.Consumption.HistoryKWH {
			req.Consumption.HistoryKWH[i] = 100
		}
		assert.Error(t, req.Validate())
	})

	t.Run("HistoryAtLimit", func(t *testing.T) {
		req := validRequest()
		req.Consumption.MonthlyKWH = 0
		req.Consumption.HistoryKWH = make([]float64, 13)
		for i := range req.Consumption.HistoryKWH {
			req.Consumption.HistoryKWH[i] = 100
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("TaxesOverOne", func(t *testing.T) {
		req := validRequest()
		req.Taxes = TaxRates{ICMS: 0.9, PIS: 0.2}
		assert.Error(t, req.Validate())
	})
}

func TestProposalRequestWithDefaults(t *testing.T) {
	req := validRequest().WithDefaults(700)
	assert.Equal(t, DefaultIrradianceKWHM2Day, req.IrradianceKWHM2Day)
	assert.Equal(t, 700.0, req.ModuleWatts)
	assert.Equal(t, TaxRates{ICMS: DefaultICMS, PIS: DefaultPIS, COFINS: DefaultCOFINS}, req.Taxes)
	assert.Equal(t, DefaultPublicLightingFee, req.PublicLightingFee)

	// explicit overrides survive
	custom := validRequest()
	custom.IrradianceKWHM2Day = 4.2
	custom.ModuleWatts = 550
	custom.Taxes = TaxRates{ICMS: 0.12}
	custom.PublicLightingFee = 9.9
	out := custom.WithDefaults(700)
	assert.Equal(t, 4.2, out.IrradianceKWHM2Day)
	assert.Equal(t, 550.0, out.ModuleWatts)
	assert.Equal(t, TaxRates{ICMS: 0.12}, out.Taxes)
	assert.Equal(t, 9.9, out.PublicLightingFee)
}
