package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levesol/solarproposal/pkg/proposal"
	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/types"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func testProposal(t *testing.T) *types.Proposal {
	ref, err := refdata.Default()
	require.NoError(t, err)
	p, err := proposal.New(ref).Build(context.Background(), types.ProposalRequest{
		Client: types.ClientInfo{
			Name:     "Associação São João",
			Document: "12.345.678/0001-00",
			Address:  "Avenida Brasil, 1500",
			City:     "Bauru-SP",
			Phone:    "14 99999-9999",
		},
		Consumption: types.ConsumptionInput{MonthlyKWH: 1000},
		ServiceType: "two_phase",
	})
	require.NoError(t, err)
	return p
}

func TestRender(t *testing.T) {
	r := New("LEVESOL", "Energia Solar Fotovoltaica")
	p := testProposal(t)

	b, err := r.Render(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "output is not a PDF")
	// a four-page document with three charts should not be tiny
	assert.Greater(t, len(b), 10000)
}

func TestCharts(t *testing.T) {
	p := testProposal(t)

	for name, fn := range map[string]func(*types.Proposal) ([]byte, error){
		"payback":   paybackChart,
		"bills":     billsChart,
		"firstYear": firstYearChart,
	} {
		t.Run(name, func(t *testing.T) {
			b, err := fn(p)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, pngHeader), "output is not a PNG")
		})
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatBRL(0))
	assert.Equal(t, "R$ 14,75", formatBRL(14.75))
	assert.Equal(t, "R$ 1.234,56", formatBRL(1234.56))
	assert.Equal(t, "R$ 25.725,00", formatBRL(25725))
	assert.Equal(t, "R$ 1.000.000,00", formatBRL(1e6))
	assert.Equal(t, "-R$ 320,10", formatBRL(-320.10))
}

