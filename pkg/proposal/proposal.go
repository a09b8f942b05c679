// Package proposal assembles a complete proposal from the sizing and
// financial engines.
package proposal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/levesol/solarproposal/pkg/financial"
	"github.com/levesol/solarproposal/pkg/log"
	"github.com/levesol/solarproposal/pkg/refdata"
	"github.com/levesol/solarproposal/pkg/sizing"
	"github.com/levesol/solarproposal/pkg/types"
)

// Assembler runs the sizing then financial pipeline and combines the output
// with the client identity into a Proposal.
type Assembler struct {
	ref       *refdata.Set
	sizing    *sizing.Engine
	financial *financial.Engine

	// now is swapped out in tests to pin the proposal number.
	now func() time.Time
}

// New returns an assembler bound to the given reference data.
func New(ref *refdata.Set) *Assembler {
	return &Assembler{
		ref:       ref,
		sizing:    sizing.New(ref),
		financial: financial.New(ref),
		now:       time.Now,
	}
}

// Build computes a full proposal for the request. The request must already be
// validated and defaulted; Build applies defaults itself so the offline CLI
// can call it directly, but it does not re-validate shapes the boundary owns.
func (a *Assembler) Build(ctx context.Context, req types.ProposalRequest) (*types.Proposal, error) {
	req = req.WithDefaults(a.ref.Module.Watts)

	st, err := types.ParseServiceType(req.ServiceType)
	if err != nil {
		return nil, err
	}

	profile, err := a.sizing.NormalizeConsumption(req.Consumption)
	if err != nil {
		return nil, err
	}

	system := a.sizing.Size(profile, st, req.IrradianceKWHM2Day, req.ModuleWatts)

	investment, err := a.sizing.SystemPrice(system.SystemPowerKWP)
	if err != nil {
		return nil, err
	}

	records := a.financial.Project(financial.BillingInput{
		MonthlyConsumptionKWH: profile.AverageMonthlyKWH,
		MonthlyGenerationKWH:  system.MonthlyGenerationKWH,
		AvailabilityKWH:       system.AvailabilityKWH,
		Taxes:                 req.Taxes,
		PublicLightingFee:     req.PublicLightingFee,
	})

	firstYear := records[0]
	p := &types.Proposal{
		ProposalNumber: a.proposalNumber(),
		Client:         req.Client,
		ServiceType:    st,
		Consumption:    profile,
		System:         system,
		Financial: types.FinancialSummary{
			InvestmentTotal:         investment,
			FirstYearBillWithout:    firstYear.BillWithoutSystem,
			FirstYearBillWith:       firstYear.BillWithSystem,
			FirstYearMonthlySavings: firstYear.MonthlySavings,
			TotalSavings:            financial.TotalSavings(records),
		},
		YearlyProjection: records,
	}

	log.Ctx(ctx).DebugContext(ctx, "proposal assembled",
		slog.String("proposalNumber", p.ProposalNumber),
		slog.Int("moduleCount", system.ModuleCount),
		slog.Float64("systemPowerKWP", system.SystemPowerKWP),
		slog.Float64("investment", investment))

	return p, nil
}

// proposalNumber follows the DDMMYY/YYYY convention used on issued proposals.
func (a *Assembler) proposalNumber() string {
	now := a.now()
	return fmt.Sprintf("%s/%d", now.Format("020106"), now.Year())
}
