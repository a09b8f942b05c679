package types

import (
	"errors"
	"fmt"
)

// Default values applied to a ProposalRequest when the corresponding field is
// left at zero. Tax defaults are the São Paulo residential rates.
const (
	DefaultIrradianceKWHM2Day = 5.0
	DefaultICMS               = 0.18
	DefaultPIS                = 0.0099
	DefaultCOFINS             = 0.0463
	DefaultPublicLightingFee  = 14.75
)

// ClientInfo identifies the customer on the proposal. It is passed through to
// the rendered document untouched.
type ClientInfo struct {
	Name     string `json:"name"`
	Document string `json:"document"` // CPF or CNPJ
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone,omitempty"`
}

// ProposalRequest is the payload accepted by the proposal endpoint. Zero
// values for the override fields mean "use the default".
type ProposalRequest struct {
	Client             ClientInfo       `json:"client"`
	Consumption        ConsumptionInput `json:"consumption"`
	ServiceType        string           `json:"serviceType"`
	IrradianceKWHM2Day float64          `json:"irradianceKWHM2Day,omitempty"`
	ModuleWatts        float64          `json:"moduleWatts,omitempty"`
	Taxes              TaxRates         `json:"taxes"`
	PublicLightingFee  float64          `json:"publicLightingFee,omitempty"`
	IncludePDF         bool             `json:"includePDF,omitempty"`
}

// WithDefaults returns a copy of the request with zero-valued override fields
// replaced by their defaults. The module wattage default comes from reference
// data, so it is supplied by the caller.
func (r ProposalRequest) WithDefaults(defaultModuleWatts float64) ProposalRequest {
	if r.IrradianceKWHM2Day == 0 {
		r.IrradianceKWHM2Day = DefaultIrradianceKWHM2Day
	}
	if r.ModuleWatts == 0 {
		r.ModuleWatts = defaultModuleWatts
	}
	if r.Taxes == (TaxRates{}) {
		r.Taxes = TaxRates{ICMS: DefaultICMS, PIS: DefaultPIS, COFINS: DefaultCOFINS}
	}
	if r.PublicLightingFee == 0 {
		r.PublicLightingFee = DefaultPublicLightingFee
	}
	return r
}

// Validate checks the request shape before it enters the engines. The engines
// assume a single consumption value has already been checked to be positive.
func (r ProposalRequest) Validate() error {
	if r.Client.Name == "" {
		return errors.New("client name is required")
	}
	if _, err := ParseServiceType(r.ServiceType); err != nil {
		return err
	}
	hasSingle := r.Consumption.MonthlyKWH != 0
	hasHistory := len(r.Consumption.HistoryKWH) > 0
	if hasSingle == hasHistory {
		return errors.New("consumption requires exactly one of monthlyKWH or historyKWH")
	}
	if hasSingle && r.Consumption.MonthlyKWH <= 0 {
		return errors.New("monthlyKWH must be greater than zero")
	}
	if len(r.Consumption.HistoryKWH) > MaxConsumptionHistoryMonths {
		return fmt.Errorf("historyKWH accepts at most %d months", MaxConsumptionHistoryMonths)
	}
	if r.IrradianceKWHM2Day < 0 || r.ModuleWatts < 0 || r.PublicLightingFee < 0 {
		return errors.New("overrides must not be negative")
	}
	if t := r.Taxes.Total(); t < 0 || t >= 1 {
		return errors.New("combined tax rate must be in [0, 1)")
	}
	return nil
}

// Proposal is the fully assembled proposal returned to the caller and handed
// to the document renderer.
type Proposal struct {
	ProposalNumber   string                `json:"proposalNumber"`
	Client           ClientInfo            `json:"client"`
	ServiceType      ServiceType           `json:"serviceType"`
	Consumption      ConsumptionProfile    `json:"consumption"`
	System           SizingResult          `json:"system"`
	Financial        FinancialSummary      `json:"financial"`
	YearlyProjection []YearlyBillingRecord `json:"yearlyProjection"`
	PDFBase64        string                `json:"pdfBase64,omitempty"`
}
