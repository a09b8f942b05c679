package types

// TaxRates are the taxes applied "inside" the energy price (gross-up): the
// billed rate is the base tariff divided by (1 - Total()).
type TaxRates struct {
	ICMS   float64 `json:"icms"`
	PIS    float64 `json:"pis"`
	COFINS float64 `json:"cofins"`
}

// Total returns the combined tax fraction.
func (t TaxRates) Total() float64 {
	return t.ICMS + t.PIS + t.COFINS
}

// YearlyBillingRecord is one year of the billing projection. MonthlySavings
// can be negative in early years while the compensation schedule is still
// ramping up.
type YearlyBillingRecord struct {
	CalendarYear      int     `json:"calendarYear"`
	BillWithoutSystem float64 `json:"billWithoutSystem"`
	BillWithSystem    float64 `json:"billWithSystem"`
	MonthlySavings    float64 `json:"monthlySavings"`
}

// FinancialSummary is the headline financial outcome of a proposal.
type FinancialSummary struct {
	InvestmentTotal         float64 `json:"investmentTotal"`
	FirstYearBillWithout    float64 `json:"firstYearBillWithout"`
	FirstYearBillWith       float64 `json:"firstYearBillWith"`
	FirstYearMonthlySavings float64 `json:"firstYearMonthlySavings"`
	TotalSavings            float64 `json:"totalSavings"`
}
