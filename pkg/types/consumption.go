package types

import (
	"fmt"
	"strings"
)

// ServiceType is the electrical service connection class of a customer.
// It determines the minimum billable consumption (availability) charged by
// the utility regardless of how much the PV system offsets.
type ServiceType string

const (
	ServiceSinglePhase ServiceType = "single_phase"
	ServiceTwoPhase    ServiceType = "two_phase"
	ServiceThreePhase  ServiceType = "three_phase"
)

// MaxConsumptionHistoryMonths is the maximum number of monthly readings
// accepted in a consumption history (a full year plus the bill in hand).
const MaxConsumptionHistoryMonths = 13

// ParseServiceType parses a service type string case-insensitively. The
// Portuguese names used on Brazilian energy bills are accepted as aliases.
func ParseServiceType(s string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single_phase", "single-phase", "monofasico", "monofásico":
		return ServiceSinglePhase, nil
	case "two_phase", "two-phase", "bifasico", "bifásico":
		return ServiceTwoPhase, nil
	case "three_phase", "three-phase", "trifasico", "trifásico":
		return ServiceThreePhase, nil
	}
	return "", fmt.Errorf("unknown service type: %s", s)
}

// ConsumptionInput is the consumption portion of a proposal request. Exactly
// one of MonthlyKWH (a single bill) or HistoryKWH (up to 13 monthly readings)
// must be set; the ambiguity is resolved at the boundary so the engines only
// ever see a ConsumptionProfile.
type ConsumptionInput struct {
	MonthlyKWH float64   `json:"monthlyKWH,omitempty"`
	HistoryKWH []float64 `json:"historyKWH,omitempty"`
}

// ConsumptionProfile holds the consumption statistics derived from a
// ConsumptionInput. Only readings greater than zero count toward the
// statistics; HistoryKWH preserves the raw input in the order it was given.
type ConsumptionProfile struct {
	AverageMonthlyKWH float64   `json:"averageMonthlyKWH"`
	MonthsReported    int       `json:"monthsReported"`
	HistoryKWH        []float64 `json:"historyKWH"`
	MinKWH            float64   `json:"minKWH"`
	MaxKWH            float64   `json:"maxKWH"`
	VariationPct      float64   `json:"variationPct"`
}
