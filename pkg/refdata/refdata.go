// Package refdata holds the immutable reference dataset the engines are
// built on: module characteristics, tariff components, price bands, the
// inverter catalog and the regulatory compensation schedule. The dataset is
// loaded once at startup and injected into the engines; nothing mutates it
// afterwards.
package refdata

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/levenlabs/go-lflag"
	"github.com/levesol/solarproposal/pkg/log"
	"github.com/levesol/solarproposal/pkg/types"
)

//go:embed default.json
var defaultJSON []byte

// ModuleSpec describes the PV module assumed by the sizing formulas.
type ModuleSpec struct {
	Watts      float64 `json:"watts"`
	AreaM2     float64 `json:"areaM2"`
	Efficiency float64 `json:"efficiency"`
}

// SystemParams are the system-level sizing and projection constants.
type SystemParams struct {
	// LossFraction is the overall system loss (soiling, wiring, inverter).
	LossFraction float64 `json:"lossFraction"`
	// AnnualTariffEscalation compounds the tariff year over year.
	AnnualTariffEscalation float64 `json:"annualTariffEscalation"`
	// ClearanceFactor multiplies module footprint into required roof area.
	ClearanceFactor float64 `json:"clearanceFactor"`
	// InverterSizingRatio is the DC:AC oversizing convention used to pick an
	// inverter (target AC power = system kWp / ratio).
	InverterSizingRatio float64 `json:"inverterSizingRatio"`
}

// Tariff is the regulated energy price split into its two components, both
// in currency per kWh before taxes.
type Tariff struct {
	DistributionPerKWH float64 `json:"distributionPerKWH"`
	EnergyPerKWH       float64 `json:"energyPerKWH"`
}

// PriceBand prices a system in a half-open power interval
// [MinKWP, MaxKWP). A band marked OutOfRange is authored to reject systems
// the installer does not sell at a per-kWp rate.
type PriceBand struct {
	MinKWP      float64 `json:"minKWP"`
	MaxKWP      float64 `json:"maxKWP"`
	PricePerKWP float64 `json:"pricePerKWP,omitempty"`
	OutOfRange  bool    `json:"outOfRange,omitempty"`
}

// Set is the complete reference dataset.
type Set struct {
	ProjectionStartYear int `json:"projectionStartYear"`
	ProjectionYears     int `json:"projectionYears"`

	Module ModuleSpec   `json:"module"`
	System SystemParams `json:"system"`
	Tariff Tariff       `json:"tariff"`

	AvailabilityKWH        map[types.ServiceType]int `json:"availabilityKWH"`
	DefaultAvailabilityKWH int                       `json:"defaultAvailabilityKWH"`

	// CompensationSchedule is the legal phase-in of self-generation credit:
	// the fraction of generation credited in each early year. Years absent
	// from the table (including year 5 onwards, zero and negative years)
	// compensate in full. This is regulatory data, reproduced from
	// configuration, never derived.
	CompensationSchedule map[int]float64 `json:"compensationSchedule"`

	PriceBands []PriceBand                  `json:"priceBands"`
	Inverters  []types.InverterCatalogEntry `json:"inverters"`
}

// Configured registers the reference-data flags and returns a Set that is
// populated once flags are parsed. A load or validation failure at startup is
// fatal.
func Configured() *Set {
	s := &Set{}
	path := lflag.String("reference-data", "", "path to a reference data JSON file (defaults to the embedded dataset)")

	lflag.Do(func() {
		loaded, err := Load(*path)
		if err != nil {
			log.Ctx(context.Background()).Error("failed to load reference data", slog.String("path", *path), slog.Any("error", err))
			os.Exit(1)
		}
		*s = *loaded
	})

	return s
}

// Load reads and validates a reference dataset from path, or the embedded
// default dataset when path is empty.
func Load(path string) (*Set, error) {
	if path == "" {
		return Parse(defaultJSON)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	return Parse(b)
}

// Default returns the embedded reference dataset.
func Default() (*Set, error) {
	return Parse(defaultJSON)
}

// Parse unmarshals and validates a reference dataset. The inverter catalog is
// sorted descending by rated power so selection can scan it from the back.
func Parse(b []byte) (*Set, error) {
	var s Set
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	sort.SliceStable(s.Inverters, func(i, j int) bool {
		return s.Inverters[i].PowerKW > s.Inverters[j].PowerKW
	})
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reference data: %w", err)
	}
	return &s, nil
}

// Validate enforces the dataset's integrity invariants. Band contiguity is a
// data-authoring contract, checked here once rather than at every lookup.
func (s *Set) Validate() error {
	if s.ProjectionStartYear < 2000 {
		return fmt.Errorf("projectionStartYear %d is not a plausible year", s.ProjectionStartYear)
	}
	if s.ProjectionYears <= 0 {
		return fmt.Errorf("projectionYears must be positive, got %d", s.ProjectionYears)
	}
	if s.Module.Watts <= 0 || s.Module.AreaM2 <= 0 || s.Module.Efficiency <= 0 || s.Module.Efficiency > 1 {
		return fmt.Errorf("module spec out of range: %+v", s.Module)
	}
	if s.System.LossFraction < 0 || s.System.LossFraction >= 1 {
		return fmt.Errorf("lossFraction must be in [0, 1), got %v", s.System.LossFraction)
	}
	if s.System.AnnualTariffEscalation < 0 || s.System.AnnualTariffEscalation >= 1 {
		return fmt.Errorf("annualTariffEscalation must be in [0, 1), got %v", s.System.AnnualTariffEscalation)
	}
	if s.System.ClearanceFactor < 1 {
		return fmt.Errorf("clearanceFactor must be at least 1, got %v", s.System.ClearanceFactor)
	}
	if s.System.InverterSizingRatio <= 0 {
		return fmt.Errorf("inverterSizingRatio must be positive, got %v", s.System.InverterSizingRatio)
	}
	if s.Tariff.DistributionPerKWH <= 0 || s.Tariff.EnergyPerKWH <= 0 {
		return fmt.Errorf("tariff components must be positive: %+v", s.Tariff)
	}
	if s.DefaultAvailabilityKWH <= 0 {
		return fmt.Errorf("defaultAvailabilityKWH must be positive, got %d", s.DefaultAvailabilityKWH)
	}
	for st, kwh := range s.AvailabilityKWH {
		if kwh <= 0 {
			return fmt.Errorf("availability for %s must be positive, got %d", st, kwh)
		}
	}
	for year, frac := range s.CompensationSchedule {
		if year < 1 {
			return fmt.Errorf("compensation schedule year %d must be at least 1", year)
		}
		if frac <= 0 || frac > 1 {
			return fmt.Errorf("compensation fraction for year %d must be in (0, 1], got %v", year, frac)
		}
	}
	if len(s.Inverters) == 0 {
		return fmt.Errorf("inverter catalog is empty")
	}
	for _, inv := range s.Inverters {
		if inv.Name == "" || inv.PowerKW <= 0 {
			return fmt.Errorf("invalid inverter catalog entry: %+v", inv)
		}
	}
	if len(s.PriceBands) == 0 {
		return fmt.Errorf("price band table is empty")
	}
	for i, b := range s.PriceBands {
		if b.MaxKWP <= b.MinKWP {
			return fmt.Errorf("price band %d has empty range [%v, %v)", i, b.MinKWP, b.MaxKWP)
		}
		if !b.OutOfRange && b.PricePerKWP <= 0 {
			return fmt.Errorf("price band %d must have a positive pricePerKWP or be marked outOfRange", i)
		}
		if i > 0 && b.MinKWP != s.PriceBands[i-1].MaxKWP {
			return fmt.Errorf("price band %d does not start where band %d ends (%v != %v)", i, i-1, b.MinKWP, s.PriceBands[i-1].MaxKWP)
		}
	}
	return nil
}

// Availability returns the minimum billable kWh for the service type, falling
// back to the default for unrecognized types.
func (s *Set) Availability(st types.ServiceType) int {
	if kwh, ok := s.AvailabilityKWH[st]; ok {
		return kwh
	}
	return s.DefaultAvailabilityKWH
}
