package types

// InverterCatalogEntry is a single inverter model available for selection.
type InverterCatalogEntry struct {
	Name    string  `json:"name"`
	PowerKW float64 `json:"powerKW"`
}

// SizingResult describes the PV system sized for a consumption profile.
// Generation figures use a fixed 30-day month, matching the sizing formula.
type SizingResult struct {
	ModuleCount          int                  `json:"moduleCount"`
	ModuleWatts          float64              `json:"moduleWatts"`
	SystemPowerKWP       float64              `json:"systemPowerKWP"`
	Inverter             InverterCatalogEntry `json:"inverter"`
	RequiredAreaM2       float64              `json:"requiredAreaM2"`
	DailyGenerationKWH   float64              `json:"dailyGenerationKWH"`
	MonthlyGenerationKWH float64              `json:"monthlyGenerationKWH"`
	AnnualGenerationKWH  float64              `json:"annualGenerationKWH"`
	// SpecificYieldKWHPerKWP is the annual energy generated per unit of
	// installed nameplate power, a standard PV performance metric.
	SpecificYieldKWHPerKWP float64 `json:"specificYieldKWHPerKWP"`
	AvailabilityKWH        int     `json:"availabilityKWH"`
}
