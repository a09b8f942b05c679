package sizing

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceBandNotFound is returned when no band covers the system power.
	ErrPriceBandNotFound = errors.New("no price band covers the system power")
	// ErrOutOfPriceRange is returned when the matching band is authored as
	// not sellable at a per-kWp rate.
	ErrOutOfPriceRange = errors.New("system power is outside the priced range")
)

// SystemPrice returns the investment price for a system via a linear scan of
// the price band table. Band upper bounds are exclusive: a power landing
// exactly on a band's maxKWP belongs to the next band.
func (e *Engine) SystemPrice(systemPowerKWP float64) (float64, error) {
	for _, band := range e.ref.PriceBands {
		if systemPowerKWP < band.MinKWP || systemPowerKWP >= band.MaxKWP {
			continue
		}
		if band.OutOfRange {
			return 0, fmt.Errorf("%.2f kWp: %w", systemPowerKWP, ErrOutOfPriceRange)
		}
		return round2(systemPowerKWP * band.PricePerKWP), nil
	}
	return 0, fmt.Errorf("%.2f kWp: %w", systemPowerKWP, ErrPriceBandNotFound)
}
