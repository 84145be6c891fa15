package tco

import "errors"

// Configuration errors abort the calculation for the affected vehicle.
// Anything else raised by a component is treated as a soft per-cell failure:
// the cell is recorded as missing and the run continues.
var (
	// ErrUnsupportedFinancing reports a financing method the acquisition
	// component does not implement.
	ErrUnsupportedFinancing = errors.New("unsupported financing method")

	// ErrUnsupportedEnergyUnit reports a consumption unit with no matching
	// scenario price series.
	ErrUnsupportedEnergyUnit = errors.New("unsupported energy unit")

	// ErrPriceUnavailable reports a missing price series entry for a
	// requested year index.
	ErrPriceUnavailable = errors.New("price unavailable for year index")
)

// isConfigurationError reports whether err is a hard failure that must stop
// the vehicle's run rather than degrade to a missing cell.
func isConfigurationError(err error) bool {
	return errors.Is(err, ErrUnsupportedFinancing) ||
		errors.Is(err, ErrUnsupportedEnergyUnit) ||
		errors.Is(err, ErrPriceUnavailable)
}
