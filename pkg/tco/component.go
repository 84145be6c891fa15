// Package tco implements the valuation engine: per-year cost components,
// the annual calculation loop, discounting, and the aggregate metrics
// (total TCO, levelized cost of driving, cost-parity year).
package tco

import (
	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/vehicle"
)

// Component is the uniform per-year cost contract. Implementations are
// stateless; one-shot trigger state lives in the caller-owned RunState so
// the same component values are safe across independent runs.
//
// year is the calendar year, index the zero-based position within the
// analysis horizon, and cumulativeKm the mileage accumulated before the
// start of this year. Costs are AUD and may be negative (residual value).
type Component interface {
	Name() string
	Cost(year int, v vehicle.Vehicle, s *scenario.Scenario, index int, cumulativeKm float64, run *RunState) (float64, error)
}

// RunState carries the one-shot trigger state for a single vehicle's run.
// A fresh RunState must be used per run; it must not be shared across
// concurrent scenario evaluations.
type RunState struct {
	// infrastructureCharged marks the one-off charger capital cost as spent.
	infrastructureCharged bool

	// batteryDecided marks the replacement year as resolved for this run;
	// batteryYear is the chosen zero-based index, -1 when no replacement
	// occurs within the horizon.
	batteryDecided bool
	batteryYear    int

	// batteryCharged marks the replacement cost as spent.
	batteryCharged bool
}

// NewRunState returns a fresh trigger state for one vehicle's run.
func NewRunState() *RunState {
	return &RunState{batteryYear: -1}
}

// applicableComponents selects the components that apply to the given
// vehicle under the scenario's flags. Residual value stays last so the
// credit lands in the final column.
func applicableComponents(v vehicle.Vehicle, s *scenario.Scenario, batteryDefaults map[int]float64) []Component {
	electric := v.Kind() == vehicle.KindElectric

	components := []Component{
		acquisitionCost{},
		energyCost{},
		maintenanceCost{},
	}
	if electric {
		components = append(components, infrastructureCost{})
		if s.BatteryReplacement.Enabled {
			components = append(components, batteryReplacementCost{defaults: batteryDefaults})
		}
	}
	components = append(components, insuranceCost{}, registrationCost{})
	if !electric && s.IncludeCarbonTax {
		components = append(components, carbonTaxCost{})
	}
	if s.IncludeRoadUserCharge {
		components = append(components, roadUserChargeCost{})
	}
	return append(components, residualValueCredit{})
}
