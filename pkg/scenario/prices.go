package scenario

import (
	"fmt"
	"math"
	"time"
)

// Keys for the pre-computed annual price series.
const (
	PriceElectricity    = "electricity"     // AUD/kWh
	PriceDiesel         = "diesel"          // AUD/L
	PriceCarbonTax      = "carbon_tax"      // AUD/tonne CO2e
	PriceRoadUserCharge = "road_user_charge" // AUD/km
)

// Prepare derives the annual price series from the configured bases and
// escalation rates, one value per analysis year:
//
//	price[i] = base * (1+escalation)^i
//
// It also fills StartYear with the current calendar year when unset.
// Prepare must be called once after construction and again only via With;
// the scenario is read-only afterwards.
func (s *Scenario) Prepare() error {
	if s.AnalysisYears <= 0 {
		return fmt.Errorf("scenario %q: analysis_years must be positive, got %d", s.Name, s.AnalysisYears)
	}
	if s.StartYear == 0 {
		s.StartYear = time.Now().Year()
	}

	s.prices = map[string][]float64{
		PriceElectricity:    escalate(s.Prices.Electricity, s.AnalysisYears),
		PriceDiesel:         escalate(s.Prices.Diesel, s.AnalysisYears),
		PriceCarbonTax:      escalate(s.Prices.CarbonTax, s.AnalysisYears),
		PriceRoadUserCharge: escalate(s.Prices.RoadUserCharge, s.AnalysisYears),
	}
	return nil
}

func escalate(basis PriceBasis, years int) []float64 {
	series := make([]float64, years)
	for i := 0; i < years; i++ {
		series[i] = basis.Base * math.Pow(1+basis.Escalation, float64(i))
	}
	return series
}

// AnnualPrice returns the pre-computed price for a series key at a zero-based
// year index. The second return is false for an unknown key, an out-of-range
// index, or a scenario that was never prepared.
func (s *Scenario) AnnualPrice(key string, yearIndex int) (float64, bool) {
	series, ok := s.prices[key]
	if !ok {
		return 0, false
	}
	if yearIndex < 0 || yearIndex >= len(series) {
		return 0, false
	}
	return series[yearIndex], true
}

// CalendarYear maps a zero-based year index to its calendar year.
func (s *Scenario) CalendarYear(yearIndex int) int {
	return s.StartYear + yearIndex
}

// With returns a new prepared scenario derived from s by applying mods to a
// deep copy. The receiver is never mutated; the copy's price series are
// re-derived after modification.
func (s *Scenario) With(mods func(*Scenario)) (*Scenario, error) {
	dup := s.clone()
	if mods != nil {
		mods(dup)
	}
	if err := dup.Prepare(); err != nil {
		return nil, fmt.Errorf("deriving scenario from %q: %w", s.Name, err)
	}
	return dup, nil
}

func (s *Scenario) clone() *Scenario {
	dup := *s
	dup.prices = nil

	dup.Maintenance = make(map[string]MaintenanceBand, len(s.Maintenance))
	for k, v := range s.Maintenance {
		dup.Maintenance[k] = v
	}
	dup.Insurance = make(map[string]InsurancePolicy, len(s.Insurance))
	for k, v := range s.Insurance {
		dup.Insurance[k] = v
	}
	dup.BatteryCostProjection = copyIntMap(s.BatteryCostProjection)
	dup.ElectricVehicle.ResidualValueCurve = copyIntMap(s.ElectricVehicle.ResidualValueCurve)
	dup.ElectricVehicle.BatteryCostProjection = copyIntMap(s.ElectricVehicle.BatteryCostProjection)
	dup.DieselVehicle.ResidualValueCurve = copyIntMap(s.DieselVehicle.ResidualValueCurve)

	if s.BatteryReplacement.ForceYear != nil {
		y := *s.BatteryReplacement.ForceYear
		dup.BatteryReplacement.ForceYear = &y
	}
	return &dup
}

func copyIntMap(m map[int]float64) map[int]float64 {
	if m == nil {
		return nil
	}
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
