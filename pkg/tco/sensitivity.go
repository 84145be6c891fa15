package tco

import (
	"fmt"

	"github.com/fleetscope/evtco/pkg/scenario"
)

// SensitivityDelta reports how the headline totals move when one input
// is perturbed from its base value.
type SensitivityDelta struct {
	Parameter     string  `json:"parameter"`
	BaseValue     float64 `json:"base_value"`
	ShiftedValue  float64 `json:"shifted_value"`
	ElectricDelta float64 `json:"electric_delta"`
	DieselDelta   float64 `json:"diesel_delta"`
	SavingsDelta  float64 `json:"savings_delta"`
}

// DiscountRateSensitivity recomputes the scenario at the discount rate
// shifted by +/- step and reports the movement in total cost of
// ownership for each shift.
func (c *Calculator) DiscountRateSensitivity(s *scenario.Scenario, step float64) ([]SensitivityDelta, error) {
	base := c.Calculate(s)
	if base.Error != "" {
		return nil, fmt.Errorf("base case failed: %s", base.Error)
	}

	deltas := make([]SensitivityDelta, 0, 2)
	for _, shift := range []float64{-step, step} {
		rate := s.Economics.DiscountRate + shift
		if rate < 0 {
			rate = 0
		}
		shifted, err := s.With(func(m *scenario.Scenario) {
			m.Economics.DiscountRate = rate
		})
		if err != nil {
			return nil, err
		}
		res := c.Calculate(shifted)
		if res.Error != "" {
			return nil, fmt.Errorf("shifted case (discount rate %.4f) failed: %s", rate, res.Error)
		}
		deltas = append(deltas, SensitivityDelta{
			Parameter:     "discount_rate",
			BaseValue:     s.Economics.DiscountRate,
			ShiftedValue:  rate,
			ElectricDelta: res.ElectricTotalTCO - base.ElectricTotalTCO,
			DieselDelta:   res.DieselTotalTCO - base.DieselTotalTCO,
			SavingsDelta:  res.Savings() - base.Savings(),
		})
	}
	return deltas, nil
}
