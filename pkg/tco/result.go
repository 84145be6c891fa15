package tco

// Result is the complete outcome of a two-vehicle cost comparison.
// When Error is non-empty the remaining fields hold whatever partial
// results were produced before the failure.
type Result struct {
	RunID         string `json:"run_id,omitempty"`
	ScenarioName  string `json:"scenario_name"`
	AnalysisYears int    `json:"analysis_years"`
	Error         string `json:"error,omitempty"`

	ElectricUndiscounted *CostTable `json:"electric_undiscounted,omitempty"`
	ElectricDiscounted   *CostTable `json:"electric_discounted,omitempty"`
	DieselUndiscounted   *CostTable `json:"diesel_undiscounted,omitempty"`
	DieselDiscounted     *CostTable `json:"diesel_discounted,omitempty"`

	ElectricTotalTCO float64 `json:"electric_total_tco"`
	DieselTotalTCO   float64 `json:"diesel_total_tco"`

	// Levelized cost of driving in $/km over the whole horizon; nil when
	// total distance is zero.
	ElectricLCOD *float64 `json:"electric_lcod,omitempty"`
	DieselLCOD   *float64 `json:"diesel_lcod,omitempty"`

	// First 1-based year where the electric cumulative undiscounted cost
	// is at or below diesel's; nil if parity is never reached.
	ParityYear *int `json:"parity_year,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Savings is the diesel total minus the electric total; positive means
// the electric vehicle is cheaper over the horizon.
func (r *Result) Savings() float64 {
	return r.DieselTotalTCO - r.ElectricTotalTCO
}
