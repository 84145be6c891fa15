// Package scenario defines the analysis scenario: the validated input
// aggregate holding economic and operational parameters, the two vehicles
// under comparison, and the escalating price series the cost components
// read from.
package scenario

import "github.com/fleetscope/evtco/pkg/vehicle"

// Financing methods accepted by the acquisition cost component.
const (
	FinancingCash = "cash"
	FinancingLoan = "loan"
)

// Scenario is the top-level analysis input. After Prepare it is treated as
// immutable; derive variants with With rather than mutating in place.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`

	// AnalysisYears is the analysis horizon in years.
	AnalysisYears int `yaml:"analysis_years" json:"analysis_years"`

	// StartYear is the first calendar year of the analysis. Zero means the
	// current year, filled in by Prepare.
	StartYear int `yaml:"start_year" json:"start_year"`

	Economics  Economics  `yaml:"economics" json:"economics"`
	Operations Operations `yaml:"operations" json:"operations"`
	Financing  Financing  `yaml:"financing" json:"financing"`

	ElectricVehicle vehicle.Electric `yaml:"electric_vehicle" json:"electric_vehicle"`
	DieselVehicle   vehicle.Diesel   `yaml:"diesel_vehicle" json:"diesel_vehicle"`

	// Prices carries the year-zero bases and escalation rates for the four
	// price series the components consume.
	Prices PriceBases `yaml:"prices" json:"prices"`

	Infrastructure Infrastructure `yaml:"infrastructure" json:"infrastructure"`

	// Maintenance holds per-vehicle-kind annual cost bands, keyed by
	// "electric" / "diesel".
	Maintenance map[string]MaintenanceBand `yaml:"maintenance" json:"maintenance"`

	// Insurance holds per-vehicle-kind insurance policies, keyed the same way.
	Insurance map[string]InsurancePolicy `yaml:"insurance" json:"insurance"`

	EscalationRates EscalationRates `yaml:"escalation_rates" json:"escalation_rates"`

	BatteryReplacement BatteryReplacement `yaml:"battery_replacement" json:"battery_replacement"`

	// BatteryCostProjection maps calendar year to AUD/kWh pack cost.
	// Consulted when the electric vehicle carries no projection of its own.
	BatteryCostProjection map[int]float64 `yaml:"battery_cost_projection" json:"battery_cost_projection"`

	IncludeCarbonTax      bool `yaml:"include_carbon_tax" json:"include_carbon_tax"`
	IncludeRoadUserCharge bool `yaml:"include_road_user_charge" json:"include_road_user_charge"`

	// prices holds the pre-computed annual series, keyed by the Price*
	// constants. Populated by Prepare.
	prices map[string][]float64
}

// Economics groups the discounting parameters.
type Economics struct {
	// DiscountRate is the real annual discount rate as a fraction
	// (0.05 for 5%).
	DiscountRate  float64 `yaml:"discount_rate" json:"discount_rate"`
	InflationRate float64 `yaml:"inflation_rate" json:"inflation_rate"`
}

// Operations groups the usage assumptions.
type Operations struct {
	// AnnualDistanceKm is the constant distance driven each analysis year.
	AnnualDistanceKm float64 `yaml:"annual_distance_km" json:"annual_distance_km"`
}

// Financing describes how the purchase price is paid.
type Financing struct {
	// Method is "cash" or "loan".
	Method string `yaml:"method" json:"method"`

	// DownPaymentRate is the fraction of the price paid up front under loan
	// financing.
	DownPaymentRate float64 `yaml:"down_payment_rate" json:"down_payment_rate"`
	TermYears       int     `yaml:"term_years" json:"term_years"`
	InterestRate    float64 `yaml:"interest_rate" json:"interest_rate"`
}

// PriceBases holds the year-zero base and escalation rate for each
// escalating price series.
type PriceBases struct {
	// Electricity is AUD/kWh.
	Electricity PriceBasis `yaml:"electricity" json:"electricity"`
	// Diesel is AUD/L.
	Diesel PriceBasis `yaml:"diesel" json:"diesel"`
	// CarbonTax is AUD/tonne CO2e.
	CarbonTax PriceBasis `yaml:"carbon_tax" json:"carbon_tax"`
	// RoadUserCharge is AUD/km.
	RoadUserCharge PriceBasis `yaml:"road_user_charge" json:"road_user_charge"`
}

// PriceBasis is a base price with a constant annual compounding escalation
// rate (0.02 for 2% per year).
type PriceBasis struct {
	Base       float64 `yaml:"base" json:"base"`
	Escalation float64 `yaml:"escalation" json:"escalation"`
}

// Infrastructure groups the home charger cost inputs (electric only).
type Infrastructure struct {
	ChargerHardwareCost float64 `yaml:"charger_hardware_cost" json:"charger_hardware_cost"`
	InstallationCost    float64 `yaml:"installation_cost" json:"installation_cost"`

	// MaintenanceRate is the annual maintenance cost as a fraction of the
	// hardware cost.
	MaintenanceRate float64 `yaml:"maintenance_rate" json:"maintenance_rate"`
	LifespanYears   int     `yaml:"lifespan_years" json:"lifespan_years"`
}

// MaintenanceBand is a min/max annual maintenance cost range; the
// maintenance strategy uses its midpoint as the base annual cost.
type MaintenanceBand struct {
	AnnualMin float64 `yaml:"annual_min" json:"annual_min"`
	AnnualMax float64 `yaml:"annual_max" json:"annual_max"`
}

// Base returns the band midpoint.
func (b MaintenanceBand) Base() float64 {
	return (b.AnnualMin + b.AnnualMax) / 2.0
}

// Insurance cost types.
const (
	InsuranceFixed          = "fixed"
	InsurancePercentOfValue = "percent_of_value"
)

// InsurancePolicy is either a fixed annual amount or a percentage of the
// vehicle's current residual value.
type InsurancePolicy struct {
	// Type is "fixed" or "percent_of_value".
	Type string `yaml:"type" json:"type"`

	// AnnualCost applies when Type is "fixed".
	AnnualCost float64 `yaml:"annual_cost" json:"annual_cost"`

	// RateOfValue applies when Type is "percent_of_value"; fraction of the
	// current residual value (0.015 for 1.5%).
	RateOfValue float64 `yaml:"rate_of_value" json:"rate_of_value"`
}

// EscalationRates groups the general annual cost increase rates applied
// inside the maintenance, insurance, and registration components.
type EscalationRates struct {
	Maintenance  float64 `yaml:"maintenance" json:"maintenance"`
	Insurance    float64 `yaml:"insurance" json:"insurance"`
	Registration float64 `yaml:"registration" json:"registration"`
}

// BatteryReplacement is the battery replacement policy.
type BatteryReplacement struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Threshold is the remaining-capacity fraction at or below which
	// replacement triggers.
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// ForceYear, when non-nil, forces replacement in that 1-based analysis
	// year regardless of degradation. Must be within the analysis horizon.
	ForceYear *int `yaml:"force_year" json:"force_year"`
}
