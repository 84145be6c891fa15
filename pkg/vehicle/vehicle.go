// Package vehicle defines the immutable vehicle value objects used by the
// TCO engine: an electric and a diesel variant sharing a common capability
// surface for energy consumption, residual value, and registration.
package vehicle

// Kind discriminates the two supported drivetrain types. It doubles as the
// lookup key for per-vehicle-type cost bands in the scenario (maintenance,
// insurance).
type Kind string

const (
	KindElectric Kind = "electric"
	KindDiesel   Kind = "diesel"
)

// Energy unit strings reported by the consumption strategies. The energy
// cost component uses these to select the matching scenario price series.
const (
	UnitKWh   = "kWh"
	UnitLitre = "L"
)

// Vehicle is the capability set shared by both drivetrain variants.
// Implementations are plain value objects; all methods are read-only.
type Vehicle interface {
	// VehicleName returns the display name of the vehicle.
	VehicleName() string

	// Kind returns the drivetrain discriminator.
	Kind() Kind

	// Price returns the purchase price in AUD.
	Price() float64

	// LifespanYears returns the expected operational lifespan.
	LifespanYears() int

	// RegistrationBase returns the base annual registration cost in AUD.
	RegistrationBase() float64

	// Consumption returns the native-unit energy use for a distance in km
	// (kWh for electric, litres for diesel).
	Consumption(distanceKm float64) float64

	// EnergyUnit returns the physical unit of Consumption's result.
	EnergyUnit() string

	// ResidualValue returns the estimated resale value in AUD at the given
	// age in years.
	ResidualValue(ageYears float64) float64
}

// Electric is a battery-electric vehicle.
type Electric struct {
	Name             string  `yaml:"name" json:"name"`
	PurchasePrice    float64 `yaml:"purchase_price" json:"purchase_price"`
	Lifespan         int     `yaml:"lifespan_years" json:"lifespan_years"`
	RegistrationCost float64 `yaml:"registration_base_cost" json:"registration_base_cost"`

	// ResidualValueCurve maps vehicle age in years to the residual value as
	// a fraction of purchase price. Sparse; interpolated between points.
	ResidualValueCurve map[int]float64 `yaml:"residual_value_curve" json:"residual_value_curve"`

	BatteryCapacityKWh   float64 `yaml:"battery_capacity_kwh" json:"battery_capacity_kwh"`
	ConsumptionKWhPerKm  float64 `yaml:"energy_consumption_kwh_per_km" json:"energy_consumption_kwh_per_km"`
	BatteryWarrantyYears int     `yaml:"battery_warranty_years" json:"battery_warranty_years"`
	CycleLife            int     `yaml:"battery_cycle_life" json:"battery_cycle_life"`
	DepthOfDischarge     float64 `yaml:"depth_of_discharge" json:"depth_of_discharge"`
	ChargingEfficiency   float64 `yaml:"charging_efficiency" json:"charging_efficiency"`

	// BatteryCostProjection maps calendar year to AUD/kWh pack cost. Takes
	// priority over scenario-level and default projections when present.
	BatteryCostProjection map[int]float64 `yaml:"battery_cost_projection" json:"battery_cost_projection"`
}

func (e *Electric) VehicleName() string       { return e.Name }
func (e *Electric) Kind() Kind                { return KindElectric }
func (e *Electric) Price() float64            { return e.PurchasePrice }
func (e *Electric) LifespanYears() int        { return e.Lifespan }
func (e *Electric) RegistrationBase() float64 { return e.RegistrationCost }

// Consumption returns electricity drawn at the wheel in kWh.
func (e *Electric) Consumption(distanceKm float64) float64 {
	return distanceKm * e.ConsumptionKWhPerKm
}

func (e *Electric) EnergyUnit() string { return UnitKWh }

// ResidualValue interpolates the residual curve at the given age.
func (e *Electric) ResidualValue(ageYears float64) float64 {
	return e.PurchasePrice * residualFraction(e.ResidualValueCurve, ageYears, e.Lifespan)
}

// Diesel is a conventional diesel vehicle.
type Diesel struct {
	Name             string  `yaml:"name" json:"name"`
	PurchasePrice    float64 `yaml:"purchase_price" json:"purchase_price"`
	Lifespan         int     `yaml:"lifespan_years" json:"lifespan_years"`
	RegistrationCost float64 `yaml:"registration_base_cost" json:"registration_base_cost"`

	ResidualValueCurve map[int]float64 `yaml:"residual_value_curve" json:"residual_value_curve"`

	FuelConsumptionLPer100Km float64 `yaml:"fuel_consumption_l_per_100km" json:"fuel_consumption_l_per_100km"`

	// CO2EmissionFactor is kg CO2e emitted per litre of diesel burned.
	CO2EmissionFactor float64 `yaml:"co2_emission_factor_kg_per_l" json:"co2_emission_factor_kg_per_l"`
}

func (d *Diesel) VehicleName() string       { return d.Name }
func (d *Diesel) Kind() Kind                { return KindDiesel }
func (d *Diesel) Price() float64            { return d.PurchasePrice }
func (d *Diesel) LifespanYears() int        { return d.Lifespan }
func (d *Diesel) RegistrationBase() float64 { return d.RegistrationCost }

// Consumption returns diesel burned in litres.
func (d *Diesel) Consumption(distanceKm float64) float64 {
	return distanceKm * d.FuelConsumptionLPer100Km / 100.0
}

func (d *Diesel) EnergyUnit() string { return UnitLitre }

func (d *Diesel) ResidualValue(ageYears float64) float64 {
	return d.PurchasePrice * residualFraction(d.ResidualValueCurve, ageYears, d.Lifespan)
}
