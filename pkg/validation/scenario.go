package validation

import (
	"fmt"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/vehicle"
)

// ValidateScenario checks a parsed scenario for structural correctness and
// range violations. A scenario that produces errors must not be calculated.
func ValidateScenario(s *scenario.Scenario) *Report {
	r := NewReport()

	validateHorizon(s, r)
	validateEconomics(s, r)
	validateOperations(s, r)
	validateFinancing(s, r)
	validateElectricVehicle(&s.ElectricVehicle, r)
	validateDieselVehicle(&s.DieselVehicle, r)
	validatePrices(s, r)
	validateInfrastructure(s, r)
	validateCostGroups(s, r)
	validateBatteryReplacement(s, r)

	return r
}

func validateHorizon(s *scenario.Scenario, r *Report) {
	if s.AnalysisYears <= 0 {
		r.AddError(Result{
			Message:     "analysis_years must be greater than 0",
			Path:        "analysis_years",
			ActualValue: s.AnalysisYears,
			Expected:    "> 0",
		})
	}
	if s.StartYear != 0 && (s.StartYear < 1990 || s.StartYear > 2100) {
		r.AddError(Result{
			Message:     "start_year out of plausible range",
			Path:        "start_year",
			ActualValue: s.StartYear,
			Expected:    "1990..2100, or 0 for the current year",
		})
	}
}

func validateEconomics(s *scenario.Scenario, r *Report) {
	if s.Economics.DiscountRate < 0 {
		r.AddError(Result{
			Message:     "economics.discount_rate must be non-negative",
			Path:        "economics.discount_rate",
			ActualValue: s.Economics.DiscountRate,
			Expected:    ">= 0",
		})
	}
}

func validateOperations(s *scenario.Scenario, r *Report) {
	if s.Operations.AnnualDistanceKm <= 0 {
		r.AddError(Result{
			Message:     "operations.annual_distance_km must be greater than 0",
			Path:        "operations.annual_distance_km",
			ActualValue: s.Operations.AnnualDistanceKm,
			Expected:    "> 0",
		})
	}
}

func validateFinancing(s *scenario.Scenario, r *Report) {
	f := s.Financing
	switch f.Method {
	case scenario.FinancingCash:
		// No further fields apply.
	case scenario.FinancingLoan:
		if f.DownPaymentRate < 0 || f.DownPaymentRate > 1 {
			r.AddError(Result{
				Message:     "financing.down_payment_rate must be a fraction",
				Path:        "financing.down_payment_rate",
				ActualValue: f.DownPaymentRate,
				Expected:    "0..1",
			})
		}
		if f.TermYears <= 0 {
			r.AddError(Result{
				Message:     "financing.term_years must be greater than 0 for loan financing",
				Path:        "financing.term_years",
				ActualValue: f.TermYears,
				Expected:    "> 0",
			})
		}
		if f.InterestRate < 0 {
			r.AddError(Result{
				Message:     "financing.interest_rate must be non-negative",
				Path:        "financing.interest_rate",
				ActualValue: f.InterestRate,
				Expected:    ">= 0",
			})
		}
	default:
		r.AddError(Result{
			Message:     fmt.Sprintf("financing.method %q is not supported", f.Method),
			Path:        "financing.method",
			ActualValue: f.Method,
			Expected:    "cash or loan",
		})
	}
}

func validateElectricVehicle(v *vehicle.Electric, r *Report) {
	validateCommonVehicle("electric_vehicle", v.Name, v.PurchasePrice, v.Lifespan,
		v.RegistrationCost, v.ResidualValueCurve, r)

	if v.BatteryCapacityKWh <= 0 {
		r.AddError(Result{
			Message:     "electric_vehicle.battery_capacity_kwh must be greater than 0",
			Path:        "electric_vehicle.battery_capacity_kwh",
			ActualValue: v.BatteryCapacityKWh,
			Expected:    "> 0",
		})
	}
	if v.ConsumptionKWhPerKm <= 0 {
		r.AddError(Result{
			Message:     "electric_vehicle.energy_consumption_kwh_per_km must be greater than 0",
			Path:        "electric_vehicle.energy_consumption_kwh_per_km",
			ActualValue: v.ConsumptionKWhPerKm,
			Expected:    "> 0",
		})
	}
	if v.BatteryWarrantyYears < 0 {
		r.AddError(Result{
			Message:     "electric_vehicle.battery_warranty_years must be non-negative",
			Path:        "electric_vehicle.battery_warranty_years",
			ActualValue: v.BatteryWarrantyYears,
			Expected:    ">= 0",
		})
	}
	if v.CycleLife < 0 {
		r.AddError(Result{
			Message:     "electric_vehicle.battery_cycle_life must be non-negative",
			Path:        "electric_vehicle.battery_cycle_life",
			ActualValue: v.CycleLife,
			Expected:    ">= 0",
		})
	}
	validateFraction("electric_vehicle.depth_of_discharge", v.DepthOfDischarge, r)
	validateFraction("electric_vehicle.charging_efficiency", v.ChargingEfficiency, r)
	for year, cost := range v.BatteryCostProjection {
		if cost < 0 {
			r.AddError(Result{
				Message:     fmt.Sprintf("electric_vehicle.battery_cost_projection[%d] must be non-negative", year),
				Path:        "electric_vehicle.battery_cost_projection",
				ActualValue: cost,
				Expected:    ">= 0",
			})
		}
	}
}

func validateDieselVehicle(v *vehicle.Diesel, r *Report) {
	validateCommonVehicle("diesel_vehicle", v.Name, v.PurchasePrice, v.Lifespan,
		v.RegistrationCost, v.ResidualValueCurve, r)

	if v.FuelConsumptionLPer100Km <= 0 {
		r.AddError(Result{
			Message:     "diesel_vehicle.fuel_consumption_l_per_100km must be greater than 0",
			Path:        "diesel_vehicle.fuel_consumption_l_per_100km",
			ActualValue: v.FuelConsumptionLPer100Km,
			Expected:    "> 0",
		})
	}
	if v.CO2EmissionFactor < 0 {
		r.AddError(Result{
			Message:     "diesel_vehicle.co2_emission_factor_kg_per_l must be non-negative",
			Path:        "diesel_vehicle.co2_emission_factor_kg_per_l",
			ActualValue: v.CO2EmissionFactor,
			Expected:    ">= 0",
		})
	}
}

func validateCommonVehicle(section, name string, price float64, lifespan int, registration float64, curve map[int]float64, r *Report) {
	if name == "" {
		r.AddError(Result{
			Message:  section + ".name must not be empty",
			Path:     section + ".name",
			Expected: "non-empty string",
		})
	}
	if price <= 0 {
		r.AddError(Result{
			Message:     section + ".purchase_price must be greater than 0",
			Path:        section + ".purchase_price",
			ActualValue: price,
			Expected:    "> 0",
		})
	}
	if lifespan <= 0 {
		r.AddError(Result{
			Message:     section + ".lifespan_years must be greater than 0",
			Path:        section + ".lifespan_years",
			ActualValue: lifespan,
			Expected:    "> 0",
		})
	}
	if registration < 0 {
		r.AddError(Result{
			Message:     section + ".registration_base_cost must be non-negative",
			Path:        section + ".registration_base_cost",
			ActualValue: registration,
			Expected:    ">= 0",
		})
	}
	for age, frac := range curve {
		if age < 0 || frac < 0 || frac > 1 {
			r.AddError(Result{
				Message:     fmt.Sprintf("%s.residual_value_curve[%d] must map a non-negative age to a fraction", section, age),
				Path:        section + ".residual_value_curve",
				ActualValue: frac,
				Expected:    "age >= 0, fraction 0..1",
			})
		}
	}
}

func validatePrices(s *scenario.Scenario, r *Report) {
	bases := []struct {
		path  string
		basis scenario.PriceBasis
	}{
		{"prices.electricity", s.Prices.Electricity},
		{"prices.diesel", s.Prices.Diesel},
		{"prices.carbon_tax", s.Prices.CarbonTax},
		{"prices.road_user_charge", s.Prices.RoadUserCharge},
	}
	for _, b := range bases {
		if b.basis.Base < 0 {
			r.AddError(Result{
				Message:     b.path + ".base must be non-negative",
				Path:        b.path + ".base",
				ActualValue: b.basis.Base,
				Expected:    ">= 0",
			})
		}
	}
	if s.Prices.Electricity.Base == 0 {
		r.AddWarning(Result{
			Message: "prices.electricity.base is zero; electric energy costs will be zero",
			Path:    "prices.electricity.base",
		})
	}
	if s.Prices.Diesel.Base == 0 {
		r.AddWarning(Result{
			Message: "prices.diesel.base is zero; diesel energy costs will be zero",
			Path:    "prices.diesel.base",
		})
	}
}

func validateInfrastructure(s *scenario.Scenario, r *Report) {
	inf := s.Infrastructure
	if inf.ChargerHardwareCost < 0 {
		r.AddError(Result{
			Message:     "infrastructure.charger_hardware_cost must be non-negative",
			Path:        "infrastructure.charger_hardware_cost",
			ActualValue: inf.ChargerHardwareCost,
			Expected:    ">= 0",
		})
	}
	if inf.InstallationCost < 0 {
		r.AddError(Result{
			Message:     "infrastructure.installation_cost must be non-negative",
			Path:        "infrastructure.installation_cost",
			ActualValue: inf.InstallationCost,
			Expected:    ">= 0",
		})
	}
	if inf.MaintenanceRate < 0 {
		r.AddError(Result{
			Message:     "infrastructure.maintenance_rate must be non-negative",
			Path:        "infrastructure.maintenance_rate",
			ActualValue: inf.MaintenanceRate,
			Expected:    ">= 0",
		})
	}
	if inf.LifespanYears < 0 {
		r.AddError(Result{
			Message:     "infrastructure.lifespan_years must be non-negative",
			Path:        "infrastructure.lifespan_years",
			ActualValue: inf.LifespanYears,
			Expected:    ">= 0",
		})
	}
}

func validateCostGroups(s *scenario.Scenario, r *Report) {
	for kind, band := range s.Maintenance {
		if band.AnnualMin < 0 || band.AnnualMax < band.AnnualMin {
			r.AddError(Result{
				Message:     fmt.Sprintf("maintenance.%s band must satisfy 0 <= annual_min <= annual_max", kind),
				Path:        "maintenance." + kind,
				ActualValue: band,
				Expected:    "0 <= annual_min <= annual_max",
			})
		}
	}
	for _, kind := range []string{string(vehicle.KindElectric), string(vehicle.KindDiesel)} {
		if _, ok := s.Maintenance[kind]; !ok {
			r.AddWarning(Result{
				Message: fmt.Sprintf("maintenance.%s is missing; maintenance cost falls back to zero", kind),
				Path:    "maintenance." + kind,
			})
		}
		if _, ok := s.Insurance[kind]; !ok {
			r.AddWarning(Result{
				Message: fmt.Sprintf("insurance.%s is missing; insurance cost falls back to zero", kind),
				Path:    "insurance." + kind,
			})
		}
	}
	for kind, policy := range s.Insurance {
		switch policy.Type {
		case scenario.InsuranceFixed:
			if policy.AnnualCost < 0 {
				r.AddError(Result{
					Message:     fmt.Sprintf("insurance.%s.annual_cost must be non-negative", kind),
					Path:        fmt.Sprintf("insurance.%s.annual_cost", kind),
					ActualValue: policy.AnnualCost,
					Expected:    ">= 0",
				})
			}
		case scenario.InsurancePercentOfValue:
			if policy.RateOfValue < 0 {
				r.AddError(Result{
					Message:     fmt.Sprintf("insurance.%s.rate_of_value must be non-negative", kind),
					Path:        fmt.Sprintf("insurance.%s.rate_of_value", kind),
					ActualValue: policy.RateOfValue,
					Expected:    ">= 0",
				})
			}
		default:
			r.AddError(Result{
				Message:     fmt.Sprintf("insurance.%s.type %q is not supported", kind, policy.Type),
				Path:        fmt.Sprintf("insurance.%s.type", kind),
				ActualValue: policy.Type,
				Expected:    "fixed or percent_of_value",
			})
		}
	}
	if s.EscalationRates.Maintenance < 0 || s.EscalationRates.Insurance < 0 || s.EscalationRates.Registration < 0 {
		r.AddError(Result{
			Message:     "escalation_rates must be non-negative",
			Path:        "escalation_rates",
			ActualValue: s.EscalationRates,
			Expected:    ">= 0 each",
		})
	}
}

func validateBatteryReplacement(s *scenario.Scenario, r *Report) {
	br := s.BatteryReplacement
	if !br.Enabled {
		return
	}
	validateFraction("battery_replacement.threshold", br.Threshold, r)
	if br.ForceYear != nil {
		if *br.ForceYear < 1 || *br.ForceYear > s.AnalysisYears {
			r.AddError(Result{
				Message:     "battery_replacement.force_year must fall within the analysis horizon",
				Path:        "battery_replacement.force_year",
				ActualValue: *br.ForceYear,
				Expected:    fmt.Sprintf("1..%d", s.AnalysisYears),
			})
		}
	}
}

func validateFraction(path string, v float64, r *Report) {
	if v < 0 || v > 1 {
		r.AddError(Result{
			Message:     path + " must be a fraction",
			Path:        path,
			ActualValue: v,
			Expected:    "0..1",
		})
	}
}
