package tco

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/vehicle"
)

// acquisitionCost charges the purchase price up front under cash financing,
// or a down payment plus level annual loan payments under loan financing.
type acquisitionCost struct{}

func (acquisitionCost) Name() string { return "Acquisition" }

func (acquisitionCost) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	price := v.Price()

	switch s.Financing.Method {
	case scenario.FinancingCash:
		if index == 0 {
			return price, nil
		}
		return 0, nil

	case scenario.FinancingLoan:
		f := s.Financing
		cost := 0.0
		if index == 0 {
			cost += price * f.DownPaymentRate
		}
		if index < f.TermYears {
			principal := price * (1 - f.DownPaymentRate)
			cost += LoanPayment(principal, f.InterestRate, f.TermYears)
		}
		return cost, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFinancing, s.Financing.Method)
	}
}

// energyCost prices the year's native-unit consumption using the scenario
// series that matches the vehicle's energy unit.
type energyCost struct{}

func (energyCost) Name() string { return "Energy" }

func (energyCost) Cost(year int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	var key string
	switch v.EnergyUnit() {
	case vehicle.UnitKWh:
		key = scenario.PriceElectricity
	case vehicle.UnitLitre:
		key = scenario.PriceDiesel
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEnergyUnit, v.EnergyUnit())
	}

	price, ok := s.AnnualPrice(key, index)
	if !ok {
		return 0, fmt.Errorf("%w: %s[%d] (year %d)", ErrPriceUnavailable, key, index, year)
	}
	return v.Consumption(s.Operations.AnnualDistanceKm) * price, nil
}

// maintenanceCost escalates the vehicle-kind band midpoint. A missing band
// is a soft gap: zero cost with a logged warning.
type maintenanceCost struct{}

func (maintenanceCost) Name() string { return "Maintenance" }

func (maintenanceCost) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	band, ok := s.Maintenance[string(v.Kind())]
	if !ok {
		slog.Warn("no maintenance band configured; using zero cost",
			"vehicle", v.VehicleName(), "kind", v.Kind())
		return 0, nil
	}
	return band.Base() * math.Pow(1+s.EscalationRates.Maintenance, float64(index)), nil
}

// infrastructureCost charges home charger hardware plus installation once
// at index 0, and annual charger maintenance (a fraction of the hardware
// cost, escalated at the general maintenance rate) every year.
type infrastructureCost struct{}

func (infrastructureCost) Name() string { return "Infrastructure" }

func (infrastructureCost) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, run *RunState) (float64, error) {
	if v.Kind() != vehicle.KindElectric {
		return 0, nil
	}
	inf := s.Infrastructure

	cost := 0.0
	if index == 0 && !run.infrastructureCharged {
		cost += inf.ChargerHardwareCost + inf.InstallationCost
		run.infrastructureCharged = true
	}
	cost += inf.ChargerHardwareCost * inf.MaintenanceRate *
		math.Pow(1+s.EscalationRates.Maintenance, float64(index))
	return cost, nil
}

// batteryReplacementCost fires at most once per run: at the forced year if
// configured, otherwise at the first year whose end-of-year degradation
// factor falls to or below the threshold.
type batteryReplacementCost struct {
	// defaults is the process-level battery cost projection, consulted
	// after the vehicle's and scenario's own projections.
	defaults map[int]float64
}

func (batteryReplacementCost) Name() string { return "BatteryReplacement" }

func (b batteryReplacementCost) Cost(year int, v vehicle.Vehicle, s *scenario.Scenario, index int, cumulativeKm float64, run *RunState) (float64, error) {
	ev, ok := v.(*vehicle.Electric)
	if !ok || !s.BatteryReplacement.Enabled || run.batteryCharged {
		return 0, nil
	}

	triggered := false
	if s.BatteryReplacement.ForceYear != nil {
		triggered = index == *s.BatteryReplacement.ForceYear-1
	} else if !run.batteryDecided {
		ageAtYearEnd := float64(index + 1)
		kmAtYearEnd := cumulativeKm + s.Operations.AnnualDistanceKm
		factor := ev.DegradationFactor(ageAtYearEnd, kmAtYearEnd)
		if factor <= s.BatteryReplacement.Threshold {
			triggered = true
		}
	}
	if !triggered {
		return 0, nil
	}

	run.batteryDecided = true
	run.batteryYear = index
	run.batteryCharged = true

	perKWh := batteryCostPerKWh(year, ev, s, b.defaults)
	cost := ev.BatteryCapacityKWh * perKWh
	slog.Info("battery replacement triggered",
		"vehicle", ev.Name, "year", year, "index", index, "cost_aud", cost)
	return cost, nil
}

// insuranceCost applies the vehicle-kind policy: a fixed annual amount or a
// percentage of the current residual value, escalated at the insurance
// rate. A missing policy is a soft gap.
type insuranceCost struct{}

func (insuranceCost) Name() string { return "Insurance" }

func (insuranceCost) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	policy, ok := s.Insurance[string(v.Kind())]
	if !ok {
		slog.Warn("no insurance policy configured; using zero cost",
			"vehicle", v.VehicleName(), "kind", v.Kind())
		return 0, nil
	}

	var base float64
	switch policy.Type {
	case scenario.InsuranceFixed:
		base = policy.AnnualCost
	case scenario.InsurancePercentOfValue:
		base = policy.RateOfValue * v.ResidualValue(float64(index))
	default:
		slog.Warn("unrecognized insurance policy type; using zero cost",
			"vehicle", v.VehicleName(), "type", policy.Type)
		return 0, nil
	}
	return base * math.Pow(1+s.EscalationRates.Insurance, float64(index)), nil
}

// registrationCost escalates the vehicle's base registration cost.
type registrationCost struct{}

func (registrationCost) Name() string { return "Registration" }

func (registrationCost) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	return v.RegistrationBase() * math.Pow(1+s.EscalationRates.Registration, float64(index)), nil
}

// carbonTaxCost taxes the year's diesel CO2e at the scenario carbon price.
type carbonTaxCost struct{}

func (carbonTaxCost) Name() string { return "CarbonTax" }

func (carbonTaxCost) Cost(year int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	dv, ok := v.(*vehicle.Diesel)
	if !ok || !s.IncludeCarbonTax {
		return 0, nil
	}

	rate, ok := s.AnnualPrice(scenario.PriceCarbonTax, index)
	if !ok {
		return 0, fmt.Errorf("%w: %s[%d] (year %d)", ErrPriceUnavailable, scenario.PriceCarbonTax, index, year)
	}

	litres := dv.Consumption(s.Operations.AnnualDistanceKm)
	tonnesCO2 := litres * dv.CO2EmissionFactor / 1000.0
	return tonnesCO2 * rate, nil
}

// roadUserChargeCost applies the per-km charge to the annual distance.
type roadUserChargeCost struct{}

func (roadUserChargeCost) Name() string { return "RoadUserCharge" }

func (roadUserChargeCost) Cost(year int, _ vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	if !s.IncludeRoadUserCharge {
		return 0, nil
	}
	rate, ok := s.AnnualPrice(scenario.PriceRoadUserCharge, index)
	if !ok {
		return 0, fmt.Errorf("%w: %s[%d] (year %d)", ErrPriceUnavailable, scenario.PriceRoadUserCharge, index, year)
	}
	return s.Operations.AnnualDistanceKm * rate, nil
}

// residualValueCredit returns the negated residual value in the final
// analysis year and zero otherwise.
type residualValueCredit struct{}

func (residualValueCredit) Name() string { return "ResidualValue" }

func (residualValueCredit) Cost(_ int, v vehicle.Vehicle, s *scenario.Scenario, index int, _ float64, _ *RunState) (float64, error) {
	if index != s.AnalysisYears-1 {
		return 0, nil
	}
	return -v.ResidualValue(float64(s.AnalysisYears)), nil
}
