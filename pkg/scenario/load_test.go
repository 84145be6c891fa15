package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const scenarioYAML = `
name: depot-fleet
analysis_years: 8
start_year: 2026
economics:
  discount_rate: 0.05
operations:
  annual_distance_km: 25000
financing:
  method: loan
  down_payment_rate: 0.2
  term_years: 5
  interest_rate: 0.06
electric_vehicle:
  name: eActros
  purchase_price: 120000
  lifespan_years: 12
  registration_base_cost: 850
  battery_capacity_kwh: 112
  energy_consumption_kwh_per_km: 0.9
  battery_cycle_life: 2500
  depth_of_discharge: 0.9
  charging_efficiency: 0.92
  residual_value_curve:
    3: 0.55
    8: 0.25
diesel_vehicle:
  name: Actros
  purchase_price: 95000
  lifespan_years: 12
  registration_base_cost: 950
  fuel_consumption_l_per_100km: 28
  co2_emission_factor_kg_per_l: 2.68
prices:
  electricity:
    base: 0.28
    escalation: 0.02
  diesel:
    base: 1.85
    escalation: 0.03
maintenance:
  electric:
    annual_min: 400
    annual_max: 800
  diesel:
    annual_min: 1200
    annual_max: 2000
insurance:
  electric:
    type: percent_of_value
    rate_of_value: 0.03
  diesel:
    type: fixed
    annual_cost: 2200
battery_replacement:
  enabled: true
  threshold: 0.8
include_carbon_tax: true
`

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scenario.yaml", scenarioYAML)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.Name != "depot-fleet" {
		t.Errorf("Name = %q, want depot-fleet", s.Name)
	}
	if s.AnalysisYears != 8 {
		t.Errorf("AnalysisYears = %d, want 8", s.AnalysisYears)
	}
	if s.Financing.Method != FinancingLoan || s.Financing.TermYears != 5 {
		t.Errorf("Financing = %+v, want loan over 5 years", s.Financing)
	}
	if s.ElectricVehicle.BatteryCapacityKWh != 112 {
		t.Errorf("BatteryCapacityKWh = %v, want 112", s.ElectricVehicle.BatteryCapacityKWh)
	}
	if got := s.ElectricVehicle.ResidualValueCurve[8]; got != 0.25 {
		t.Errorf("ResidualValueCurve[8] = %v, want 0.25", got)
	}
	if band := s.Maintenance["diesel"]; band.Base() != 1600 {
		t.Errorf("diesel maintenance base = %v, want 1600", band.Base())
	}
	if !s.BatteryReplacement.Enabled || s.BatteryReplacement.Threshold != 0.8 {
		t.Errorf("BatteryReplacement = %+v, want enabled at 0.8", s.BatteryReplacement)
	}
	if !s.IncludeCarbonTax {
		t.Error("IncludeCarbonTax should be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("analysis_years: [not a number")); err == nil {
		t.Error("Parse should fail on malformed YAML")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := writeFile(t, dir, "defaults.yaml", `
analysis_years: 10
economics:
  discount_rate: 0.07
prices:
  diesel:
    base: 1.80
    escalation: 0.03
  electricity:
    base: 0.30
    escalation: 0.02
`)
	override := writeFile(t, dir, "override.yaml", `
name: override-case
economics:
  discount_rate: 0.04
prices:
  diesel:
    base: 2.10
`)

	s, err := LoadWithDefaults(defaults, override)
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}

	if s.Name != "override-case" {
		t.Errorf("Name = %q, want override-case", s.Name)
	}
	if s.AnalysisYears != 10 {
		t.Errorf("AnalysisYears = %d, want 10 from defaults", s.AnalysisYears)
	}
	if s.Economics.DiscountRate != 0.04 {
		t.Errorf("DiscountRate = %v, want the override 0.04", s.Economics.DiscountRate)
	}
	if s.Prices.Diesel.Base != 2.10 {
		t.Errorf("diesel base = %v, want the override 2.10", s.Prices.Diesel.Base)
	}
	// Sibling keys under a merged mapping survive the override.
	if s.Prices.Diesel.Escalation != 0.03 {
		t.Errorf("diesel escalation = %v, want 0.03 from defaults", s.Prices.Diesel.Escalation)
	}
	if s.Prices.Electricity.Base != 0.30 {
		t.Errorf("electricity base = %v, want 0.30 from defaults", s.Prices.Electricity.Base)
	}
}

func TestLoadBatteryCosts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "battery.yaml", `
battery_pack_cost_aud_per_kwh:
  2026: 180
  2030: 120
  2035: 90
`)

	table, err := LoadBatteryCosts(path)
	if err != nil {
		t.Fatalf("LoadBatteryCosts: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("got %d entries, want 3", len(table))
	}
	if table[2030] != 120 {
		t.Errorf("table[2030] = %v, want 120", table[2030])
	}
}

func TestLoadBatteryCostsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "battery.yaml", "unrelated: true\n")
	if _, err := LoadBatteryCosts(path); err == nil {
		t.Error("LoadBatteryCosts should fail when the projection is missing")
	}
}
