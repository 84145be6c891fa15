package scenario

import (
	"math"
	"testing"

	"github.com/fleetscope/evtco/pkg/vehicle"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func defaultScenario() *Scenario {
	return &Scenario{
		Name:          "test",
		AnalysisYears: 5,
		StartYear:     2026,
		Economics:     Economics{DiscountRate: 0.05},
		Operations:    Operations{AnnualDistanceKm: 15000},
		Financing:     Financing{Method: FinancingCash},
		ElectricVehicle: vehicle.Electric{
			Name:          "EV",
			PurchasePrice: 60000,
			Lifespan:      10,
		},
		DieselVehicle: vehicle.Diesel{
			Name:                     "Diesel",
			PurchasePrice:            45000,
			Lifespan:                 10,
			FuelConsumptionLPer100Km: 10,
		},
		Prices: PriceBases{
			Electricity:    PriceBasis{Base: 0.25, Escalation: 0.02},
			Diesel:         PriceBasis{Base: 1.50, Escalation: 0.03},
			CarbonTax:      PriceBasis{Base: 30, Escalation: 0},
			RoadUserCharge: PriceBasis{Base: 0.025, Escalation: 0.01},
		},
	}
}

func TestPrepareBuildsEscalatedSeries(t *testing.T) {
	s := defaultScenario()
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	tests := []struct {
		key   string
		index int
		want  float64
	}{
		{PriceElectricity, 0, 0.25},
		{PriceElectricity, 2, 0.25 * 1.02 * 1.02},
		{PriceDiesel, 0, 1.50},
		{PriceDiesel, 1, 1.50 * 1.03},
		{PriceCarbonTax, 4, 30},
		{PriceRoadUserCharge, 3, 0.025 * math.Pow(1.01, 3)},
	}
	for _, tt := range tests {
		got, ok := s.AnnualPrice(tt.key, tt.index)
		if !ok {
			t.Errorf("AnnualPrice(%s, %d): not available", tt.key, tt.index)
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("AnnualPrice(%s, %d) = %v, want %v", tt.key, tt.index, got, tt.want)
		}
	}
}

func TestAnnualPriceMisses(t *testing.T) {
	s := defaultScenario()
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if _, ok := s.AnnualPrice("kerosene", 0); ok {
		t.Error("unknown series key should not resolve")
	}
	if _, ok := s.AnnualPrice(PriceDiesel, 5); ok {
		t.Error("index past the horizon should not resolve")
	}
	if _, ok := s.AnnualPrice(PriceDiesel, -1); ok {
		t.Error("negative index should not resolve")
	}

	unprepared := defaultScenario()
	if _, ok := unprepared.AnnualPrice(PriceDiesel, 0); ok {
		t.Error("unprepared scenario should not resolve any price")
	}
}

func TestPrepareRejectsEmptyHorizon(t *testing.T) {
	s := defaultScenario()
	s.AnalysisYears = 0
	if err := s.Prepare(); err == nil {
		t.Error("Prepare should fail with a zero-year horizon")
	}
}

func TestPrepareFillsStartYear(t *testing.T) {
	s := defaultScenario()
	s.StartYear = 0
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if s.StartYear < 2026 {
		t.Errorf("StartYear = %d, want the current calendar year", s.StartYear)
	}
}

func TestCalendarYear(t *testing.T) {
	s := defaultScenario()
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := s.CalendarYear(0); got != 2026 {
		t.Errorf("CalendarYear(0) = %d, want 2026", got)
	}
	if got := s.CalendarYear(4); got != 2030 {
		t.Errorf("CalendarYear(4) = %d, want 2030", got)
	}
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	s := defaultScenario()
	s.ElectricVehicle.ResidualValueCurve = map[int]float64{5: 0.4}
	forced := 3
	s.BatteryReplacement = BatteryReplacement{Enabled: true, Threshold: 0.75, ForceYear: &forced}
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	derived, err := s.With(func(m *Scenario) {
		m.Economics.DiscountRate = 0.10
		m.Prices.Diesel.Base = 2.00
		m.ElectricVehicle.ResidualValueCurve[5] = 0.9
		*m.BatteryReplacement.ForceYear = 1
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	if s.Economics.DiscountRate != 0.05 {
		t.Errorf("receiver discount rate mutated to %v", s.Economics.DiscountRate)
	}
	if s.ElectricVehicle.ResidualValueCurve[5] != 0.4 {
		t.Errorf("receiver residual curve mutated to %v", s.ElectricVehicle.ResidualValueCurve[5])
	}
	if *s.BatteryReplacement.ForceYear != 3 {
		t.Errorf("receiver force year mutated to %d", *s.BatteryReplacement.ForceYear)
	}

	// The derived copy gets re-escalated series from its own bases.
	base, ok := s.AnnualPrice(PriceDiesel, 0)
	if !ok || !almostEqual(base, 1.50) {
		t.Errorf("receiver diesel base = %v, want 1.50", base)
	}
	derivedBase, ok := derived.AnnualPrice(PriceDiesel, 0)
	if !ok || !almostEqual(derivedBase, 2.00) {
		t.Errorf("derived diesel base = %v, want 2.00", derivedBase)
	}
}

func TestWithRejectsInvalidDerivation(t *testing.T) {
	s := defaultScenario()
	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := s.With(func(m *Scenario) { m.AnalysisYears = -1 }); err == nil {
		t.Error("With should surface Prepare failures on the derived copy")
	}
}
