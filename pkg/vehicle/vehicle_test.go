package vehicle

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func defaultElectric() *Electric {
	return &Electric{
		Name:             "Test EV",
		PurchasePrice:    60000,
		Lifespan:         10,
		RegistrationCost: 800,
		ResidualValueCurve: map[int]float64{
			3: 0.6,
			5: 0.4,
			8: 0.25,
		},
		BatteryCapacityKWh:   100,
		ConsumptionKWhPerKm:  0.2,
		BatteryWarrantyYears: 8,
		CycleLife:            1000,
		DepthOfDischarge:     1.0,
		ChargingEfficiency:   1.0,
	}
}

func defaultDiesel() *Diesel {
	return &Diesel{
		Name:                     "Test Diesel",
		PurchasePrice:            45000,
		Lifespan:                 10,
		RegistrationCost:         900,
		ResidualValueCurve:       map[int]float64{5: 0.45},
		FuelConsumptionLPer100Km: 10,
		CO2EmissionFactor:        2.68,
	}
}

func TestConsumption(t *testing.T) {
	ev := defaultElectric()
	if got := ev.Consumption(15000); !almostEqual(got, 3000) {
		t.Errorf("electric consumption over 15000 km = %v kWh, want 3000", got)
	}
	if ev.EnergyUnit() != UnitKWh {
		t.Errorf("electric energy unit = %q, want %q", ev.EnergyUnit(), UnitKWh)
	}

	dv := defaultDiesel()
	if got := dv.Consumption(15000); !almostEqual(got, 1500) {
		t.Errorf("diesel consumption over 15000 km = %v L, want 1500", got)
	}
	if dv.EnergyUnit() != UnitLitre {
		t.Errorf("diesel energy unit = %q, want %q", dv.EnergyUnit(), UnitLitre)
	}
}

func TestResidualValueInterpolation(t *testing.T) {
	ev := defaultElectric() // curve: 3->0.6, 5->0.4, 8->0.25, price 60000

	tests := []struct {
		name string
		age  float64
		want float64
	}{
		{"brand new anchors at full price", 0, 60000},
		{"below first point interpolates from anchor", 1.5, 60000 * 0.8},
		{"exact curve point", 3, 60000 * 0.6},
		{"between points", 4, 60000 * 0.5},
		{"last point", 8, 60000 * 0.25},
		{"beyond last point holds flat", 12, 60000 * 0.25},
		{"negative age clamps to new", -2, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.ResidualValue(tt.age); !almostEqual(got, tt.want) {
				t.Errorf("ResidualValue(%v) = %v, want %v", tt.age, got, tt.want)
			}
		})
	}
}

func TestResidualValueEmptyCurve(t *testing.T) {
	ev := defaultElectric()
	ev.ResidualValueCurve = nil

	// Straight-line depreciation to zero over the 10 year lifespan.
	if got := ev.ResidualValue(4); !almostEqual(got, 60000*0.6) {
		t.Errorf("ResidualValue(4) with empty curve = %v, want %v", got, 60000*0.6)
	}
	if got := ev.ResidualValue(12); got != 0 {
		t.Errorf("ResidualValue(12) past lifespan = %v, want 0", got)
	}

	ev.Lifespan = 0
	if got := ev.ResidualValue(1); got != 0 {
		t.Errorf("ResidualValue with no curve and no lifespan = %v, want 0", got)
	}
}

func TestResidualValueCurveAtAgeZero(t *testing.T) {
	ev := defaultElectric()
	ev.ResidualValueCurve = map[int]float64{0: 0.9, 5: 0.4}

	// A curve with an explicit age-0 point overrides the implicit anchor.
	if got := ev.ResidualValue(0); !almostEqual(got, 60000*0.9) {
		t.Errorf("ResidualValue(0) = %v, want %v", got, 60000*0.9)
	}
}

func TestDegradationFactor(t *testing.T) {
	ev := defaultElectric()

	// 50000 km at 0.2 kWh/km grid draw over a 100 kWh pack is 100
	// equivalent cycles of the 1000 cycle life; 5 of 10 lifespan years.
	// 0.7*0.1 + 0.3*0.5 = 0.22 aging, scaled by the 0.2 end-of-life loss.
	got := ev.DegradationFactor(5, 50000)
	want := 1.0 - 0.22*0.2
	if !almostEqual(got, want) {
		t.Errorf("DegradationFactor(5, 50000) = %v, want %v", got, want)
	}
}

func TestDegradationFactorSaturates(t *testing.T) {
	ev := defaultElectric()

	// Both aging terms cap at 1.0 so the factor never drops below 0.8.
	got := ev.DegradationFactor(100, 1e9)
	if !almostEqual(got, 0.8) {
		t.Errorf("fully aged DegradationFactor = %v, want 0.8", got)
	}
}

func TestDegradationFactorGuards(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Electric)
	}{
		{"zero charging efficiency", func(e *Electric) { e.ChargingEfficiency = 0 }},
		{"zero capacity", func(e *Electric) { e.BatteryCapacityKWh = 0 }},
		{"zero depth of discharge", func(e *Electric) { e.DepthOfDischarge = 0 }},
		{"zero cycle life", func(e *Electric) { e.CycleLife = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := defaultElectric()
			tt.mutate(ev)
			if got := ev.DegradationFactor(5, 50000); got != 1.0 {
				t.Errorf("DegradationFactor = %v, want 1.0 for undefined configuration", got)
			}
		})
	}
}

func TestDegradationFactorNegativeInputs(t *testing.T) {
	ev := defaultElectric()
	if got := ev.DegradationFactor(-1, 50000); got != 1.0 {
		t.Errorf("DegradationFactor with negative age = %v, want 1.0", got)
	}
	if got := ev.DegradationFactor(5, -1); got != 1.0 {
		t.Errorf("DegradationFactor with negative km = %v, want 1.0", got)
	}
}
