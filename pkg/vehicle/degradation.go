package vehicle

// Battery degradation model constants. The combined factor weights cycle
// aging against calendar aging, then scales the total by the capacity loss
// that defines end-of-life (80% remaining).
const (
	cycleAgingWeight    = 0.7
	calendarAgingWeight = 0.3
	endOfLifeLoss       = 0.2
)

// DegradationFactor estimates remaining battery capacity as a fraction of
// original capacity, combining equivalent-full-cycle aging with calendar
// aging. Returns a value in [0, 1]; 1.0 means no degradation.
//
// Zero charging efficiency, zero usable capacity, or zero cycle life make
// the cycle term undefined; those configurations short-circuit to 1.0.
func (e *Electric) DegradationFactor(ageYears float64, totalKm float64) float64 {
	if ageYears < 0 || totalKm < 0 {
		return 1.0
	}

	usablePerCycle := e.BatteryCapacityKWh * e.DepthOfDischarge
	if e.ChargingEfficiency <= 0 || usablePerCycle <= 0 || e.CycleLife <= 0 {
		return 1.0
	}

	// Energy drawn from the grid per km exceeds consumption at the wheel by
	// the charging loss.
	gridEnergyPerKm := e.ConsumptionKWhPerKm / e.ChargingEfficiency
	equivalentCycles := totalKm * gridEnergyPerKm / usablePerCycle

	cycleDeg := min(1.0, equivalentCycles/float64(e.CycleLife))

	calendarDeg := 1.0
	if e.Lifespan > 0 {
		calendarDeg = min(1.0, ageYears/float64(e.Lifespan))
	}

	total := cycleAgingWeight*cycleDeg + calendarAgingWeight*calendarDeg
	remaining := 1.0 - total*endOfLifeLoss
	if remaining < 0 {
		return 0
	}
	return remaining
}
