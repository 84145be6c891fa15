package tco

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/vehicle"
)

// Calculator prices scenarios. It is safe for concurrent use; the battery
// cost cache is shared across runs.
type Calculator struct {
	batteryCosts *BatteryCostCache
}

// NewCalculator returns a calculator backed by the given battery cost
// cache. A nil cache means no external projection data; component-level
// fallbacks apply.
func NewCalculator(cache *BatteryCostCache) *Calculator {
	return &Calculator{batteryCosts: cache}
}

type vehicleRun struct {
	table    *CostTable
	warnings []string
	err      error
}

// Calculate runs the full comparison for a prepared scenario: both
// vehicles priced year by year, discounting, levelized cost, and the
// parity year. Configuration errors abort the failing vehicle's run and
// surface on Result.Error; pricing gaps degrade to missing cells with
// warnings.
func (c *Calculator) Calculate(s *scenario.Scenario) *Result {
	result := &Result{
		RunID:         uuid.NewString(),
		ScenarioName:  s.Name,
		AnalysisYears: s.AnalysisYears,
	}

	defaults := c.batteryCosts.Table()

	var ev, diesel vehicleRun
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ev = c.runVehicle(&s.ElectricVehicle, s, defaults)
	}()
	go func() {
		defer wg.Done()
		diesel = c.runVehicle(&s.DieselVehicle, s, defaults)
	}()
	wg.Wait()

	result.Warnings = append(result.Warnings, ev.warnings...)
	result.Warnings = append(result.Warnings, diesel.warnings...)

	if ev.err != nil {
		result.Error = fmt.Sprintf("electric vehicle: %v", ev.err)
	} else if diesel.err != nil {
		result.Error = fmt.Sprintf("diesel vehicle: %v", diesel.err)
	}

	rate := s.Economics.DiscountRate
	if ev.table != nil {
		result.ElectricUndiscounted = ev.table
		result.ElectricDiscounted = ev.table.Discounted(rate)
		result.ElectricTotalTCO = result.ElectricDiscounted.Total()
	}
	if diesel.table != nil {
		result.DieselUndiscounted = diesel.table
		result.DieselDiscounted = diesel.table.Discounted(rate)
		result.DieselTotalTCO = result.DieselDiscounted.Total()
	}
	if result.Error != "" {
		return result
	}

	totalKm := s.Operations.AnnualDistanceKm * float64(s.AnalysisYears)
	if totalKm > 0 {
		evLCOD := result.ElectricTotalTCO / totalKm
		dieselLCOD := result.DieselTotalTCO / totalKm
		result.ElectricLCOD = &evLCOD
		result.DieselLCOD = &dieselLCOD
	}

	result.ParityYear = parityYear(ev.table, diesel.table)
	return result
}

// runVehicle prices every applicable component for every analysis year.
// A configuration error stops the run immediately; any other component
// error leaves that cell missing and records a warning.
func (c *Calculator) runVehicle(v vehicle.Vehicle, s *scenario.Scenario, batteryDefaults map[int]float64) vehicleRun {
	components := applicableComponents(v, s, batteryDefaults)
	run := vehicleRun{table: &CostTable{}}
	for _, comp := range components {
		run.table.Columns = append(run.table.Columns, comp.Name())
	}

	state := NewRunState()
	annualKm := s.Operations.AnnualDistanceKm

	for index := 0; index < s.AnalysisYears; index++ {
		year := s.CalendarYear(index)
		cumulativeKm := annualKm * float64(index)
		row := Row{
			Year:         index + 1,
			CalendarYear: year,
			Costs:        make(map[string]float64, len(components)),
		}
		for _, comp := range components {
			cost, err := comp.Cost(year, v, s, index, cumulativeKm, state)
			if err != nil {
				if isConfigurationError(err) {
					run.err = fmt.Errorf("%s, year %d: %w", comp.Name(), year, err)
					return run
				}
				msg := fmt.Sprintf("%s: %s in year %d: %v", v.VehicleName(), comp.Name(), year, err)
				slog.Warn("component pricing failed",
					"vehicle", v.VehicleName(), "component", comp.Name(), "year", year, "err", err)
				run.warnings = append(run.warnings, msg)
				row.Missing = append(row.Missing, comp.Name())
				continue
			}
			row.Costs[comp.Name()] = cost
			row.Total += cost
		}
		run.table.Rows = append(run.table.Rows, row)
	}
	return run
}

// parityYear finds the first year the electric cumulative undiscounted
// cost drops to or below diesel's.
func parityYear(evTable, dieselTable *CostTable) *int {
	if evTable == nil || dieselTable == nil {
		return nil
	}
	evCum := evTable.CumulativeTotals()
	dieselCum := dieselTable.CumulativeTotals()
	n := len(evCum)
	if len(dieselCum) < n {
		n = len(dieselCum)
	}
	for i := 0; i < n; i++ {
		if evCum[i] <= dieselCum[i] {
			year := i + 1
			return &year
		}
	}
	return nil
}
