package main

import (
	"fmt"

	"github.com/fleetscope/evtco/pkg/tco"
	"github.com/fleetscope/evtco/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		sections, groups := r.GroupedErrors()
		for _, section := range sections {
			fmt.Printf("  %s:\n", section)
			for _, e := range groups[section] {
				fmt.Printf("    %s\n", e.Message)
				if e.Path != "" {
					fmt.Printf("      -> %s = %v\n", e.Path, e.ActualValue)
				}
				if e.Expected != "" {
					fmt.Printf("      expected: %s\n", e.Expected)
				}
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(r *tco.Result) {
	fmt.Printf("Scenario: %s (%d years)\n", r.ScenarioName, r.AnalysisYears)
	fmt.Println("==========================================")
	fmt.Println()

	if r.ElectricDiscounted != nil {
		fmt.Println("Electric vehicle (discounted)")
		printCostTable(r.ElectricDiscounted)
		fmt.Println()
	}
	if r.DieselDiscounted != nil {
		fmt.Println("Diesel vehicle (discounted)")
		printCostTable(r.DieselDiscounted)
		fmt.Println()
	}

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Electric total TCO:  $%s\n", formatMoney(r.ElectricTotalTCO))
	fmt.Printf("  Diesel total TCO:    $%s\n", formatMoney(r.DieselTotalTCO))
	fmt.Printf("  Savings (EV):        $%s\n", formatMoney(r.Savings()))
	if r.ElectricLCOD != nil {
		fmt.Printf("  Electric LCOD:       $%.4f/km\n", *r.ElectricLCOD)
	}
	if r.DieselLCOD != nil {
		fmt.Printf("  Diesel LCOD:         $%.4f/km\n", *r.DieselLCOD)
	}
	if r.ParityYear != nil {
		fmt.Printf("  Cost parity:         year %d\n", *r.ParityYear)
	} else {
		fmt.Printf("  Cost parity:         not reached\n")
	}

	if len(r.Warnings) > 0 {
		fmt.Println()
		fmt.Printf("Calculation warnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	if r.Error != "" {
		fmt.Println()
		fmt.Printf("ERROR: %s\n", r.Error)
	}
}

func printCostTable(t *tco.CostTable) {
	fmt.Printf("  %-6s", "Year")
	for _, col := range t.Columns {
		fmt.Printf(" %14s", col)
	}
	fmt.Printf(" %14s\n", "Total")

	for _, row := range t.Rows {
		fmt.Printf("  %-6d", row.CalendarYear)
		for _, col := range t.Columns {
			if cost, ok := row.Costs[col]; ok {
				fmt.Printf(" %14s", formatMoney(cost))
			} else {
				fmt.Printf(" %14s", "-")
			}
		}
		fmt.Printf(" %14s\n", formatMoney(row.Total))
	}
}

func printComparison(results []*tco.Result) {
	fmt.Printf("%-24s %14s %14s %14s %8s\n",
		"Scenario", "EV TCO", "Diesel TCO", "Savings", "Parity")
	fmt.Printf("%-24s %14s %14s %14s %8s\n",
		"------------------------", "--------------", "--------------", "--------------", "--------")

	for _, r := range results {
		parity := "-"
		if r.ParityYear != nil {
			parity = fmt.Sprintf("yr %d", *r.ParityYear)
		}
		if r.Error != "" {
			fmt.Printf("%-24s failed: %s\n", r.ScenarioName, r.Error)
			continue
		}
		fmt.Printf("%-24s %14s %14s %14s %8s\n",
			r.ScenarioName,
			formatMoney(r.ElectricTotalTCO),
			formatMoney(r.DieselTotalTCO),
			formatMoney(r.Savings()),
			parity)
	}
}

func printSensitivity(deltas []tco.SensitivityDelta) {
	fmt.Println("Discount rate sensitivity")
	fmt.Println("-------------------------")
	for _, d := range deltas {
		fmt.Printf("  %.2f%% -> %.2f%%: EV %s, diesel %s, savings %s\n",
			d.BaseValue*100, d.ShiftedValue*100,
			formatSignedMoney(d.ElectricDelta),
			formatSignedMoney(d.DieselDelta),
			formatSignedMoney(d.SavingsDelta))
	}
}

func formatSignedMoney(v float64) string {
	if v < 0 {
		return "-$" + formatMoney(-v)
	}
	return "+$" + formatMoney(v)
}

func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	var s string
	switch {
	case v >= 1_000_000_000:
		s = fmt.Sprintf("%.2fB", v/1_000_000_000)
	case v >= 1_000_000:
		s = fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000:
		s = fmt.Sprintf("%.1fK", v/1_000)
	default:
		s = fmt.Sprintf("%.0f", v)
	}
	if neg {
		return "-" + s
	}
	return s
}
