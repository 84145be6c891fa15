package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/tco"
	"github.com/fleetscope/evtco/pkg/validation"
)

// loadAndValidate parses the scenario (merging defaults if given) and runs
// the validation pass. The scenario is not yet prepared for pricing.
func loadAndValidate(path, defaultsPath string) (*scenario.Scenario, *validation.Report, error) {
	var s *scenario.Scenario
	var err error
	if defaultsPath != "" {
		s, err = scenario.LoadWithDefaults(defaultsPath, path)
	} else {
		s, err = scenario.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	return s, validation.ValidateScenario(s), nil
}

func runValidate(path, defaultsPath string) error {
	_, report, err := loadAndValidate(path, defaultsPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runCalculate(path string, opts calculateOptions) error {
	s, report, err := loadAndValidate(path, opts.defaultsPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("scenario has validation errors; fix before calculating")
	}
	if err := s.Prepare(); err != nil {
		return fmt.Errorf("preparing scenario: %w", err)
	}

	calc := newCalculator(opts.batteryCosts)
	result := calc.Calculate(s)

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printResult(result)
	}

	if opts.sensitivityStep > 0 {
		deltas, err := calc.DiscountRateSensitivity(s, opts.sensitivityStep)
		if err != nil {
			return fmt.Errorf("sensitivity analysis: %w", err)
		}
		fmt.Println()
		printSensitivity(deltas)
	}

	if len(report.Warnings) > 0 {
		fmt.Println()
		printValidationReport(report)
	}
	if result.Error != "" {
		return fmt.Errorf("calculation failed: %s", result.Error)
	}
	return nil
}

func runCompare(paths []string, opts calculateOptions) error {
	calc := newCalculator(opts.batteryCosts)

	results := make([]*tco.Result, 0, len(paths))
	for _, path := range paths {
		s, report, err := loadAndValidate(path, opts.defaultsPath)
		if err != nil {
			return err
		}
		if !report.Valid {
			printValidationReport(report)
			return fmt.Errorf("%s has validation errors", path)
		}
		if err := s.Prepare(); err != nil {
			return fmt.Errorf("preparing %s: %w", path, err)
		}
		results = append(results, calc.Calculate(s))
	}

	printComparison(results)

	for _, r := range results {
		if r.Error != "" {
			return fmt.Errorf("scenario %q failed: %s", r.ScenarioName, r.Error)
		}
	}
	return nil
}
