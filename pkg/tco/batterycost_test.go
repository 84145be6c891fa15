package tco

import (
	"errors"
	"sync"
	"testing"
)

func TestInterpolateYearCost(t *testing.T) {
	table := map[int]float64{2026: 180, 2030: 120, 2035: 90}

	tests := []struct {
		name string
		year int
		want float64
	}{
		{"exact hit", 2030, 120},
		{"before first year holds flat", 2020, 180},
		{"after last year holds flat", 2040, 90},
		{"interior interpolates", 2028, 150},
		{"interior second span", 2033, 102},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interpolateYearCost(table, tt.year); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("interpolateYearCost(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

func TestBatteryCostCacheLoadsOnce(t *testing.T) {
	calls := 0
	cache := NewBatteryCostCache(BatteryCostSourceFunc(func() (map[int]float64, error) {
		calls++
		return map[int]float64{2030: 100}, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if table := cache.Table(); table[2030] != 100 {
				t.Errorf("Table()[2030] = %v, want 100", table[2030])
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("source loaded %d times, want exactly once", calls)
	}
}

func TestBatteryCostCacheFailedLoad(t *testing.T) {
	calls := 0
	cache := NewBatteryCostCache(BatteryCostSourceFunc(func() (map[int]float64, error) {
		calls++
		return nil, errors.New("unavailable")
	}))

	if table := cache.Table(); table != nil {
		t.Errorf("failed load should yield no table, got %v", table)
	}
	// A failed load is not retried.
	cache.Table()
	if calls != 1 {
		t.Errorf("source loaded %d times after failure, want 1", calls)
	}
}

func TestBatteryCostCacheNil(t *testing.T) {
	var cache *BatteryCostCache
	if table := cache.Table(); table != nil {
		t.Errorf("nil cache should yield no table, got %v", table)
	}

	empty := NewBatteryCostCache(nil)
	if table := empty.Table(); table != nil {
		t.Errorf("sourceless cache should yield no table, got %v", table)
	}
}

func TestBatteryCostPerKWhPriority(t *testing.T) {
	s := preparedScenario(t, nil)
	ev := &s.ElectricVehicle

	defaults := map[int]float64{2030: 70}

	// Nothing configured anywhere: fixed fallback.
	if got := batteryCostPerKWh(2030, ev, s, nil); got != fallbackBatteryCostPerKWh {
		t.Errorf("fallback cost = %v, want %v", got, fallbackBatteryCostPerKWh)
	}

	// Defaults apply when vehicle and scenario carry nothing.
	if got := batteryCostPerKWh(2030, ev, s, defaults); got != 70 {
		t.Errorf("default-table cost = %v, want 70", got)
	}

	// Scenario table beats defaults.
	s.BatteryCostProjection = map[int]float64{2030: 85}
	if got := batteryCostPerKWh(2030, ev, s, defaults); got != 85 {
		t.Errorf("scenario-table cost = %v, want 85", got)
	}

	// Vehicle table beats both.
	ev.BatteryCostProjection = map[int]float64{2030: 95}
	if got := batteryCostPerKWh(2030, ev, s, defaults); got != 95 {
		t.Errorf("vehicle-table cost = %v, want 95", got)
	}
}
