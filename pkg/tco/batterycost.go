package tco

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/fleetscope/evtco/pkg/scenario"
	"github.com/fleetscope/evtco/pkg/vehicle"
)

// fallbackBatteryCostPerKWh is used when no projection data exists at all.
const fallbackBatteryCostPerKWh = 100.0

// BatteryCostSource supplies a default battery pack cost projection
// (calendar year -> AUD/kWh). Implementations live outside the engine; the
// engine never performs file I/O itself.
type BatteryCostSource interface {
	BatteryCosts() (map[int]float64, error)
}

// BatteryCostSourceFunc adapts a function to the BatteryCostSource interface.
type BatteryCostSourceFunc func() (map[int]float64, error)

func (f BatteryCostSourceFunc) BatteryCosts() (map[int]float64, error) { return f() }

// FileBatteryCostSource reads the projection from a YAML file each time the
// cache asks for it, which in practice is once per process.
func FileBatteryCostSource(path string) BatteryCostSource {
	return BatteryCostSourceFunc(func() (map[int]float64, error) {
		return scenario.LoadBatteryCosts(path)
	})
}

// BatteryCostCache loads a default projection lazily, exactly once, and
// serves it to every subsequent run. Safe for concurrent use; a failed load
// resolves to "no data" and is not retried.
type BatteryCostCache struct {
	source BatteryCostSource

	once  sync.Once
	table map[int]float64
}

// NewBatteryCostCache wraps a source. A nil source yields an always-empty
// cache, which makes the lookup fall through to the fixed fallback cost.
func NewBatteryCostCache(source BatteryCostSource) *BatteryCostCache {
	return &BatteryCostCache{source: source}
}

// Table returns the cached projection, loading it on first use.
func (c *BatteryCostCache) Table() map[int]float64 {
	if c == nil {
		return nil
	}
	c.once.Do(func() {
		if c.source == nil {
			return
		}
		table, err := c.source.BatteryCosts()
		if err != nil {
			slog.Warn("loading default battery costs failed; continuing without", "error", err)
			return
		}
		c.table = table
		slog.Info("loaded default battery cost projection", "entries", len(table))
	})
	return c.table
}

// batteryCostPerKWh resolves the pack cost for a calendar year. Projection
// priority: the vehicle's own table, then the scenario-level table, then
// the cached default table, then the fixed fallback.
func batteryCostPerKWh(year int, ev *vehicle.Electric, s *scenario.Scenario, defaults map[int]float64) float64 {
	for _, table := range []map[int]float64{ev.BatteryCostProjection, s.BatteryCostProjection, defaults} {
		if len(table) > 0 {
			return interpolateYearCost(table, year)
		}
	}
	slog.Warn("no battery cost projection available; using fallback",
		"year", year, "fallback_aud_per_kwh", fallbackBatteryCostPerKWh)
	return fallbackBatteryCostPerKWh
}

// interpolateYearCost evaluates a sparse year -> cost table at the given
// year: exact hits return directly, years outside the projected range hold
// the nearest endpoint flat, and interior years interpolate linearly.
func interpolateYearCost(table map[int]float64, year int) float64 {
	if cost, ok := table[year]; ok {
		return cost
	}

	years := make([]int, 0, len(table))
	for y := range table {
		years = append(years, y)
	}
	sort.Ints(years)

	switch {
	case year < years[0]:
		return table[years[0]]
	case year > years[len(years)-1]:
		return table[years[len(years)-1]]
	}

	for i := 1; i < len(years); i++ {
		if year < years[i] {
			lo, hi := years[i-1], years[i]
			t := float64(year-lo) / float64(hi-lo)
			return table[lo] + t*(table[hi]-table[lo])
		}
	}
	return table[years[len(years)-1]]
}
