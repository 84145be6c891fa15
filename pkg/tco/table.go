package tco

import "math"

// Row is one analysis year of a cost table. Year is 1-based; Costs maps
// component names to dollar amounts. Components that failed to price for
// this year are listed in Missing and excluded from Total.
type Row struct {
	Year         int                `json:"year"`
	CalendarYear int                `json:"calendar_year"`
	Costs        map[string]float64 `json:"costs"`
	Missing      []string           `json:"missing,omitempty"`
	Total        float64            `json:"total"`
}

// CostTable holds per-year component costs for a single vehicle.
type CostTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Total sums the row totals.
func (t *CostTable) Total() float64 {
	total := 0.0
	for _, row := range t.Rows {
		total += row.Total
	}
	return total
}

// Discounted returns a copy of the table with every cost divided by
// (1+rate)^(year-1), so year 1 is undiscounted. A rate of zero returns
// an identical copy.
func (t *CostTable) Discounted(rate float64) *CostTable {
	out := &CostTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		factor := math.Pow(1+rate, float64(row.Year-1))
		disc := Row{
			Year:         row.Year,
			CalendarYear: row.CalendarYear,
			Costs:        make(map[string]float64, len(row.Costs)),
			Missing:      append([]string(nil), row.Missing...),
		}
		for name, cost := range row.Costs {
			v := cost / factor
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			disc.Costs[name] = v
			disc.Total += v
		}
		out.Rows = append(out.Rows, disc)
	}
	return out
}

// CumulativeTotals returns the running sum of row totals, one entry per
// analysis year.
func (t *CostTable) CumulativeTotals() []float64 {
	sums := make([]float64, len(t.Rows))
	running := 0.0
	for i, row := range t.Rows {
		running += row.Total
		sums[i] = running
	}
	return sums
}
