package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"stockmanager/models"
)

// PieSlices lays points out on a circle: each slice sweeps 360° × value/total
// and starts where the previous one ended. A zero total gives every slice a
// zero sweep.
func PieSlices(points []models.DataPoint) []models.PieSlice {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}

	slices := make([]models.PieSlice, 0, len(points))
	start := 0.0
	for _, p := range points {
		var fraction float64
		if !total.IsZero() {
			fraction = p.Value.Div(total).InexactFloat64()
		}
		sweep := 360 * fraction
		slices = append(slices, models.PieSlice{
			Label:      p.Label,
			Value:      p.Value,
			Percent:    100 * fraction,
			StartAngle: start,
			Sweep:      sweep,
		})
		start += sweep
	}
	return slices
}

// SortedPoints turns a label → value map into points ordered by label, so
// chart output is stable.
func SortedPoints(values map[string]decimal.Decimal) []models.DataPoint {
	points := make([]models.DataPoint, 0, len(values))
	for label, v := range values {
		points = append(points, models.DataPoint{Label: label, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

// QuantityPoints is SortedPoints for integer series such as inventory levels.
func QuantityPoints(values map[string]int) []models.DataPoint {
	conv := make(map[string]decimal.Decimal, len(values))
	for label, q := range values {
		conv[label] = decimal.NewFromInt(int64(q))
	}
	return SortedPoints(conv)
}
