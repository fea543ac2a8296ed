// models/analytics.go
package models

import "github.com/shopspring/decimal"

// DataPoint is one labelled value of a chart series.
type DataPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// PieSlice is a DataPoint placed on a pie chart. Angles are in degrees.
type PieSlice struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percent    float64         `json:"percent"`
	StartAngle float64         `json:"start_angle"`
	Sweep      float64         `json:"sweep"`
}
