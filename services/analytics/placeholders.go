package analytics

import (
	"github.com/shopspring/decimal"

	"stockmanager/models"
)

// Items carry no category and there is no sales history, so the category
// breakdown and the monthly sales series are fixed placeholder data, not
// derived from the database.

var categoryBreakdown = []models.DataPoint{
	{Label: "Electronics", Value: decimal.NewFromInt(50000)},
	{Label: "Furniture", Value: decimal.NewFromInt(30000)},
	{Label: "Office Supplies", Value: decimal.NewFromInt(15000)},
	{Label: "Miscellaneous", Value: decimal.NewFromInt(5000)},
}

var monthlySales = []models.DataPoint{
	{Label: "Jan", Value: decimal.NewFromInt(5200)},
	{Label: "Feb", Value: decimal.NewFromInt(6100)},
	{Label: "Mar", Value: decimal.NewFromInt(5800)},
	{Label: "Apr", Value: decimal.NewFromInt(6700)},
	{Label: "May", Value: decimal.NewFromInt(7500)},
	{Label: "Jun", Value: decimal.NewFromInt(8100)},
	{Label: "Jul", Value: decimal.NewFromInt(7900)},
	{Label: "Aug", Value: decimal.NewFromInt(8200)},
	{Label: "Sep", Value: decimal.NewFromInt(8800)},
	{Label: "Oct", Value: decimal.NewFromInt(9200)},
	{Label: "Nov", Value: decimal.NewFromInt(9800)},
	{Label: "Dec", Value: decimal.NewFromInt(10500)},
}

// InventoryValueByCategory returns the placeholder category series.
func InventoryValueByCategory() []models.DataPoint {
	return append([]models.DataPoint(nil), categoryBreakdown...)
}

// MonthlySales returns the placeholder Jan..Dec sales series.
func MonthlySales() []models.DataPoint {
	return append([]models.DataPoint(nil), monthlySales...)
}
