// models/dashboard.go
package models

import "github.com/shopspring/decimal"

// DashboardSummary is the overview shown after login.
type DashboardSummary struct {
	ItemCount     int             `json:"item_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	LowStockLimit int             `json:"low_stock_threshold"`
	LowStockItems []StockItemView `json:"low_stock_items"`
}
