// models/stock_item.go
package models

import "github.com/shopspring/decimal"

// StockItem is a line of inventory. Supplier is a copy of the supplier row
// read through a join, not a live reference; its fields are empty when the
// referenced supplier no longer exists. Price is stored as its decimal text,
// so it reads back exactly.
type StockItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Supplier    Supplier        `json:"supplier"`
}

// NewStockItem returns an item with a freshly generated id.
func NewStockItem(name, description string, price decimal.Decimal, quantity int, supplier Supplier) *StockItem {
	return &StockItem{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Supplier:    supplier,
	}
}

// TotalValue is price × quantity.
func (i StockItem) TotalValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StockItemView is the JSON shape handed to clients; it carries the derived
// total value alongside the stored fields.
type StockItemView struct {
	StockItem
	TotalValue decimal.Decimal `json:"total_value"`
}

// View attaches the derived fields.
func (i StockItem) View() StockItemView {
	return StockItemView{StockItem: i, TotalValue: i.TotalValue()}
}

// Views converts a slice of items, never returning nil.
func Views(items []StockItem) []StockItemView {
	out := make([]StockItemView, 0, len(items))
	for _, it := range items {
		out = append(out, it.View())
	}
	return out
}
