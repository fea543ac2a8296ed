// Package analytics derives summaries from the current stock item list.
// Every call fetches the full list and reduces it in memory.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmanager/models"
)

// ItemLister is the slice of the persistence layer analytics reads from.
type ItemLister interface {
	GetAllStockItems(ctx context.Context) ([]models.StockItem, error)
}

// Service computes inventory summaries.
type Service struct {
	items  ItemLister
	logger *zap.Logger
}

// NewService wires a new analytics service.
func NewService(items ItemLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{items: items, logger: logger}
}

func (s *Service) load(ctx context.Context) ([]models.StockItem, error) {
	items, err := s.items.GetAllStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock items: %w", err)
	}
	return items, nil
}

// TotalInventoryValue sums price × quantity over all items; zero when there are none.
func (s *Service) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totalValue(items), nil
}

// LowStockItems returns the items whose quantity is strictly below threshold,
// in the order they were stored.
func (s *Service) LowStockItems(ctx context.Context, threshold int) ([]models.StockItem, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return lowStock(items, threshold), nil
}

// ValueBySupplier sums item value per supplier display name.
//
// Grouping is by name, not id: two distinct suppliers sharing a name are
// merged into one total. Items whose supplier row is missing are grouped
// under UnknownSupplier.
func (s *Service) ValueBySupplier(ctx context.Context) (map[string]decimal.Decimal, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal)
	for _, it := range items {
		name := it.Supplier.Name
		if name == "" {
			name = UnknownSupplier
		}
		out[name] = out[name].Add(it.TotalValue())
	}
	return out, nil
}

// UnknownSupplier labels value held by items without a readable supplier.
const UnknownSupplier = "Unknown supplier"

// InventoryLevels maps item name to quantity. When names collide the item
// stored last wins.
func (s *Service) InventoryLevels(ctx context.Context) (map[string]int, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(items))
	for _, it := range items {
		out[it.Name] = it.Quantity
	}
	return out, nil
}

// Dashboard gathers the overview numbers from a single fetch.
func (s *Service) Dashboard(ctx context.Context, threshold int) (*models.DashboardSummary, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	low := lowStock(items, threshold)
	return &models.DashboardSummary{
		ItemCount:     len(items),
		TotalValue:    totalValue(items),
		LowStockCount: len(low),
		LowStockLimit: threshold,
		LowStockItems: models.Views(low),
	}, nil
}

func totalValue(items []models.StockItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalValue())
	}
	return total
}

func lowStock(items []models.StockItem, threshold int) []models.StockItem {
	out := []models.StockItem{}
	for _, it := range items {
		if it.Quantity < threshold {
			out = append(out, it)
		}
	}
	return out
}
