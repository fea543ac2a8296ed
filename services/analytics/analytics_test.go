package analytics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"stockmanager/config"
	"stockmanager/models"
	"stockmanager/store"
)

type fakeLister struct {
	items []models.StockItem
	err   error
}

func (f *fakeLister) GetAllStockItems(context.Context) ([]models.StockItem, error) {
	return f.items, f.err
}

func item(id, name string, price string, qty int, supplier string) models.StockItem {
	return models.StockItem{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
		Supplier: models.Supplier{ID: "S-" + supplier, Name: supplier},
	}
}

func TestTotalInventoryValue(t *testing.T) {
	ctx := context.Background()

	empty := NewService(&fakeLister{}, nil)
	total, err := empty.TotalInventoryValue(ctx)
	if err != nil || !total.IsZero() {
		t.Fatalf("empty total = (%s, %v), want 0", total, err)
	}

	svc := NewService(&fakeLister{items: []models.StockItem{
		item("1", "Laptop", "1200", 15, "Tech"),
		item("2", "Pens", "0.35", 3, "Office"),
	}}, nil)
	total, err = svc.TotalInventoryValue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.RequireFromString("18001.05"); !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestLowStockItemsBoundary(t *testing.T) {
	svc := NewService(&fakeLister{items: []models.StockItem{
		item("a", "A", "1", 9, "X"),
		item("b", "B", "1", 10, "X"),
		item("c", "C", "1", 0, "X"),
		item("d", "D", "1", 11, "X"),
	}}, nil)

	low, err := svc.LowStockItems(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 2 || low[0].ID != "a" || low[1].ID != "c" {
		t.Fatalf("low stock = %+v, want [a c] in stored order", low)
	}
}

func TestValueBySupplierMergesByName(t *testing.T) {
	items := []models.StockItem{
		item("1", "Laptop", "100", 2, "Acme"),
		item("2", "Chair", "50", 1, "Acme"),
		item("3", "Paper", "5", 10, "Office"),
		{ID: "4", Name: "Orphan", Price: decimal.NewFromInt(7), Quantity: 1, Supplier: models.Supplier{ID: "GONE"}},
	}
	// same display name, different supplier id: merged
	items[1].Supplier.ID = "S-other"

	got, err := NewService(&fakeLister{items: items}, nil).ValueBySupplier(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("groups = %v", got)
	}
	if !got["Acme"].Equal(decimal.NewFromInt(250)) {
		t.Errorf("Acme = %s, want 250", got["Acme"])
	}
	if !got["Office"].Equal(decimal.NewFromInt(50)) {
		t.Errorf("Office = %s, want 50", got["Office"])
	}
	if !got[UnknownSupplier].Equal(decimal.NewFromInt(7)) {
		t.Errorf("unknown = %s, want 7", got[UnknownSupplier])
	}
}

func TestInventoryLevelsLastWriteWins(t *testing.T) {
	got, err := NewService(&fakeLister{items: []models.StockItem{
		item("1", "Desk", "1", 4, "X"),
		item("2", "Lamp", "1", 8, "X"),
		item("3", "Desk", "1", 6, "X"),
	}}, nil).InventoryLevels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["Desk"] != 6 || got["Lamp"] != 8 {
		t.Fatalf("levels = %v", got)
	}
}

func TestStorageErrorPropagates(t *testing.T) {
	boom := errors.New("disk gone")
	svc := NewService(&fakeLister{err: boom}, nil)
	ctx := context.Background()

	if _, err := svc.TotalInventoryValue(ctx); !errors.Is(err, boom) {
		t.Errorf("TotalInventoryValue err = %v", err)
	}
	if _, err := svc.LowStockItems(ctx, 10); !errors.Is(err, boom) {
		t.Errorf("LowStockItems err = %v", err)
	}
	if _, err := svc.ValueBySupplier(ctx); !errors.Is(err, boom) {
		t.Errorf("ValueBySupplier err = %v", err)
	}
	if _, err := svc.InventoryLevels(ctx); !errors.Is(err, boom) {
		t.Errorf("InventoryLevels err = %v", err)
	}
	if _, err := svc.Dashboard(ctx, 10); !errors.Is(err, boom) {
		t.Errorf("Dashboard err = %v", err)
	}
}

func TestPlaceholderSeries(t *testing.T) {
	cats := InventoryValueByCategory()
	if len(cats) != 4 || cats[0].Label != "Electronics" || !cats[0].Value.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("categories = %+v", cats)
	}
	cats[0].Label = "mutated"
	if InventoryValueByCategory()[0].Label != "Electronics" {
		t.Fatal("placeholder data is shared with callers")
	}

	months := MonthlySales()
	if len(months) != 12 || months[0].Label != "Jan" || months[11].Label != "Dec" {
		t.Fatalf("months = %+v", months)
	}
	if !months[11].Value.Equal(decimal.NewFromInt(10500)) {
		t.Fatalf("Dec = %s", months[11].Value)
	}
}

func TestPieSlices(t *testing.T) {
	slices := PieSlices([]models.DataPoint{
		{Label: "a", Value: decimal.NewFromInt(1)},
		{Label: "b", Value: decimal.NewFromInt(1)},
		{Label: "c", Value: decimal.NewFromInt(2)},
	})
	if len(slices) != 3 {
		t.Fatalf("got %d slices", len(slices))
	}

	wantStart := []float64{0, 90, 180}
	wantSweep := []float64{90, 90, 180}
	for i, s := range slices {
		if math.Abs(s.StartAngle-wantStart[i]) > 1e-9 || math.Abs(s.Sweep-wantSweep[i]) > 1e-9 {
			t.Errorf("slice %s = start %v sweep %v", s.Label, s.StartAngle, s.Sweep)
		}
	}
	if math.Abs(slices[2].Percent-50) > 1e-9 {
		t.Errorf("percent = %v, want 50", slices[2].Percent)
	}

	zero := PieSlices([]models.DataPoint{{Label: "z", Value: decimal.Zero}})
	if zero[0].Sweep != 0 || zero[0].Percent != 0 {
		t.Fatalf("zero total slice = %+v", zero[0])
	}
}

func TestSortedPoints(t *testing.T) {
	points := QuantityPoints(map[string]int{"b": 2, "a": 1})
	if len(points) != 2 || points[0].Label != "a" || !points[1].Value.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("points = %+v", points)
	}
}

func TestLowStockAfterResaveWithSeedData(t *testing.T) {
	ctx := context.Background()
	db, err := config.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := config.CreateTables(db, nil); err != nil {
		t.Fatal(err)
	}
	if err := config.Seed(db, func(p string) (string, error) { return p, nil }, nil); err != nil {
		t.Fatal(err)
	}
	st := store.New(db, nil)
	defer st.Close()

	// keep only I001 and I004
	for _, id := range []string{"I002", "I003", "I005"} {
		if err := st.DeleteStockItem(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewService(st, nil)
	low, err := svc.LowStockItems(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 0 {
		t.Fatalf("low stock before update = %+v, want none", low)
	}

	laptop, err := st.GetStockItemByID(ctx, "I001")
	if err != nil || laptop == nil {
		t.Fatalf("GetStockItemByID = (%v, %v)", laptop, err)
	}
	laptop.Quantity = 5
	if err := st.SaveStockItem(ctx, laptop); err != nil {
		t.Fatal(err)
	}

	low, err = svc.LowStockItems(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 1 || low[0].ID != "I001" {
		t.Fatalf("low stock after update = %+v, want [I001]", low)
	}

	summary, err := svc.Dashboard(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	// 1200*5 + 5*200
	if summary.ItemCount != 2 || summary.LowStockCount != 1 || !summary.TotalValue.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("dashboard = %+v", summary)
	}
}
