package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"stockmanager/models"
)

// StockItemRepository is the stock item half of the persistence contract.
type StockItemRepository interface {
	GetAllStockItems(ctx context.Context) ([]models.StockItem, error)
	GetStockItemByID(ctx context.Context, id string) (*models.StockItem, error)
	SaveStockItem(ctx context.Context, item *models.StockItem) error
	DeleteStockItem(ctx context.Context, id string) error
	SearchStockItems(ctx context.Context, query string) ([]models.StockItem, error)
}

var _ StockItemRepository = (*Store)(nil)

// Supplier columns come from a left join so an item whose supplier is gone
// still reads, with empty supplier fields.
const stockItemSelect = `
	SELECT
		i.id, i.name, i.description, i.price, i.quantity, i.supplier_id,
		s.name, s.contactInfo, s.address, s.email, s.phone
	FROM
		stock_items i
	LEFT JOIN
		suppliers s ON i.supplier_id = s.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockItem(row rowScanner) (models.StockItem, error) {
	var (
		item                                   models.StockItem
		description, supplierID                sql.NullString
		sName, sContact, sAddr, sEmail, sPhone sql.NullString
	)
	err := row.Scan(
		&item.ID, &item.Name, &description, &item.Price, &item.Quantity, &supplierID,
		&sName, &sContact, &sAddr, &sEmail, &sPhone,
	)
	if err != nil {
		return item, err
	}

	item.Description = description.String
	item.Supplier = models.Supplier{
		ID:          supplierID.String,
		Name:        sName.String,
		ContactInfo: sContact.String,
		Address:     sAddr.String,
		Email:       sEmail.String,
		Phone:       sPhone.String,
	}
	return item, nil
}

func (s *Store) queryStockItems(ctx context.Context, op string, query string, args ...any) ([]models.StockItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fault(op, err)
	}
	defer rows.Close()

	items := []models.StockItem{}
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, s.fault(op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fault(op, err)
	}

	return items, nil
}

// GetAllStockItems returns every item in insertion order.
func (s *Store) GetAllStockItems(ctx context.Context) ([]models.StockItem, error) {
	return s.queryStockItems(ctx, "get all stock items", stockItemSelect+" ORDER BY i.rowid")
}

// GetStockItemByID returns nil, nil when no item has the id.
func (s *Store) GetStockItemByID(ctx context.Context, id string) (*models.StockItem, error) {
	row := s.db.QueryRowContext(ctx, stockItemSelect+" WHERE i.id = ?", id)

	item, err := scanStockItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("get stock item", err, zap.String("id", id))
	}

	return &item, nil
}

// SaveStockItem inserts the item, or overwrites every mutable field when the id exists.
func (s *Store) SaveStockItem(ctx context.Context, item *models.StockItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_items (id, name, description, price, quantity, supplier_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			quantity = excluded.quantity,
			supplier_id = excluded.supplier_id`,
		item.ID, item.Name, item.Description, item.Price.String(), item.Quantity, nullString(item.Supplier.ID))
	if err != nil {
		return s.fault("save stock item", err, zap.String("id", item.ID))
	}
	return nil
}

// DeleteStockItem removes the row; deleting an unknown id is not an error.
func (s *Store) DeleteStockItem(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM stock_items WHERE id = ?", id); err != nil {
		return s.fault("delete stock item", err, zap.String("id", id))
	}
	return nil
}

// SearchStockItems matches query as a substring of name or description,
// ignoring case (Unicode, not just ASCII). An empty query matches everything.
func (s *Store) SearchStockItems(ctx context.Context, query string) ([]models.StockItem, error) {
	items, err := s.queryStockItems(ctx, "search stock items", stockItemSelect+" ORDER BY i.rowid")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := []models.StockItem{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) || strings.Contains(strings.ToLower(it.Description), needle) {
			matches = append(matches, it)
		}
	}
	return matches, nil
}
