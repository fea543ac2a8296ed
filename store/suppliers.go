package store

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"stockmanager/models"
)

// SupplierRepository is the supplier half of the persistence contract.
type SupplierRepository interface {
	GetAllSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplierByID(ctx context.Context, id string) (*models.Supplier, error)
	SaveSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

var _ SupplierRepository = (*Store)(nil)

const supplierSelect = "SELECT id, name, contactInfo, address, email, phone FROM suppliers"

func scanSupplier(row rowScanner) (models.Supplier, error) {
	var (
		sup                            models.Supplier
		contact, address, email, phone sql.NullString
	)
	if err := row.Scan(&sup.ID, &sup.Name, &contact, &address, &email, &phone); err != nil {
		return sup, err
	}
	sup.ContactInfo = contact.String
	sup.Address = address.String
	sup.Email = email.String
	sup.Phone = phone.String
	return sup, nil
}

// GetAllSuppliers returns every supplier in insertion order.
func (s *Store) GetAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, supplierSelect+" ORDER BY rowid")
	if err != nil {
		return nil, s.fault("get all suppliers", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, s.fault("get all suppliers", err)
		}
		suppliers = append(suppliers, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fault("get all suppliers", err)
	}

	return suppliers, nil
}

// GetSupplierByID returns nil, nil when no supplier has the id.
func (s *Store) GetSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	sup, err := scanSupplier(s.db.QueryRowContext(ctx, supplierSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("get supplier", err, zap.String("id", id))
	}
	return &sup, nil
}

// SaveSupplier inserts the supplier, or overwrites every mutable field when the id exists.
func (s *Store) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, contactInfo, address, email, phone)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			contactInfo = excluded.contactInfo,
			address = excluded.address,
			email = excluded.email,
			phone = excluded.phone`,
		supplier.ID, supplier.Name, supplier.ContactInfo, supplier.Address, supplier.Email, supplier.Phone)
	if err != nil {
		return s.fault("save supplier", err, zap.String("id", supplier.ID))
	}
	return nil
}

// DeleteSupplier removes the supplier unless a stock item references it, in
// which case it returns ErrSupplierInUse and nothing is deleted. The guard and
// the delete are one statement.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM suppliers
		WHERE id = ? AND NOT EXISTS (SELECT 1 FROM stock_items WHERE supplier_id = ?)`,
		id, id)
	if err != nil {
		return s.fault("delete supplier", err, zap.String("id", id))
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return s.fault("delete supplier", err, zap.String("id", id))
	}
	if deleted > 0 {
		return nil
	}

	// nothing deleted: either the id is unknown or the guard held
	var refs int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stock_items WHERE supplier_id = ?", id).Scan(&refs)
	if err != nil {
		return s.fault("delete supplier", err, zap.String("id", id))
	}
	if refs > 0 {
		s.logger.Warn("supplier delete rejected", zap.String("id", id), zap.Int("stock_items", refs))
		return ErrSupplierInUse
	}
	return nil
}
