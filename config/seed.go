package config

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedData is the first-run content: one admin account plus sample suppliers and items.
type SeedData struct {
	Admin struct {
		ID       string `yaml:"id"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"full_name"`
		Role     string `yaml:"role"`
	} `yaml:"admin"`
	Suppliers []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		ContactInfo string `yaml:"contact_info"`
		Address     string `yaml:"address"`
		Email       string `yaml:"email"`
		Phone       string `yaml:"phone"`
	} `yaml:"suppliers"`
	Items []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Quantity    int    `yaml:"quantity"`
		SupplierID  string `yaml:"supplier_id"`
	} `yaml:"items"`
}

// LoadSeedData parses the embedded seed file.
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

// Seed inserts the admin account when no "admin" user exists, and the sample
// suppliers and items when the suppliers table is empty. hashPassword turns the
// admin's clear-text password into its stored form.
func Seed(db *sql.DB, hashPassword func(string) (string, error), logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	var admins int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", data.Admin.Username).Scan(&admins); err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if admins == 0 {
		stored, err := hashPassword(data.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (id, username, password, fullName, role)
			VALUES (?, ?, ?, ?, ?)`,
			data.Admin.ID, data.Admin.Username, stored, data.Admin.FullName, data.Admin.Role)
		if err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		logger.Info("default admin account created", zap.String("username", data.Admin.Username))
	}

	var suppliers int
	if err := db.QueryRow("SELECT COUNT(*) FROM suppliers").Scan(&suppliers); err != nil {
		return fmt.Errorf("count suppliers: %w", err)
	}
	if suppliers > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}

	for _, s := range data.Suppliers {
		_, err := tx.Exec(`
			INSERT INTO suppliers (id, name, contactInfo, address, email, phone)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.Name, s.ContactInfo, s.Address, s.Email, s.Phone)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert supplier %s: %w", s.ID, err)
		}
	}

	for _, it := range data.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed item %s price: %w", it.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO stock_items (id, name, description, price, quantity, supplier_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			it.ID, it.Name, it.Description, price.String(), it.Quantity, it.SupplierID)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert stock item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	logger.Info("sample data inserted",
		zap.Int("suppliers", len(data.Suppliers)),
		zap.Int("items", len(data.Items)))
	return nil
}
