// models/supplier.go
package models

// Supplier is a vendor that stock items are bought from.
type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// NewSupplier returns a supplier with a freshly generated id.
func NewSupplier(name, contactInfo, address, email, phone string) *Supplier {
	return &Supplier{
		ID:          NewID(),
		Name:        name,
		ContactInfo: contactInfo,
		Address:     address,
		Email:       email,
		Phone:       phone,
	}
}
