package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockmanager/models"
	"stockmanager/store"
)

type supplierRequest struct {
	Name        string `json:"name" binding:"notblank"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
}

func (r supplierRequest) applyTo(s *models.Supplier) {
	s.Name = strings.TrimSpace(r.Name)
	s.ContactInfo = strings.TrimSpace(r.ContactInfo)
	s.Address = strings.TrimSpace(r.Address)
	s.Email = strings.TrimSpace(r.Email)
	s.Phone = strings.TrimSpace(r.Phone)
}

// ListSuppliers retrieves all suppliers.
func (h *Handlers) ListSuppliers(c *gin.Context) {
	suppliers, err := h.Store.GetAllSuppliers(c.Request.Context())
	if err != nil {
		h.storageError(c, "failed to load suppliers", err)
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a supplier by id.
func (h *Handlers) GetSupplier(c *gin.Context) {
	sup, err := h.Store.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storageError(c, "failed to load supplier", err)
		return
	}
	if sup == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	c.JSON(http.StatusOK, sup)
}

// CreateSupplier adds a supplier with a generated id.
func (h *Handlers) CreateSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sup := &models.Supplier{ID: models.NewID()}
	req.applyTo(sup)
	if err := h.Store.SaveSupplier(c.Request.Context(), sup); err != nil {
		h.storageError(c, "failed to save supplier", err)
		return
	}

	c.JSON(http.StatusCreated, sup)
}

// UpdateSupplier overwrites an existing supplier's fields.
func (h *Handlers) UpdateSupplier(c *gin.Context) {
	ctx := c.Request.Context()

	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sup, err := h.Store.GetSupplierByID(ctx, c.Param("id"))
	if err != nil {
		h.storageError(c, "failed to load supplier", err)
		return
	}
	if sup == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	req.applyTo(sup)
	if err := h.Store.SaveSupplier(ctx, sup); err != nil {
		h.storageError(c, "failed to save supplier", err)
		return
	}

	c.JSON(http.StatusOK, sup)
}

// DeleteSupplier removes a supplier unless stock items still reference it.
func (h *Handlers) DeleteSupplier(c *gin.Context) {
	err := h.Store.DeleteSupplier(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrSupplierInUse) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.storageError(c, "failed to delete supplier", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
