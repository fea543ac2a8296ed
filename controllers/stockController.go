package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockmanager/models"
)

type stockItemRequest struct {
	Name        string           `json:"name" binding:"notblank"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required,gte=0"`
	Quantity    *int             `json:"quantity" binding:"required,gte=0"`
	SupplierID  string           `json:"supplier_id" binding:"notblank"`
}

var errUnknownSupplier = errors.New("supplier not found")

// resolveSupplier loads the supplier the request points at.
func (h *Handlers) resolveSupplier(c *gin.Context, id string) (*models.Supplier, bool) {
	sup, err := h.Store.GetSupplierByID(c.Request.Context(), id)
	if err != nil {
		h.storageError(c, "failed to load supplier", err)
		return nil, false
	}
	if sup == nil {
		badRequest(c, errUnknownSupplier)
		return nil, false
	}
	return sup, true
}

// ListStockItems returns every item, or those matching ?q= when it is not blank.
func (h *Handlers) ListStockItems(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.TrimSpace(c.Query("q"))

	var (
		items []models.StockItem
		err   error
	)
	if query == "" {
		items, err = h.Store.GetAllStockItems(ctx)
	} else {
		items, err = h.Store.SearchStockItems(ctx, query)
	}
	if err != nil {
		h.storageError(c, "failed to load stock items", err)
		return
	}

	c.JSON(http.StatusOK, models.Views(items))
}

// GetStockItem retrieves a stock item by id.
func (h *Handlers) GetStockItem(c *gin.Context) {
	item, err := h.Store.GetStockItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storageError(c, "failed to load stock item", err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		return
	}

	c.JSON(http.StatusOK, item.View())
}

// CreateStockItem adds a new item with a generated id.
func (h *Handlers) CreateStockItem(c *gin.Context) {
	var req stockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sup, ok := h.resolveSupplier(c, req.SupplierID)
	if !ok {
		return
	}

	item := models.NewStockItem(strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), *req.Price, *req.Quantity, *sup)
	if err := h.Store.SaveStockItem(c.Request.Context(), item); err != nil {
		h.storageError(c, "failed to save stock item", err)
		return
	}

	c.JSON(http.StatusCreated, item.View())
}

// UpdateStockItem overwrites an existing item's fields.
func (h *Handlers) UpdateStockItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req stockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.Store.GetStockItemByID(ctx, c.Param("id"))
	if err != nil {
		h.storageError(c, "failed to load stock item", err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock item not found"})
		return
	}

	sup, ok := h.resolveSupplier(c, req.SupplierID)
	if !ok {
		return
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Description = strings.TrimSpace(req.Description)
	item.Price = *req.Price
	item.Quantity = *req.Quantity
	item.Supplier = *sup

	if err := h.Store.SaveStockItem(ctx, item); err != nil {
		h.storageError(c, "failed to save stock item", err)
		return
	}

	c.JSON(http.StatusOK, item.View())
}

// DeleteStockItem removes a stock item.
func (h *Handlers) DeleteStockItem(c *gin.Context) {
	if err := h.Store.DeleteStockItem(c.Request.Context(), c.Param("id")); err != nil {
		h.storageError(c, "failed to delete stock item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}
