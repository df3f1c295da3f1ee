package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/dto/response"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
)

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateInventoryRequest is the inventory item creation payload
type CreateInventoryRequest struct {
	Name              string  `json:"name" binding:"required"`
	Type              string  `json:"type"`
	Quantity          int     `json:"quantity"`
	Unit              string  `json:"unit"`
	Price             float64 `json:"price"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// Create handles creating an inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), &service.CreateInventoryInput{
		UserID:            *userID,
		Name:              req.Name,
		Type:              req.Type,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		Price:             req.Price,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Inventory item created successfully", item)
}

// UpdateInventoryRequest is the inventory item update payload
type UpdateInventoryRequest struct {
	Name              *string  `json:"name"`
	Type              *string  `json:"type"`
	Unit              *string  `json:"unit"`
	Price             *float64 `json:"price"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	Discontinued      *bool    `json:"discontinued"`
}

// Update handles updating an inventory item's descriptive fields
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), id, &service.UpdateInventoryInput{
		Name:              req.Name,
		Type:              req.Type,
		Unit:              req.Unit,
		Price:             req.Price,
		LowStockThreshold: req.LowStockThreshold,
		Discontinued:      req.Discontinued,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory item updated successfully", item)
}

// RestockRequest is the restock payload
type RestockRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// Restock handles adding stock to an inventory item
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.Restock(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory item restocked successfully", item)
}

// Get handles retrieving an inventory item
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	item, err := h.inventoryService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory item retrieved successfully", item)
}

// Delete handles deleting an inventory item
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InventoryFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseInventoryStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Unknown inventory status")
			return
		}
		params.Status = &status
	}

	if lowStock := c.Query("low_stock"); lowStock == "true" {
		params.LowStock = true
	}

	result, err := h.inventoryService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Inventory items retrieved successfully", result)
}

// LowStock handles listing items at or below their restocking threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}
