package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/dto/response"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the order creation payload
type CreateOrderRequest struct {
	CustomerID   uuid.UUID                `json:"customer_id" binding:"required"`
	Description  string                   `json:"description" binding:"required"`
	Notes        *string                  `json:"notes"`
	DeliveryDate *time.Time               `json:"delivery_date"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required"`
}

// CreateOrderItemRequest is a line item in the order creation payload
type CreateOrderItemRequest struct {
	ItemName        string     `json:"item_name" binding:"required"`
	InventoryItemID *uuid.UUID `json:"inventory_item_id"`
	Quantity        int        `json:"quantity" binding:"required"`
	UnitPrice       float64    `json:"unit_price"`
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ItemName:        item.ItemName,
			InventoryItemID: item.InventoryItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), &service.PlaceOrderInput{
		UserID:       *userID,
		CustomerID:   req.CustomerID,
		Description:  req.Description,
		Notes:        req.Notes,
		DeliveryDate: req.DeliveryDate,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles retrieving an order with its items and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Unknown order status")
			return
		}
		params.Status = &status
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// TransitionRequest is the status transition payload
type TransitionRequest struct {
	Status    string     `json:"status" binding:"required"`
	AssignTo  *uuid.UUID `json:"assign_to"`
	TaskTitle string     `json:"task_title"`
	DueDate   *time.Time `json:"due_date"`
}

// Transition handles moving an order through its lifecycle
func (h *OrderHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status, err := enum.ParseOrderStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Unknown order status")
		return
	}

	order, err := h.orderService.TransitionStatus(c.Request.Context(), &service.TransitionInput{
		OrderID:   id,
		NewStatus: status,
		AssignTo:  req.AssignTo,
		TaskTitle: req.TaskTitle,
		DueDate:   req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}

// RescheduleRequest is the delivery reschedule payload
type RescheduleRequest struct {
	DeliveryDate time.Time `json:"delivery_date" binding:"required"`
}

// Reschedule handles updating an order's delivery date
func (h *OrderHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.RescheduleDelivery(c.Request.Context(), id, req.DeliveryDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery date updated successfully", order)
}
