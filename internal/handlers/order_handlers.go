package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	callerID, callerRole := callerIdentity(c)
	createdOrder, err := h.orderService.CreateOrder(req, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service not found.", err.Error()))
		} else if errors.Is(err, services.ErrServiceInactive) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Service is not available for ordering.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdOrder)
}

// GetOrders handles fetching orders with filters.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters

	if customerID := c.Query("customer_id"); customerID != "" {
		filters.CustomerID = &customerID
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		filters.ServiceID = &serviceID
	}
	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status filter.", "unknown status: "+status))
			return
		}
		filters.Status = &status
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		if !models.PaymentStatus(paymentStatus).Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment_status filter.", "unknown payment status: "+paymentStatus))
			return
		}
		filters.PaymentStatus = &paymentStatus
	}
	if date := c.Query("date"); date != "" {
		filters.Date = &date
	}
	filters.Page, filters.PageSize = parsePagination(c)

	callerID, callerRole := callerIdentity(c)
	orders, totalCount, err := h.orderService.GetOrders(filters, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch orders.", "Internal error"))
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      orders,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetOrderByID handles fetching a single order by ID.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID := c.Param("id")
	callerID, callerRole := callerIdentity(c)

	order, err := h.orderService.GetOrderByID(orderID, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID for ID "+orderID)
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else if errors.Is(err, services.ErrForbidden) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have access to this order.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles moving an order along its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOrderStatus: Failed to bind JSON for ID "+orderID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	callerID, _ := callerIdentity(c)
	updatedOrder, err := h.orderService.UpdateOrderStatus(orderID, req, callerID)
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus for ID "+orderID)
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidStatusTransition) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Status transition not allowed.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update order status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updatedOrder)
}

// GetOrderTracking handles fetching the tracking projection for an order.
func (h *OrderHandler) GetOrderTracking(c *gin.Context) {
	orderID := c.Param("id")
	callerID, callerRole := callerIdentity(c)

	view, err := h.orderService.GetOrderTracking(orderID, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "GetOrderTracking: Error from orderService.GetOrderTracking for ID "+orderID)
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else if errors.Is(err, services.ErrForbidden) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have access to this order.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order tracking.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, view)
}
