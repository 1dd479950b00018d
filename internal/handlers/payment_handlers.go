package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// RecordPayment attaches a payment method to an unpaid order.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	callerID, callerRole := callerIdentity(c)
	payment, err := h.paymentService.RecordPayment(req, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "RecordPayment: Error from paymentService.RecordPayment")
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidPaymentMethod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment method.", err.Error()))
		} else if errors.Is(err, services.ErrOrderAlreadyPaid) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order is already paid.", err.Error()))
		} else if errors.Is(err, services.ErrForbidden) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have access to this order.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists payments with filters.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var filters models.PaymentFilters
	if orderID := c.Query("order_id"); orderID != "" {
		filters.OrderID = &orderID
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filters.CustomerID = &customerID
	}
	if status := c.Query("payment_status"); status != "" {
		if !models.PaymentStatus(status).Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment_status filter.", "unknown payment status: "+status))
			return
		}
		filters.PaymentStatus = &status
	}
	if method := c.Query("payment_method"); method != "" {
		if !models.PaymentMethod(method).Valid() {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment_method filter.", "unknown payment method: "+method))
			return
		}
		filters.PaymentMethod = &method
	}
	filters.Page, filters.PageSize = parsePagination(c)

	callerID, callerRole := callerIdentity(c)
	payments, totalCount, err := h.paymentService.GetPayments(filters, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      payments,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetPaymentByID fetches one payment.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(paymentID)
	if err != nil {
		utils.LogError(err, "GetPaymentByID: Error from paymentService.GetPaymentByID for ID "+paymentID)
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// SettlePayment marks a pending cash-on-delivery payment as paid.
func (h *PaymentHandler) SettlePayment(c *gin.Context) {
	paymentID := c.Param("id")
	callerID, _ := callerIdentity(c)

	payment, err := h.paymentService.SettlePayment(paymentID, callerID)
	if err != nil {
		utils.LogError(err, "SettlePayment: Error from paymentService.SettlePayment for ID "+paymentID)
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidPaymentTransition) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Payment cannot be settled from its current status.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to settle payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// RefundPayment moves a paid payment to refunded.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID := c.Param("id")
	callerID, _ := callerIdentity(c)

	payment, err := h.paymentService.RefundPayment(paymentID, callerID)
	if err != nil {
		utils.LogError(err, "RefundPayment: Error from paymentService.RefundPayment for ID "+paymentID)
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidPaymentTransition) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Payment cannot be refunded from its current status.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to refund payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}
