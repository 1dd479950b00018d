package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetOrderReport aggregates the orders inside the requested window.
func (h *ReportHandler) GetOrderReport(c *gin.Context) {
	params := models.ReportRequestParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	callerID, callerRole := callerIdentity(c)
	report, err := h.reportService.OrderReport(params, callerID, callerRole)
	if err != nil {
		utils.LogError(err, "GetOrderReport: Error from reportService.OrderReport")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report window.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboardSummary returns the headline metrics for the admin dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.DashboardSummary()
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from reportService.DashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
