package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the service catalog endpoints.
type ServiceHandler struct {
	catalogService services.CatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(cs services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: cs}
}

// CreateService adds a catalog entry.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req services.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.catalogService.CreateService(req)
	if err != nil {
		utils.LogError(err, "CreateService: Error from catalogService.CreateService")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid service data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create service.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetServices lists the catalog. Customers always get active entries only;
// operators see everything unless they pass active_only=true.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	_, callerRole := callerIdentity(c)

	activeOnly := c.Query("active_only") == "true"
	if callerRole == models.RoleCustomer {
		activeOnly = true
	}

	list, err := h.catalogService.GetServices(activeOnly)
	if err != nil {
		utils.LogError(err, "GetServices: Error from catalogService.GetServices")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch services.", "Internal error"))
		return
	}
	if list == nil {
		list = []models.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GetServiceByID fetches one catalog entry.
func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	serviceID := c.Param("id")

	service, err := h.catalogService.GetServiceByID(serviceID)
	if err != nil {
		utils.LogError(err, "GetServiceByID: Error from catalogService.GetServiceByID for ID "+serviceID)
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch service.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, service)
}

// UpdateService edits a catalog entry.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	serviceID := c.Param("id")

	var req services.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updated, err := h.catalogService.UpdateService(serviceID, req)
	if err != nil {
		utils.LogError(err, "UpdateService: Error from catalogService.UpdateService for ID "+serviceID)
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update service.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteService removes a catalog entry.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	serviceID := c.Param("id")

	if err := h.catalogService.DeleteService(serviceID); err != nil {
		utils.LogError(err, "DeleteService: Error from catalogService.DeleteService for ID "+serviceID)
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Service not found.", err.Error()))
		} else if errors.Is(err, services.ErrServiceInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Service is referenced by orders; deactivate it instead.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete service.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
