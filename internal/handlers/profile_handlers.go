package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/models"
	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes the admin-side account management endpoints.
type ProfileHandler struct {
	authService services.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(as services.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: as}
}

// CreateProfile provisions an account with an explicit role.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.authService.CreateProfile(req)
	if err != nil {
		utils.LogError(err, "CreateProfile: Error from authService.CreateProfile")
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid profile data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfiles lists accounts with role/active filters.
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	var filters models.ProfileFilters
	if role := c.Query("role"); role != "" {
		filters.Role = &role
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		active := activeStr == "true"
		filters.IsActive = &active
	}
	filters.Page, filters.PageSize = parsePagination(c)

	profiles, totalCount, err := h.authService.GetProfiles(filters)
	if err != nil {
		utils.LogError(err, "GetProfiles: Error from authService.GetProfiles")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid filters.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profiles.", "Internal error"))
		}
		return
	}

	if profiles == nil {
		profiles = []models.Profile{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      profiles,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetProfileByID fetches one account.
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	profileID := c.Param("id")

	profile, err := h.authService.GetProfile(profileID)
	if err != nil {
		utils.LogError(err, "GetProfileByID: Error from authService.GetProfile for ID "+profileID)
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetProfileActive toggles an account on or off.
func (h *ProfileHandler) SetProfileActive(c *gin.Context) {
	profileID := c.Param("id")

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.authService.SetProfileActive(profileID, *req.IsActive)
	if err != nil {
		utils.LogError(err, "SetProfileActive: Error from authService.SetProfileActive for ID "+profileID)
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetProfileRole reassigns an account's role.
func (h *ProfileHandler) SetProfileRole(c *gin.Context) {
	profileID := c.Param("id")

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	profile, err := h.authService.SetProfileRole(profileID, req.Role)
	if err != nil {
		utils.LogError(err, "SetProfileRole: Error from authService.SetProfileRole for ID "+profileID)
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid role.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}
