package handlers

import (
	"strconv"

	"cleanstride_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// callerIdentity reads the authenticated user set by AuthMiddleware.
// Handlers behind the auth group can rely on both values being present.
func callerIdentity(c *gin.Context) (string, models.UserRole) {
	callerID := c.GetString("userID")
	callerRole := models.UserRole(c.GetString("userRole"))
	return callerID, callerRole
}

// parsePagination fills page/page_size query params with the listing
// defaults.
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	pageSize := 10
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}
