package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrDietNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Diet not found"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	default:
		s.logger.Error(c.Request.Context(), err.Error(), "route", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
