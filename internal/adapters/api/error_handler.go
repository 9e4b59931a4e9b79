package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/ports"
	errorspkg "weatherview.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFoundError:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.NetworkError, errorspkg.ProtocolError:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errorspkg.PersistenceError:
		statusCode = http.StatusServiceUnavailable
		message = "Storage unavailable"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getCache handles GET /cache requests
func (s *HTTPServerAdapter) getCache(c *gin.Context) {
	metrics, err := s.diagnostics.GetMetrics(c.Request.Context())
	if err != nil {
		s.logger.Error("Error getting cache diagnostics", ports.F("error", err.Error()))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
