package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{logger: mocks.NewQuietLogger(t)}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", errors.NewValidationError("validation failed"), http.StatusBadRequest, "validation failed"},
		{"not found", errors.NewNotFoundError("resource not found"), http.StatusNotFound, "resource not found"},
		{"network", errors.NewNetworkError("dial failed", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"protocol", errors.NewProtocolError("bad json", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"persistence", errors.NewPersistenceError("disk full", nil), http.StatusServiceUnavailable, "Storage unavailable"},
		{"configuration", errors.NewConfigurationError("missing key", nil), http.StatusInternalServerError, "Internal server error"},
		{"unknown type", errors.New(errors.ErrorTypeUnknown, "generic error"), http.StatusInternalServerError, "Internal server error"},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) { server.handleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantMessage, response.Error)
		})
	}
}
