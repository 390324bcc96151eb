package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "passlink.backend/internal/domain/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"token": "abc"})
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"token":"abc"}`, w.Body.String())
}

func TestError_AppError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, domainerrors.NotFound("token not found"))
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"code":"ERR_NOT_FOUND","message":"token not found"}`, w.Body.String())
}

func TestError_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", domainerrors.BadRequest("email required"))
	w := record(func(c *gin.Context) {
		Error(c, wrapped)
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
}

func TestError_OpaqueErrorIsMasked(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "pq:")
	require.Contains(t, w.Body.String(), "ERR_INTERNAL")
}

func TestErrorWithCode(t *testing.T) {
	w := record(func(c *gin.Context) {
		ErrorWithCode(c, http.StatusTooManyRequests, "ERR_RATE_LIMITED", "slow down")
	})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"code":"ERR_RATE_LIMITED","message":"slow down"}`, w.Body.String())
}
