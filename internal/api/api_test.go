package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// setupTestRouter mounts h under /api/v1 behind the error middleware. A
// non-nil userID is set on every request as if authentication passed.
func setupTestRouter(userID uuid.UUID, h routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.UseJSONFieldNames()

	router := gin.New()
	router.Use(middleware.ErrorHandler(false))
	v1 := router.Group("/api/v1")
	if userID != uuid.Nil {
		v1.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserID, userID)
			c.Next()
		})
	}
	h.RegisterRoutes(v1)
	return router
}

func performRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"meal plan not found", fmt.Errorf("load: %w", service.ErrMealPlanNotFound), http.StatusNotFound},
		{"item not found", service.ErrItemNotFound, http.StatusNotFound},
		{"recipe not saved", service.ErrRecipeNotSaved, http.StatusNotFound},
		{"recipe not found", service.ErrRecipeNotFound, http.StatusNotFound},
		{"provider down", fmt.Errorf("%w: timeout", service.ErrProviderUnavailable), http.StatusBadGateway},
		{"no recipes", service.ErrNoRecipesFound, http.StatusUnprocessableEntity},
		{"unsupported image", service.ErrUnsupportedImage, http.StatusBadRequest},
		{"no storage", service.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"bad window", fmt.Errorf("%w: end before start", mealplan.ErrInvalidWindow), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *types.AppError
			require.True(t, errors.As(translate(tt.err), &appErr))
			assert.Equal(t, tt.status, appErr.Status)
		})
	}

	plain := errors.New("boom")
	assert.Same(t, plain, translate(plain))
}

func TestNotFoundMessageDropsContext(t *testing.T) {
	err := translate(fmt.Errorf("plan 123: %w", service.ErrMealPlanNotFound))
	assert.Equal(t, service.ErrMealPlanNotFound.Error(), err.(*types.AppError).Message)
}
