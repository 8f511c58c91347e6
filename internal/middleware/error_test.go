package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/recipeid"
	"github.com/pageza/mealwise/backend/internal/types"
)

type errorBody struct {
	Error  string            `json:"error"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

func serveWithError(t *testing.T, production bool, handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
	router := gin.New()
	router.Use(ErrorHandler(production))
	router.POST("/", handler)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var parsed errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &parsed), rr.Body.String())
	return rr, parsed
}

func TestErrorHandlerAppError(t *testing.T) {
	rr, body := serveWithError(t, true, func(c *gin.Context) {
		_ = c.Error(types.NewNotFoundError("meal plan not found"))
	}, "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "meal plan not found", body.Error)
	assert.Equal(t, types.ErrorTypeNotFound, body.Type)
}

func TestErrorHandlerValidation(t *testing.T) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		MealType string `json:"meal_type" binding:"required,oneof=breakfast lunch"`
	}
	rr, body := serveWithError(t, true, func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusOK)
	}, `{"meal_type":"brunch"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, types.ErrorTypeValidation, body.Type)
	assert.Equal(t, "is required", body.Fields["name"])
	assert.Equal(t, "must be one of: breakfast, lunch", body.Fields["meal_type"])
}

func TestErrorHandlerMalformedJSON(t *testing.T) {
	rr, body := serveWithError(t, true, func(c *gin.Context) {
		var req map[string]any
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err)
			return
		}
	}, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "malformed JSON body", body.Error)
}

func TestErrorHandlerInternalIsMaskedInProduction(t *testing.T) {
	failing := func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	}

	rr, body := serveWithError(t, true, failing, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal server error", body.Error)

	_, body = serveWithError(t, false, failing, "")
	assert.Equal(t, "pq: connection refused", body.Error)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	rr, body := serveWithError(t, true, func(c *gin.Context) {
		panic("boom")
	}, "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, types.ErrorTypeInternal, body.Type)
}

func TestToAppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ToAppError(gorm.ErrRecordNotFound).Status)
	assert.Equal(t, http.StatusBadRequest, ToAppError(recipeid.ErrInvalid).Status)

	wrapped := ToAppError(errors.Join(errors.New("context"), types.NewConflictError("taken")))
	assert.Equal(t, http.StatusConflict, wrapped.Status)
}
