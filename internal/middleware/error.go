package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/recipeid"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ErrorHandler renders the last error a handler attached with c.Error as a
// JSON body and recovers panics. Internal error details are hidden when
// production is set.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.NewInternalError(nil))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		appErr := ToAppError(err)
		if appErr.Status >= http.StatusInternalServerError {
			logger.L().Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			if !production && appErr.Type == types.ErrorTypeInternal && appErr.Err != nil {
				detailed := *appErr
				detailed.Message = appErr.Err.Error()
				appErr = &detailed
			}
		}
		c.JSON(appErr.Status, appErr)
	}
}

// ToAppError classifies err. Unknown errors become 500s.
func ToAppError(err error) *types.AppError {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describeRule(fe)
		}
		return types.NewValidationError(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return types.NewValidationError(map[string]string{field: "has the wrong type"})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return types.NewBadRequestError("malformed JSON body")
	case errors.Is(err, io.EOF):
		return types.NewBadRequestError("request body is required")
	case errors.Is(err, recipeid.ErrInvalid):
		return types.NewBadRequestError(err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NewNotFoundError("resource not found")
	}
	return types.NewInternalError(err)
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// UseJSONFieldNames makes validation errors report json/form tag names
// instead of Go struct field names.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}
