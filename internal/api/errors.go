package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// fail attaches err to the context for the error middleware, translating
// service errors to HTTP errors first.
func fail(c *gin.Context, err error) {
	_ = c.Error(translate(err))
}

func translate(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMealPlanNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrShoppingListNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrRecipeNotSaved):
		return types.NewNotFoundError(rootMessage(err))
	case errors.Is(err, service.ErrProviderUnavailable):
		return types.NewUpstreamError("recipe provider unavailable", err)
	case errors.Is(err, service.ErrNoRecipesFound):
		return types.NewUnprocessableError(service.ErrNoRecipesFound.Error())
	case errors.Is(err, service.ErrUnsupportedImage):
		return types.NewBadRequestError("avatar must be a JPEG, PNG or WebP image")
	case errors.Is(err, service.ErrStorageUnavailable):
		return types.NewUnavailableError(service.ErrStorageUnavailable.Error())
	case errors.Is(err, mealplan.ErrInvalidWindow):
		return types.NewBadRequestError(err.Error())
	}
	return err
}

// rootMessage returns the innermost error text, dropping wrapping context.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
