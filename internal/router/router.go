package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/api"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/service"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	DB                *gorm.DB
	Tokens            middleware.TokenValidator
	Users             middleware.UserResolver
	Profiles          service.IProfileService
	Recipes           service.IRecipeService
	MealPlans         service.IMealPlanService
	SavedRecipes      service.ISavedRecipeService
	Shopping          service.IShoppingService
	GenerationLimiter *middleware.RateLimiter
	Metrics           *middleware.Metrics
	CORSOrigins       []string
	Production        bool
}

// SetupRouter configures the application routes
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.UseJSONFieldNames()

	router := gin.New()
	router.Use(middleware.RequestLogger())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(middleware.ErrorHandler(deps.Production))

	api.NewHealthHandler(deps.DB).RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(deps.Tokens, deps.Users))
	{
		api.NewProfileHandler(deps.Profiles).RegisterRoutes(v1)
		api.NewRecipeHandler(deps.Recipes).RegisterRoutes(v1)
		api.NewMealPlanHandler(deps.MealPlans, deps.Shopping, deps.GenerationLimiter).RegisterRoutes(v1)
		api.NewSavedRecipeHandler(deps.SavedRecipes).RegisterRoutes(v1)
		api.NewShoppingListHandler(deps.Shopping).RegisterRoutes(v1)
		api.NewRateLimitHandler(deps.GenerationLimiter).RegisterRoutes(v1)
	}

	return router
}
