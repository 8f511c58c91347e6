package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/imagecache"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/types"
)

const (
	defaultPlanDays   = 7
	maxSearchResults  = 100
	budgetCentsFactor = 100
)

// GenerateResult is a freshly generated plan plus anything the caller should
// know about meal types that could not be filled.
type GenerateResult struct {
	Plan     *models.MealPlan `json:"meal_plan"`
	Warnings []string         `json:"warnings,omitempty"`
}

// MealPlanService handles meal plan operations
type MealPlanService struct {
	db       *gorm.DB
	provider provider.RecipeProvider
	images   *imagecache.Cache
	now      func() time.Time
}

var _ IMealPlanService = (*MealPlanService)(nil)

func NewMealPlanService(db *gorm.DB, p provider.RecipeProvider, images *imagecache.Cache) *MealPlanService {
	return &MealPlanService{db: db, provider: p, images: images, now: time.Now}
}

// MealTypesFor returns the meal types planned per day for a meal count.
func MealTypesFor(mealCount int) []string {
	switch {
	case mealCount <= 1:
		return []string{models.MealTypeDinner}
	case mealCount == 2:
		return []string{models.MealTypeLunch, models.MealTypeDinner}
	case mealCount == 3:
		return []string{models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner}
	default:
		return []string{models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner, models.MealTypeSnack}
	}
}

// Generate builds a plan from the user's preferences. Meal types that share a
// provider dish type share one search; results are cycled across days so
// a short result page still fills every slot.
func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *types.GenerateMealPlanRequest) (*GenerateResult, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = *models.DefaultPreferences(userID)
	} else if err != nil {
		return nil, err
	}

	start := s.now().UTC()
	if req.StartDate != "" {
		if start, err = time.Parse(models.DateLayout, req.StartDate); err != nil {
			return nil, fmt.Errorf("%w: %s", mealplan.ErrInvalidWindow, req.StartDate)
		}
	}
	days := req.Days
	if days <= 0 {
		days = defaultPlanDays
	}
	dates := mealplan.DateRange(start, days)

	mealTypes := MealTypesFor(prefs.MealCount)
	groups := make(map[string][]string)
	var order []string
	for _, mt := range mealTypes {
		dish := dishTypes[mt]
		if _, ok := groups[dish]; !ok {
			order = append(order, dish)
		}
		groups[dish] = append(groups[dish], mt)
	}

	var warnings []string
	slots := make(map[string][]provider.RecipeSummary)
	for _, dish := range order {
		params := provider.SearchParams{Type: dish, Sort: provider.SortRandom}
		applyPreferences(&params, &prefs)
		params.Number = min(days*len(groups[dish]), maxSearchResults)

		result, err := s.provider.SearchRecipes(ctx, params)
		if err != nil {
			return nil, providerError(err)
		}
		recipes := withinBudget(result.Results, prefs.BudgetPerMeal)
		if len(recipes) == 0 {
			for _, mt := range groups[dish] {
				warnings = append(warnings, fmt.Sprintf("no recipes found for %s", mt))
			}
			continue
		}
		for _, mt := range groups[dish] {
			slots[mt] = recipes
		}
	}
	if len(slots) == 0 {
		return nil, ErrNoRecipesFound
	}

	meals := make([]models.Meal, 0, len(dates)*len(mealTypes))
	for d, date := range dates {
		for _, mt := range mealTypes {
			recipes, ok := slots[mt]
			if !ok {
				continue
			}
			// Meal types sharing a search take alternating results.
			group := groups[dishTypes[mt]]
			idx := d*len(group) + slices.Index(group, mt)
			meals = append(meals, s.mealFromSummary(ctx, recipes[idx%len(recipes)], mt, date))
		}
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Meal plan %s to %s", dates[0], dates[len(dates)-1])
	}
	plan := &models.MealPlan{
		UserID:    userID,
		Name:      name,
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		Meals:     datatypes.JSONSlice[models.Meal](meals),
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}

	logger.L().Info("generated meal plan",
		zap.String("plan_id", plan.ID.String()),
		zap.Int("days", days),
		zap.Int("meals", len(meals)),
		zap.Int("warnings", len(warnings)),
	)
	return &GenerateResult{Plan: plan, Warnings: warnings}, nil
}

func (s *MealPlanService) List(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	plans := []models.MealPlan{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_date desc, created_at desc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *MealPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	return s.load(ctx, s.db, userID, planID)
}

func (s *MealPlanService) Rename(ctx context.Context, userID, planID uuid.UUID, name string) (*models.MealPlan, error) {
	plan, err := s.load(ctx, s.db, userID, planID)
	if err != nil {
		return nil, err
	}
	plan.Name = name
	if err := s.db.WithContext(ctx).Model(plan).Update("name", name).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes the plan and the shopping list generated for it.
func (s *MealPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, userID, planID); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND meal_plan_id = ?", userID, planID).Delete(&models.ShoppingList{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", planID, userID).Delete(&models.MealPlan{}).Error
	})
}

// AddMeal appends a meal. Missing title or image are filled from the provider;
// a dated meal outside the plan's range widens the range.
func (s *MealPlanService) AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*models.MealPlan, error) {
	plan, err := s.load(ctx, s.db, userID, planID)
	if err != nil {
		return nil, err
	}

	recipeID := req.RecipeID.Int64()
	meal := models.Meal{
		ID:       uuid.NewString(),
		RecipeID: recipeID,
		MealType: req.MealType,
		Title:    req.Title,
		Servings: req.Servings,
		Date:     req.Date,
	}
	// Without a title the recipe must exist upstream. Otherwise only the
	// image is looked up, through the image cache.
	var info *provider.RecipeInformation
	if meal.Title == "" {
		if info, err = s.provider.GetRecipeInformation(ctx, recipeID); err != nil {
			return nil, providerError(err)
		}
		meal.Title = info.Title
		if meal.Servings == 0 {
			meal.Servings = info.Servings
		}
		meal.ReadyInMinutes = info.ReadyInMinutes
	}
	if info != nil {
		meal.Image = s.resolveImage(ctx, recipeID, firstNonEmpty(req.Image, info.Image), info.ImageType, nil)
	} else {
		meal.Image = s.resolveImage(ctx, recipeID, req.Image, "", providerImage(s.provider))
	}

	plan.Meals = append(plan.Meals, meal)
	if meal.Date != "" {
		if plan.StartDate == "" || meal.Date < plan.StartDate {
			plan.StartDate = meal.Date
		}
		if plan.EndDate == "" || meal.Date > plan.EndDate {
			plan.EndDate = meal.Date
		}
	}
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *MealPlanService) RemoveMeal(ctx context.Context, userID, planID uuid.UUID, mealID string) (*models.MealPlan, error) {
	plan, err := s.load(ctx, s.db, userID, planID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, m := range plan.Meals {
		if m.ID == mealID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrMealNotFound
	}
	plan.Meals = append(plan.Meals[:idx], plan.Meals[idx+1:]...)
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// Calendar groups the plan's meals by date. When start or end is given the
// result is reconciled to that window; a missing bound defaults to the
// grouped range.
func (s *MealPlanService) Calendar(ctx context.Context, userID, planID uuid.UUID, start, end string) (*mealplan.Calendar, error) {
	plan, err := s.load(ctx, s.db, userID, planID)
	if err != nil {
		return nil, err
	}
	cal := mealplan.Group(plan)
	if start == "" && end == "" {
		return &cal, nil
	}
	if start == "" {
		start = cal.StartDate
	}
	if end == "" {
		end = cal.EndDate
	}
	windowed, err := cal.Window(start, end)
	if err != nil {
		return nil, err
	}
	return &windowed, nil
}

func (s *MealPlanService) load(ctx context.Context, db *gorm.DB, userID, planID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) mealFromSummary(ctx context.Context, r provider.RecipeSummary, mealType, date string) models.Meal {
	return models.Meal{
		ID:             uuid.NewString(),
		RecipeID:       r.ID,
		MealType:       mealType,
		Title:          r.Title,
		Image:          s.resolveImage(ctx, r.ID, r.Image, r.ImageType, nil),
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		Date:           date,
	}
}

func (s *MealPlanService) resolveImage(ctx context.Context, recipeID int64, candidate, imageType string, fetch imagecache.FetchFunc) string {
	return s.images.Resolve(ctx, recipeID, candidate, fetch, func(id int64) string {
		return s.provider.ImageURL(id, "", imageType)
	})
}

// withinBudget drops recipes priced above budget dollars per serving. The
// provider reports prices in cents. A zero budget keeps everything.
func withinBudget(recipes []provider.RecipeSummary, budget float64) []provider.RecipeSummary {
	if budget <= 0 {
		return recipes
	}
	kept := make([]provider.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		if r.PricePerServing <= budget*budgetCentsFactor {
			kept = append(kept, r)
		}
	}
	return kept
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
