// Package mealplan arranges the meals of a plan into calendar days.
package mealplan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pageza/mealwise/backend/internal/models"
)

// MaxWindowDays caps the range a calendar window may span.
const MaxWindowDays = 62

var ErrInvalidWindow = errors.New("invalid calendar window")

// Day is one calendar bucket.
type Day struct {
	Date  string        `json:"date"`
	Meals []models.Meal `json:"meals"`
}

// Calendar is a plan's meals grouped by date, ascending.
type Calendar struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      []Day  `json:"days"`
}

// NormalizeDate returns s as YYYY-MM-DD, accepting plain dates and RFC 3339
// timestamps. ok is false when s is empty or unparseable.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t.Format(models.DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(models.DateLayout), true
	}
	return "", false
}

// GroupByDate places every meal in exactly one bucket: its own date when it
// has a usable one, planDate otherwise. With no meals the result is a single
// empty bucket for planDate.
func GroupByDate(meals []models.Meal, planDate string) Calendar {
	fallback, ok := NormalizeDate(planDate)
	if !ok {
		fallback = planDate
	}

	buckets := make(map[string][]models.Meal)
	for _, meal := range meals {
		date, ok := NormalizeDate(meal.Date)
		if !ok {
			date = fallback
		}
		buckets[date] = append(buckets[date], meal)
	}
	if len(buckets) == 0 {
		buckets[fallback] = []models.Meal{}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cal := Calendar{
		StartDate: keys[0],
		EndDate:   keys[len(keys)-1],
		Days:      make([]Day, 0, len(keys)),
	}
	for _, k := range keys {
		cal.Days = append(cal.Days, Day{Date: k, Meals: buckets[k]})
	}
	return cal
}

// Group is GroupByDate over a stored plan, falling back to its start date.
func Group(plan *models.MealPlan) Calendar {
	return GroupByDate(plan.Meals, plan.StartDate)
}

// Window reconciles the grouping with a selected range: every date from start
// to end inclusive gets a bucket, empty when no meals fall on it, and buckets
// outside the range are dropped.
func (c Calendar) Window(start, end string) (Calendar, error) {
	from, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: start %q", ErrInvalidWindow, start)
	}
	to, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: end %q", ErrInvalidWindow, end)
	}
	if to.Before(from) {
		return Calendar{}, fmt.Errorf("%w: end before start", ErrInvalidWindow)
	}
	if int(to.Sub(from).Hours()/24)+1 > MaxWindowDays {
		return Calendar{}, fmt.Errorf("%w: more than %d days", ErrInvalidWindow, MaxWindowDays)
	}

	byDate := make(map[string][]models.Meal, len(c.Days))
	for _, d := range c.Days {
		byDate[d.Date] = d.Meals
	}

	dates := DateRange(from, int(to.Sub(from).Hours()/24)+1)
	out := Calendar{StartDate: start, EndDate: end, Days: make([]Day, 0, len(dates))}
	for _, date := range dates {
		meals := byDate[date]
		if meals == nil {
			meals = []models.Meal{}
		}
		out.Days = append(out.Days, Day{Date: date, Meals: meals})
	}
	return out, nil
}

// DateRange returns days consecutive ISO dates beginning at start.
func DateRange(start time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(models.DateLayout))
	}
	return dates
}
