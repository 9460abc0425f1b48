// Package settings persists user preferences in a local key-value table.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/currency"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/spendwise-app/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Defaults for settings that have never been written.
const (
	DefaultCurrencyCode  = "KZT"
	DefaultMonthStartDay = 1
)

// DefaultMonthlyBudget is the overall monthly budget before the user sets one.
var DefaultMonthlyBudget = decimal.NewFromInt(2000)

// Storage keys. Category budgets use one key per category.
const (
	keyCurrencyCode   = "currencyCode"
	keyMonthStartDay  = "monthStartDay"
	keyMonthlyBudget  = "monthlyBudget"
	categoryBudgetKey = "categoryBudget_"
)

var (
	ErrUnknownCurrencyCode = errors.New("the currency code is not one of the offered currencies")
	ErrNegativeBudget      = errors.New("budgets must not be negative")
)

// Setting is one persisted key-value pair.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Store reads and writes settings.
type Store struct {
	db *gorm.DB
}

// New migrates the settings table and returns a store.
func New(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(Setting{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate settings: %w", err)
	}

	return &Store{db: db}, nil
}

// CurrencyCode returns the preferred display currency.
func (s *Store) CurrencyCode() string {
	value, ok := s.get(keyCurrencyCode)
	if !ok {
		return DefaultCurrencyCode
	}

	if !currency.IsOption(value) {
		log.Warn().Str("code", value).Msg("stored currency code is not offered, using default")
		return DefaultCurrencyCode
	}

	return strings.ToUpper(value)
}

// SetCurrencyCode stores the preferred display currency.
func (s *Store) SetCurrencyCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currency.IsOption(code) {
		return fmt.Errorf("%w: %q", ErrUnknownCurrencyCode, code)
	}

	return s.set(keyCurrencyCode, code)
}

// MonthStartDay returns the day of month the accounting cycle starts on,
// always within [1, 28].
func (s *Store) MonthStartDay() int {
	value, ok := s.get(keyMonthStartDay)
	if !ok {
		return DefaultMonthStartDay
	}

	day, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("value", value).Msg("stored month start day is malformed, using default")
		return DefaultMonthStartDay
	}

	return types.ClampStartDay(day)
}

// SetMonthStartDay stores the cycle start day, clamped to [1, 28].
func (s *Store) SetMonthStartDay(day int) error {
	return s.set(keyMonthStartDay, strconv.Itoa(types.ClampStartDay(day)))
}

// MonthlyBudget returns the overall monthly budget.
func (s *Store) MonthlyBudget() decimal.Decimal {
	value, ok := s.get(keyMonthlyBudget)
	if !ok {
		return DefaultMonthlyBudget
	}

	budget, err := decimal.NewFromString(value)
	if err != nil {
		log.Warn().Str("value", value).Msg("stored monthly budget is malformed, using default")
		return DefaultMonthlyBudget
	}

	return budget
}

// SetMonthlyBudget stores the overall monthly budget.
func (s *Store) SetMonthlyBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return ErrNegativeBudget
	}

	return s.set(keyMonthlyBudget, budget.String())
}

// CategoryBudget returns the spending limit for a category, zero when unset.
func (s *Store) CategoryBudget(category models.Category) (decimal.Decimal, error) {
	if !category.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidCategory, category)
	}

	value, ok := s.get(categoryBudgetKey + string(category))
	if !ok {
		return decimal.Zero, nil
	}

	limit, err := decimal.NewFromString(value)
	if err != nil {
		log.Warn().Str("category", string(category)).Str("value", value).Msg("stored category budget is malformed, using zero")
		return decimal.Zero, nil
	}

	return limit, nil
}

// SetCategoryBudget stores the spending limit for a category. A zero limit
// removes the limit.
func (s *Store) SetCategoryBudget(category models.Category, limit decimal.Decimal) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidCategory, category)
	}

	if limit.IsNegative() {
		return ErrNegativeBudget
	}

	return s.set(categoryBudgetKey+string(category), limit.String())
}

// CategoryBudgets returns the limits for all categories that have one set.
func (s *Store) CategoryBudgets() (models.CategoryBudgets, error) {
	budgets := make(models.CategoryBudgets)

	for _, category := range models.Categories() {
		limit, err := s.CategoryBudget(category)
		if err != nil {
			return nil, err
		}

		if limit.IsPositive() {
			budgets[category] = limit
		}
	}

	return budgets, nil
}

// GetBlob returns the raw value stored under the key, nil when unset.
func (s *Store) GetBlob(key string) ([]byte, error) {
	var setting Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return []byte(setting.Value), nil
}

// SetBlob stores a raw value under the key.
func (s *Store) SetBlob(key string, value []byte) error {
	return s.upsert(key, string(value))
}

func (s *Store) get(key string) (string, bool) {
	var setting Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str("key", key).Msg("reading setting failed")
		}
		return "", false
	}

	return setting.Value, true
}

func (s *Store) set(key, value string) error {
	return s.upsert(key, value)
}

func (s *Store) upsert(key, value string) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&Setting{Key: key, Value: value}).Error
}
