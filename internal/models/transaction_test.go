package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	title := "  Groceries \t"
	note := " Weekly supermarket run    "

	transaction := suite.createTestTransaction(models.Transaction{
		Title:    title,
		Amount:   decimal.NewFromFloat(54.25),
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
		Note:     note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(title), transaction.Title)
	assert.Equal(suite.T(), strings.TrimSpace(note), transaction.Note)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	transaction := suite.createTestTransaction(models.Transaction{
		Title:    "Coffee",
		Amount:   decimal.NewFromInt(1400),
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
	})

	assert.False(suite.T(), transaction.Date.IsZero())
	assert.WithinDuration(suite.T(), time.Now().In(time.UTC), transaction.Date, time.Minute)
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		suite.T().Skip("tzdata not available")
	}

	transaction := suite.createTestTransaction(models.Transaction{
		Title:    "Dinner",
		Amount:   decimal.NewFromInt(15000),
		Date:     time.Date(2024, 3, 15, 20, 0, 0, 0, berlin),
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
	})

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())

	var reread models.Transaction
	err = models.DB.First(&reread, "id = ?", transaction.ID).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, reread.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{
			"empty title",
			models.Transaction{Title: "   ", Amount: decimal.NewFromInt(10), Type: models.TypeExpense, Category: models.CategoryFood},
			models.ErrTransactionTitleEmpty,
		},
		{
			"negative amount",
			models.Transaction{Title: "Refund", Amount: decimal.NewFromInt(-10), Type: models.TypeIncome, Category: models.CategoryOther},
			models.ErrTransactionAmountInvalid,
		},
		{
			"unknown type",
			models.Transaction{Title: "Magic", Amount: decimal.NewFromInt(10), Type: "transfer", Category: models.CategoryOther},
			models.ErrInvalidTransactionType,
		},
		{
			"unknown category",
			models.Transaction{Title: "Magic", Amount: decimal.NewFromInt(10), Type: models.TypeExpense, Category: "pets"},
			models.ErrInvalidCategory,
		},
		{
			"zero amount is allowed",
			models.Transaction{Title: "Free sample", Amount: decimal.Zero, Type: models.TypeExpense, Category: models.CategoryOther},
			nil,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.transaction).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEnumParsing(t *testing.T) {
	category, err := models.ParseCategory("food")
	assert.NoError(t, err)
	assert.Equal(t, models.CategoryFood, category)

	_, err = models.ParseCategory("pets")
	assert.ErrorIs(t, err, models.ErrInvalidCategory)

	transactionType, err := models.ParseTransactionType("income")
	assert.NoError(t, err)
	assert.Equal(t, models.TypeIncome, transactionType)

	_, err = models.ParseTransactionType("transfer")
	assert.ErrorIs(t, err, models.ErrInvalidTransactionType)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Food", models.CategoryFood.Title())
	assert.Equal(t, "Entertainment", models.CategoryEntertainment.Title())
	assert.Equal(t, "Income", models.TypeIncome.Title())
}

func TestCategoryFilter(t *testing.T) {
	all := models.AllCategories()
	assert.True(t, all.Matches(models.CategoryFood))
	assert.True(t, all.Matches(models.CategoryOther))
	_, selected := all.Category()
	assert.False(t, selected)

	food := models.ByCategory(models.CategoryFood)
	assert.True(t, food.Matches(models.CategoryFood))
	assert.False(t, food.Matches(models.CategoryHealth))
	category, selected := food.Category()
	assert.True(t, selected)
	assert.Equal(t, models.CategoryFood, category)

	// The zero value behaves like AllCategories.
	var zero models.CategoryFilter
	assert.True(t, zero.Matches(models.CategorySalary))
}

func TestDemoTransactions(t *testing.T) {
	reference := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	demo := models.DemoTransactions(reference)

	assert.Len(t, demo, 24)

	for _, transaction := range demo {
		assert.NotEmpty(t, transaction.Title)
		assert.True(t, transaction.Amount.IsPositive())
		assert.True(t, transaction.Type.Valid())
		assert.True(t, transaction.Category.Valid())
		assert.False(t, transaction.Date.After(reference))
	}
}
