package models

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidTransactionType = errors.New("the transaction type is not valid")
	ErrInvalidCategory        = errors.New("the category is not valid")
)

// TransactionType classifies a transaction as money coming in or going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TransactionTypes returns all valid transaction types.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeIncome, TypeExpense}
}

// Valid reports whether the transaction type is one of the known types.
func (t TransactionType) Valid() bool {
	return slices.Contains(TransactionTypes(), t)
}

// Title returns the display name of the transaction type.
func (t TransactionType) Title() string {
	return titleCaser.String(string(t))
}

// ParseTransactionType parses a transaction type from its string value.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
	return t, nil
}

// Category is the spending or income category of a transaction.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// Categories returns all valid categories in their display order.
func Categories() []Category {
	return []Category{
		CategorySalary,
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryShopping,
		CategoryHealth,
		CategoryOther,
	}
}

// Valid reports whether the category is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// Title returns the display name of the category.
func (c Category) Title() string {
	return titleCaser.String(string(c))
}

// ParseCategory parses a category from its string value.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

var titleCaser = cases.Title(language.English)

// SortMode selects the comparator for transaction list ordering.
type SortMode string

const (
	SortDateDesc   SortMode = "dateDesc"
	SortDateAsc    SortMode = "dateAsc"
	SortAmountDesc SortMode = "amountDesc"
	SortAmountAsc  SortMode = "amountAsc"
)

// Title returns the display name of the sort mode.
func (m SortMode) Title() string {
	switch m {
	case SortDateAsc:
		return "Date (Oldest)"
	case SortAmountDesc:
		return "Amount (High)"
	case SortAmountAsc:
		return "Amount (Low)"
	default:
		return "Date (Newest)"
	}
}

// FilterMode restricts a transaction list by type or recurrence.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterIncome    FilterMode = "income"
	FilterExpense   FilterMode = "expense"
	FilterRecurring FilterMode = "recurring"
)

// DateScope restricts a transaction list to a date window.
type DateScope string

const (
	ScopeAll          DateScope = "all"
	ScopeCurrentCycle DateScope = "currentCycle"
	ScopeLast7Days    DateScope = "last7Days"
	ScopeLast30Days   DateScope = "last30Days"
)

// CategoryFilter is either "all categories" or a single selected category.
// The zero value matches all categories.
type CategoryFilter struct {
	category Category
	selected bool
}

// AllCategories returns the filter that matches every category.
func AllCategories() CategoryFilter {
	return CategoryFilter{}
}

// ByCategory returns the filter that matches only the given category.
func ByCategory(c Category) CategoryFilter {
	return CategoryFilter{category: c, selected: true}
}

// Matches reports whether the category passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return !f.selected || f.category == c
}

// Category returns the selected category and whether one is selected.
func (f CategoryFilter) Category() (Category, bool) {
	return f.category, f.selected
}
