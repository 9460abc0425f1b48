package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemoTransactions returns the demo data set used to seed an empty store.
// Dates are spread over the weeks before the reference date so that every
// list segment and analytics period has data.
func DemoTransactions(reference time.Time) []Transaction {
	blueprint := []struct {
		title     string
		amount    int64
		daysAgo   int
		typ       TransactionType
		category  Category
		note      string
		recurring bool
	}{
		{"Monthly Salary", 650_000, 2, TypeIncome, CategorySalary, "Main job payroll", true},
		{"Freelance Design", 180_000, 9, TypeIncome, CategorySalary, "Side project payout", false},
		{"Groceries", 18_500, 1, TypeExpense, CategoryFood, "Weekly supermarket run", false},
		{"Coffee", 1_400, 0, TypeExpense, CategoryFood, "Morning latte", false},
		{"Dinner", 15_000, 3, TypeExpense, CategoryFood, "Dinner with friends", false},
		{"Fuel", 13_500, 4, TypeExpense, CategoryTransport, "Car refill", false},
		{"Taxi", 4_500, 7, TypeExpense, CategoryTransport, "Late ride home", false},
		{"Internet", 8_500, 6, TypeExpense, CategoryUtilities, "Home internet", true},
		{"Electricity", 12_000, 12, TypeExpense, CategoryUtilities, "Monthly bill", true},
		{"Streaming", 3_500, 11, TypeExpense, CategoryEntertainment, "Video subscription", true},
		{"Cinema", 7_000, 8, TypeExpense, CategoryEntertainment, "Weekend movie", false},
		{"Gym", 25_000, 5, TypeExpense, CategoryHealth, "Monthly membership", true},
		{"Pharmacy", 8_500, 10, TypeExpense, CategoryHealth, "Vitamins", false},
		{"Clothes", 42_000, 14, TypeExpense, CategoryShopping, "Seasonal sale", false},
		{"Gift", 20_000, 16, TypeExpense, CategoryOther, "Birthday present", false},
		{"Bonus", 120_000, 20, TypeIncome, CategorySalary, "Quarter bonus", false},
		{"Groceries", 16_200, 22, TypeExpense, CategoryFood, "Market refill", false},
		{"Transit Pass", 9_000, 24, TypeExpense, CategoryTransport, "Monthly metro pass", true},
		{"Water Bill", 4_500, 28, TypeExpense, CategoryUtilities, "Utilities payment", true},
		{"Restaurant", 24_000, 30, TypeExpense, CategoryFood, "Family dinner", false},
		{"Monthly Salary", 650_000, 33, TypeIncome, CategorySalary, "Main job payroll", true},
		{"Online Shopping", 55_000, 36, TypeExpense, CategoryShopping, "Household items", false},
		{"Doctor Visit", 30_000, 39, TypeExpense, CategoryHealth, "Checkup", false},
		{"Concert Ticket", 35_000, 43, TypeExpense, CategoryEntertainment, "Live concert", false},
	}

	transactions := make([]Transaction, 0, len(blueprint))
	for _, item := range blueprint {
		date := reference.AddDate(0, 0, -item.daysAgo).In(time.UTC)
		transactions = append(transactions, Transaction{
			Title:       item.title,
			Amount:      decimal.NewFromInt(item.amount),
			Date:        date,
			Type:        item.typ,
			Category:    item.category,
			Note:        item.note,
			IsRecurring: item.recurring,
		})
	}

	return transactions
}
