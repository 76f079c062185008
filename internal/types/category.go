package types

import "golang.org/x/exp/slices"

// Categories are fixed per transaction type. An expense cannot use an income
// category and vice versa.
var (
	ExpenseCategories = []string{
		"food",
		"transportation",
		"housing",
		"utilities",
		"healthcare",
		"entertainment",
		"shopping",
		"education",
		"travel",
		"insurance",
		"savings",
		"other",
	}

	IncomeCategories = []string{
		"salary",
		"freelance",
		"business",
		"investment",
		"rental",
		"gift",
		"other",
	}
)

// CategoriesFor returns the valid categories for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TypeIncome {
		return IncomeCategories
	}

	return ExpenseCategories
}

// CategoryValid reports whether the category may be used with the transaction type.
func CategoryValid(category string, t TransactionType) bool {
	return slices.Contains(CategoriesFor(t), category)
}
