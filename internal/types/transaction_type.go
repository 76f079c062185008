package types

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t TransactionType) String() string {
	return string(t)
}

// BudgetType distinguishes spending limits from savings targets.
type BudgetType string

const (
	BudgetTypeBudget  BudgetType = "budget"
	BudgetTypeSavings BudgetType = "savings"
)

// Valid reports whether the budget type is one of the known values.
func (t BudgetType) Valid() bool {
	return t == BudgetTypeBudget || t == BudgetTypeSavings
}

func (t BudgetType) String() string {
	return string(t)
}
