// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// ValidTransactionType reports whether the given string names a known type.
func ValidTransactionType(t string) bool {
	return TransactionType(t) == TransactionTypeExpense || TransactionType(t) == TransactionTypeIncome
}

// Transaction represents a financial transaction. The amount is always
// positive; Type determines whether it counts against or toward the balance.
// The owner never changes after creation.
type Transaction struct {
	ID          uint
	UserID      uint
	CategoryID  uint
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Notes       string
	Category    *Category
	Tags        []*Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uint,
	categoryID uint,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Signed returns the amount with its direction applied: negative for
// expenses, positive for income.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionSummary aggregates transactions by direction.
type TransactionSummary struct {
	IncomeTotal  decimal.Decimal
	IncomeCount  int64
	ExpenseTotal decimal.Decimal
	ExpenseCount int64
	Balance      decimal.Decimal
}

// CategoryBreakdown represents per-category transaction totals.
type CategoryBreakdown struct {
	CategoryID    uint
	CategoryName  string
	CategoryColor string
	Type          TransactionType
	Total         decimal.Decimal
	Count         int64
}
