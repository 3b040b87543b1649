package model

import (
	"errors"
	"math"
	"time"
)

var ErrAmountNotPositive = errors.New("amount must be a positive number")

// Expense represents a single expense record. Amounts are stored as cents
// to keep arithmetic exact; CategoryName is joined in on reads so callers
// can render an expense without a follow-up lookup.
type Expense struct {
	ID           int64
	UserID       int64
	CategoryID   int64
	CategoryName string
	AmountCents  int64
	Description  string
	Date         string // YYYY-MM-DD
	CreatedAt    time.Time
}

// ExpenseRequest represents a create or partial-update request. Nil fields
// are left untouched on update; Create requires category_id, amount and date.
type ExpenseRequest struct {
	CategoryID  *int64   `json:"category_id"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewExpenseResponse converts an Expense to its API shape.
func NewExpenseResponse(e *Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Amount:       AmountFromCents(e.AmountCents),
		Description:  e.Description,
		Date:         e.Date,
		CreatedAt:    e.CreatedAt,
	}
}

// ExpensesToResponse converts a slice of expenses to their API shape.
func ExpensesToResponse(expenses []Expense) []ExpenseResponse {
	result := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		result[i] = NewExpenseResponse(&expenses[i])
	}
	return result
}

// CentsFromAmount converts a wire-format amount to cents, rounding to the
// nearest cent. Non-positive and non-finite amounts are rejected.
func CentsFromAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrAmountNotPositive
	}
	cents := int64(math.Round(amount * 100))
	if cents < 1 {
		return 0, ErrAmountNotPositive
	}
	return cents, nil
}

// AmountFromCents converts stored cents back to the wire format.
func AmountFromCents(cents int64) float64 {
	return float64(cents) / 100
}
