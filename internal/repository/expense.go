package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spendtrack/spendtrack-go/internal/model"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseRepository handles expense persistence operations. Reads join the
// category name in so a single query returns everything a caller needs to
// render the expense.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `e.id, e.user_id, e.category_id, c.name, e.amount_cents, e.description, e.spent_on, e.created_at`

func scanExpense(rows *sql.Rows) (model.Expense, error) {
	var e model.Expense
	err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.CategoryName,
		&e.AmountCents, &e.Description, &e.Date, &e.CreatedAt)
	return e, err
}

// ListByUser returns the owner's expenses, newest spending date first,
// id descending as tiebreak so the listing is stable across calls.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = ? ORDER BY e.spent_on DESC, e.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, scanExpense)
}

// GetByID retrieves an expense scoped by owner, category name included.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id int64) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = ? AND e.user_id = ?`

	e := &model.Expense{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.CategoryName,
		&e.AmountCents, &e.Description, &e.Date, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	return e, nil
}

// Create inserts a new expense and returns the stored row with the category
// name joined in. The foreign key on category_id is the arbiter against a
// concurrent category delete.
func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	query := `INSERT INTO expenses (user_id, category_id, amount_cents, description, spent_on)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		e.UserID, e.CategoryID, e.AmountCents, e.Description, e.Date)
	if err != nil {
		if isForeignKeyErr(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, e.UserID, id)
}

// Update persists the full expense row, scoped by owner, and returns the
// stored row with the category name joined in.
func (r *ExpenseRepository) Update(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	query := `UPDATE expenses SET category_id = ?, amount_cents = ?, description = ?, spent_on = ?
		WHERE id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query,
		e.CategoryID, e.AmountCents, e.Description, e.Date, e.ID, e.UserID)
	if err != nil {
		if isForeignKeyErr(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return r.GetByID(ctx, e.UserID, e.ID)
}

// Delete removes an expense scoped by owner.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM expenses WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
