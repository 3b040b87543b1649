package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spendtrack/spendtrack-go/internal/model"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrCategoryInUse         = errors.New("category has expenses referencing it")
)

// CategoryRepository handles category persistence operations. Every query is
// keyed by owner as well as id, so a row belonging to someone else is
// indistinguishable from a missing one.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser returns the owner's categories ordered by name, id as tiebreak.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]model.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories
		WHERE user_id = ? ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return collectRows(rows, func(rows *sql.Rows) (model.Category, error) {
		var c model.Category
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
		return c, err
	})
}

// GetByID retrieves a category scoped by owner.
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id int64) (*model.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories
		WHERE id = ? AND user_id = ?`

	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return c, nil
}

// NameExists reports whether the owner already has a category with this name,
// compared case-insensitively, excluding excludeID (0 when creating).
func (r *CategoryRepository) NameExists(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories
		WHERE user_id = ? AND LOWER(name) = LOWER(?) AND id != ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new category and fills in the generated ID and timestamp.
// The unique index on (user_id, name) settles concurrent creates.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `INSERT INTO categories (user_id, name) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.UserID, c.Name)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateCategoryName
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id

	return r.db.QueryRowContext(ctx, `SELECT created_at FROM categories WHERE id = ?`, id).
		Scan(&c.CreatedAt)
}

// Rename updates a category's name, scoped by owner.
func (r *CategoryRepository) Rename(ctx context.Context, userID, id int64, name string) error {
	query := `UPDATE categories SET name = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, name, id, userID)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateCategoryName
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// HasExpenses reports whether any expense still references the category.
func (r *CategoryRepository) HasExpenses(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM expenses WHERE category_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a category scoped by owner. A referential-integrity
// violation surfaces as ErrCategoryInUse; deletion never cascades.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM categories WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		if isForeignKeyErr(err) {
			return ErrCategoryInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
