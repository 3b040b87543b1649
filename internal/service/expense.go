package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/repository"
)

var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrCategoryIDRequired = errors.New("category_id is required")
	ErrAmountRequired     = errors.New("amount is required")
	ErrDateRequired       = errors.New("date is required")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidCategory    = errors.New("invalid category")
)

// ExpenseService handles expense business logic. Every referenced category
// must exist and belong to the same owner at write time.
type ExpenseService struct {
	expenses   *repository.ExpenseRepository
	categories *repository.CategoryRepository
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses *repository.ExpenseRepository, categories *repository.CategoryRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, categories: categories}
}

// List returns the owner's expenses, newest spending date first.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]model.ExpenseResponse, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.ExpensesToResponse(expenses), nil
}

// Get returns a single expense. A row owned by someone else reads as not found.
func (s *ExpenseService) Get(ctx context.Context, userID, id int64) (model.ExpenseResponse, error) {
	expense, err := s.expenses.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return model.ExpenseResponse{}, ErrExpenseNotFound
		}
		return model.ExpenseResponse{}, err
	}
	return model.NewExpenseResponse(expense), nil
}

// Create records a new expense. The category must belong to the owner, the
// amount must be positive and the date well-formed; violations are rejected,
// never corrected.
func (s *ExpenseService) Create(ctx context.Context, userID int64, req model.ExpenseRequest) (model.ExpenseResponse, error) {
	if req.CategoryID == nil {
		return model.ExpenseResponse{}, ErrCategoryIDRequired
	}
	if req.Amount == nil {
		return model.ExpenseResponse{}, ErrAmountRequired
	}
	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		return model.ExpenseResponse{}, ErrDateRequired
	}

	cents, err := model.CentsFromAmount(*req.Amount)
	if err != nil {
		return model.ExpenseResponse{}, err
	}

	date, err := parseDate(*req.Date)
	if err != nil {
		return model.ExpenseResponse{}, err
	}

	if err := s.checkCategory(ctx, userID, *req.CategoryID); err != nil {
		return model.ExpenseResponse{}, err
	}

	expense := &model.Expense{
		UserID:      userID,
		CategoryID:  *req.CategoryID,
		AmountCents: cents,
		Date:        date,
	}
	if req.Description != nil {
		expense.Description = strings.TrimSpace(*req.Description)
	}

	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return model.ExpenseResponse{}, ErrInvalidCategory
		}
		return model.ExpenseResponse{}, err
	}

	return model.NewExpenseResponse(created), nil
}

// Update applies a partial update. Only supplied fields change, and each one
// re-runs the same checks as Create.
func (s *ExpenseService) Update(ctx context.Context, userID, id int64, req model.ExpenseRequest) (model.ExpenseResponse, error) {
	expense, err := s.expenses.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			return model.ExpenseResponse{}, ErrExpenseNotFound
		}
		return model.ExpenseResponse{}, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *req.CategoryID); err != nil {
			return model.ExpenseResponse{}, err
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		cents, err := model.CentsFromAmount(*req.Amount)
		if err != nil {
			return model.ExpenseResponse{}, err
		}
		expense.AmountCents = cents
	}
	if req.Description != nil {
		expense.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return model.ExpenseResponse{}, err
		}
		expense.Date = date
	}

	updated, err := s.expenses.Update(ctx, expense)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return model.ExpenseResponse{}, ErrInvalidCategory
		}
		return model.ExpenseResponse{}, err
	}

	return model.NewExpenseResponse(updated), nil
}

// Delete removes an expense. No referential guard applies.
func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	err := s.expenses.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrExpenseNotFound) {
		return ErrExpenseNotFound
	}
	return err
}

// checkCategory verifies the category exists and belongs to the owner.
func (s *ExpenseService) checkCategory(ctx context.Context, userID, categoryID int64) error {
	_, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

// parseDate validates and normalizes a YYYY-MM-DD calendar date.
func parseDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format("2006-01-02"), nil
}
