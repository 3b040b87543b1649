package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrack/spendtrack-go/internal/model"
)

// RepositorySuite runs every repository against a fresh in-memory sqlite
// database with foreign keys enabled, schema applied through the same
// migrations production uses.
type RepositorySuite struct {
	suite.Suite
	db         *sql.DB
	users      *UserRepository
	categories *CategoryRepository
	expenses   *ExpenseRepository
	ctx        context.Context
}

func (s *RepositorySuite) SetupTest() {
	db, err := NewDB("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(s.T(), err, "failed to open test database")

	s.db = db
	s.users = NewUserRepository(db)
	s.categories = NewCategoryRepository(db)
	s.expenses = NewExpenseRepository(db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *RepositorySuite) createUser(email string) *model.User {
	user := &model.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	require.NoError(s.T(), s.users.Create(s.ctx, user))
	return user
}

func (s *RepositorySuite) createCategory(userID int64, name string) *model.Category {
	category := &model.Category{UserID: userID, Name: name}
	require.NoError(s.T(), s.categories.Create(s.ctx, category))
	return category
}

func (s *RepositorySuite) createExpense(userID, categoryID int64, date string, cents int64) *model.Expense {
	created, err := s.expenses.Create(s.ctx, &model.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		AmountCents: cents,
		Description: "test expense",
		Date:        date,
	})
	require.NoError(s.T(), err)
	return created
}

func (s *RepositorySuite) TestCreateUserFillsIDAndTimestamp() {
	user := s.createUser("ann@example.com")

	assert.NotZero(s.T(), user.ID)
	assert.False(s.T(), user.CreatedAt.IsZero())
}

func (s *RepositorySuite) TestDuplicateEmailRejected() {
	s.createUser("ann@example.com")

	err := s.users.Create(s.ctx, &model.User{Name: "Other", Email: "ann@example.com", PasswordHash: "h"})
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)

	// The email column collates case-insensitively.
	err = s.users.Create(s.ctx, &model.User{Name: "Other", Email: "ANN@example.com", PasswordHash: "h"})
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *RepositorySuite) TestGetUserByEmailAndID() {
	created := s.createUser("ann@example.com")

	byEmail, err := s.users.GetByEmail(s.ctx, "ann@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, byEmail.ID)

	byID, err := s.users.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ann@example.com", byID.Email)

	_, err = s.users.GetByID(s.ctx, 9999)
	assert.ErrorIs(s.T(), err, ErrUserNotFound)
}

func (s *RepositorySuite) TestEmailExistsExcludesSelf() {
	ann := s.createUser("ann@example.com")
	s.createUser("bob@example.com")

	taken, err := s.users.EmailExists(s.ctx, "bob@example.com", ann.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.users.EmailExists(s.ctx, "ann@example.com", ann.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), taken, "a user's own email should not count as taken")
}

func (s *RepositorySuite) TestCategoryNameUniquePerOwnerCaseInsensitive() {
	ann := s.createUser("ann@example.com")
	bob := s.createUser("bob@example.com")

	s.createCategory(ann.ID, "Food")

	err := s.categories.Create(s.ctx, &model.Category{UserID: ann.ID, Name: "food"})
	assert.ErrorIs(s.T(), err, ErrDuplicateCategoryName)

	// A different owner may use the same name.
	err = s.categories.Create(s.ctx, &model.Category{UserID: bob.ID, Name: "food"})
	assert.NoError(s.T(), err)
}

func (s *RepositorySuite) TestCategoryScopedByOwner() {
	ann := s.createUser("ann@example.com")
	bob := s.createUser("bob@example.com")
	category := s.createCategory(ann.ID, "Food")

	_, err := s.categories.GetByID(s.ctx, bob.ID, category.ID)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	err = s.categories.Rename(s.ctx, bob.ID, category.ID, "Hijacked")
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	err = s.categories.Delete(s.ctx, bob.ID, category.ID)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	// The owner still sees the original name.
	got, err := s.categories.GetByID(s.ctx, ann.ID, category.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Food", got.Name)
}

func (s *RepositorySuite) TestCategoryListOrderedByName() {
	ann := s.createUser("ann@example.com")
	for _, name := range []string{"Travel", "Food", "Rent"} {
		s.createCategory(ann.ID, name)
	}

	categories, err := s.categories.ListByUser(s.ctx, ann.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), categories, 3)
	assert.Equal(s.T(), "Food", categories[0].Name)
	assert.Equal(s.T(), "Rent", categories[1].Name)
	assert.Equal(s.T(), "Travel", categories[2].Name)
}

func (s *RepositorySuite) TestNameExists() {
	ann := s.createUser("ann@example.com")
	category := s.createCategory(ann.ID, "Food")

	exists, err := s.categories.NameExists(s.ctx, ann.ID, "FOOD", 0)
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	// Excluding the row itself, as a rename check would.
	exists, err = s.categories.NameExists(s.ctx, ann.ID, "Food", category.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *RepositorySuite) TestExpenseCreateJoinsCategoryName() {
	ann := s.createUser("ann@example.com")
	category := s.createCategory(ann.ID, "Food")

	expense := s.createExpense(ann.ID, category.ID, "2024-01-01", 1250)

	assert.NotZero(s.T(), expense.ID)
	assert.Equal(s.T(), "Food", expense.CategoryName)
	assert.Equal(s.T(), int64(1250), expense.AmountCents)
	assert.Equal(s.T(), "2024-01-01", expense.Date)
}

func (s *RepositorySuite) TestExpenseListOrderedByDateDescIDDesc() {
	ann := s.createUser("ann@example.com")
	category := s.createCategory(ann.ID, "Food")

	first := s.createExpense(ann.ID, category.ID, "2024-01-05", 100)
	second := s.createExpense(ann.ID, category.ID, "2024-01-05", 200)
	older := s.createExpense(ann.ID, category.ID, "2024-01-01", 300)

	expenses, err := s.expenses.ListByUser(s.ctx, ann.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), expenses, 3)

	// Same date: later insertion wins the tiebreak.
	assert.Equal(s.T(), second.ID, expenses[0].ID)
	assert.Equal(s.T(), first.ID, expenses[1].ID)
	assert.Equal(s.T(), older.ID, expenses[2].ID)
}

func (s *RepositorySuite) TestExpenseScopedByOwner() {
	ann := s.createUser("ann@example.com")
	bob := s.createUser("bob@example.com")
	category := s.createCategory(ann.ID, "Food")
	expense := s.createExpense(ann.ID, category.ID, "2024-01-01", 100)

	_, err := s.expenses.GetByID(s.ctx, bob.ID, expense.ID)
	assert.ErrorIs(s.T(), err, ErrExpenseNotFound)

	err = s.expenses.Delete(s.ctx, bob.ID, expense.ID)
	assert.ErrorIs(s.T(), err, ErrExpenseNotFound)

	expenses, err := s.expenses.ListByUser(s.ctx, bob.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), expenses)
}

func (s *RepositorySuite) TestDeleteReferencedCategoryBlockedByForeignKey() {
	ann := s.createUser("ann@example.com")
	category := s.createCategory(ann.ID, "Food")
	expense := s.createExpense(ann.ID, category.ID, "2024-01-01", 100)

	err := s.categories.Delete(s.ctx, ann.ID, category.ID)
	assert.ErrorIs(s.T(), err, ErrCategoryInUse)

	inUse, err := s.categories.HasExpenses(s.ctx, category.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), inUse)

	// Once the expense is gone the delete goes through.
	require.NoError(s.T(), s.expenses.Delete(s.ctx, ann.ID, expense.ID))
	require.NoError(s.T(), s.categories.Delete(s.ctx, ann.ID, category.ID))

	categories, err := s.categories.ListByUser(s.ctx, ann.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), categories)
}

func (s *RepositorySuite) TestExpenseCreateWithMissingCategory() {
	ann := s.createUser("ann@example.com")

	_, err := s.expenses.Create(s.ctx, &model.Expense{
		UserID:      ann.ID,
		CategoryID:  9999,
		AmountCents: 100,
		Date:        "2024-01-01",
	})
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)
}

func (s *RepositorySuite) TestUserDeleteCascades() {
	ann := s.createUser("ann@example.com")
	category := s.createCategory(ann.ID, "Food")
	s.createExpense(ann.ID, category.ID, "2024-01-01", 100)

	require.NoError(s.T(), s.users.Delete(s.ctx, ann.ID))

	_, err := s.users.GetByID(s.ctx, ann.ID)
	assert.ErrorIs(s.T(), err, ErrUserNotFound)

	categories, err := s.categories.ListByUser(s.ctx, ann.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), categories)

	expenses, err := s.expenses.ListByUser(s.ctx, ann.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), expenses)

	// Deleting again is not an error.
	assert.NoError(s.T(), s.users.Delete(s.ctx, ann.ID))
}

func (s *RepositorySuite) TestUpdateExpense() {
	ann := s.createUser("ann@example.com")
	food := s.createCategory(ann.ID, "Food")
	travel := s.createCategory(ann.ID, "Travel")
	expense := s.createExpense(ann.ID, food.ID, "2024-01-01", 100)

	expense.CategoryID = travel.ID
	expense.AmountCents = 999
	expense.Date = "2024-02-02"

	updated, err := s.expenses.Update(s.ctx, expense)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Travel", updated.CategoryName)
	assert.Equal(s.T(), int64(999), updated.AmountCents)
	assert.Equal(s.T(), "2024-02-02", updated.Date)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func TestIsDuplicateErr(t *testing.T) {
	assert.False(t, isDuplicateErr(nil))
	assert.False(t, isDuplicateErr(errors.New("some other error")))
	assert.True(t, isDuplicateErr(fmt.Errorf("constraint failed: UNIQUE constraint failed: users.email")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.False(t, isForeignKeyErr(nil))
	assert.False(t, isForeignKeyErr(errors.New("some other error")))
	assert.True(t, isForeignKeyErr(fmt.Errorf("constraint failed: FOREIGN KEY constraint failed")))
}

func TestIsUnavailable(t *testing.T) {
	assert.False(t, IsUnavailable(nil))
	assert.False(t, IsUnavailable(errors.New("syntax error")))
	assert.True(t, IsUnavailable(sql.ErrConnDone))
}
