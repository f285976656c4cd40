package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

func TestCategoryRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)

	category := entity.NewCategory(user.ID, "Food", entity.CategoryTypeExpense, "#FF0000", "utensils", "eating out")
	require.NoError(t, repo.Create(ctx, category))
	require.NotZero(t, category.ID)

	found, err := repo.FindByID(ctx, category.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "Food", found.Name)
	assert.Equal(t, entity.CategoryTypeExpense, found.Type)
	assert.Equal(t, "#FF0000", found.Color)

	// Another owner's scope cannot see the row.
	_, err = repo.FindByID(ctx, category.ID, ownedBy(other.ID))
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	// Unrestricted scope can.
	found, err = repo.FindByID(ctx, category.ID, entity.AccessScope{})
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)
}

func TestCategoryRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	seedCategory(t, db, user.ID, "Salary", entity.CategoryTypeIncome)
	seedCategory(t, db, user.ID, "Transport", entity.CategoryTypeExpense)
	seedCategory(t, db, other.ID, "Food", entity.CategoryTypeExpense)

	page := adapter.Pagination{Page: 1, Limit: 10}

	t.Run("scope limits to owner", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.CategoryFilter{}, page)
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Total)
		assert.Equal(t, "Food", result.Categories[0].Name)
	})

	t.Run("type filter", func(t *testing.T) {
		expense := entity.CategoryTypeExpense
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.CategoryFilter{Type: &expense}, page)
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.CategoryFilter{Search: "SAL"}, page)
		require.NoError(t, err)
		require.EqualValues(t, 1, result.Total)
		assert.Equal(t, "Salary", result.Categories[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.CategoryFilter{}, adapter.Pagination{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Total)
		assert.Equal(t, 2, result.TotalPages)
		require.Len(t, result.Categories, 1)
		assert.Equal(t, "Transport", result.Categories[0].Name)
	})
}

func TestCategoryRepositoryFindAllWithCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	food := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	salary := seedCategory(t, db, user.ID, "Salary", entity.CategoryTypeIncome)
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "12.00", date("2026-01-02"))

	result, err := repo.FindAllWithCounts(ctx, ownedBy(user.ID))
	require.NoError(t, err)
	require.Len(t, result, 2)

	counts := map[uint]int64{}
	for _, c := range result {
		counts[c.Category.ID] = c.TransactionCount
	}
	assert.EqualValues(t, 2, counts[food.ID])
	assert.EqualValues(t, 0, counts[salary.ID])
}

func TestCategoryRepositoryExistsByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)

	exists, err := repo.ExistsByName(ctx, user.ID, "FOOD", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, user.ID, "Food", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(ctx, user.ID+1, "Food", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Travel", entity.CategoryTypeExpense)

	goal := entity.NewGoal(user.ID, "Trip", "", dec("1000.00"), dec("0"), nil, &category.ID)
	goalModel := model.GoalFromEntity(goal)
	require.NoError(t, db.Create(goalModel).Error)

	require.NoError(t, repo.Delete(ctx, category.ID))

	_, err := repo.FindByID(ctx, category.ID, entity.AccessScope{})
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	var reloaded model.GoalModel
	require.NoError(t, db.First(&reloaded, goalModel.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	assert.ErrorIs(t, repo.Delete(ctx, category.ID), domainerror.ErrCategoryNotFound)
}

func TestCategoryRepositoryCountTransactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))

	count, err := repo.CountTransactions(ctx, category.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
