package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/application/adapter"
	"github.com/finflow/backend/internal/domain/entity"
	domainerror "github.com/finflow/backend/internal/domain/error"
)

func TestTransactionRepositoryCreateWithTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	first := seedTag(t, db, user.ID, "groceries")
	second := seedTag(t, db, user.ID, "weekly")

	transaction := entity.NewTransaction(user.ID, category.ID, entity.TransactionTypeExpense, dec("42.50"), "market run", date("2026-02-01"), "card")
	require.NoError(t, repo.CreateWithTags(ctx, transaction, []uint{first.ID, second.ID}))
	require.NotZero(t, transaction.ID)

	found, err := repo.FindByID(ctx, transaction.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "market run", found.Description)
	assert.True(t, found.Amount.Equal(dec("42.50")))
	require.NotNil(t, found.Category)
	assert.Equal(t, "Food", found.Category.Name)
	require.Len(t, found.Tags, 2)
	assert.Equal(t, first.ID, found.Tags[0].ID)
	assert.Equal(t, second.ID, found.Tags[1].ID)
}

func TestTransactionRepositoryFindByIDScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	transaction := seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))

	_, err := repo.FindByID(ctx, transaction.ID, ownedBy(other.ID))
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	_, err = repo.FindByID(ctx, 9999, entity.AccessScope{})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestTransactionRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	food := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	salary := seedCategory(t, db, user.ID, "Salary", entity.CategoryTypeIncome)
	travel := seedTag(t, db, user.ID, "travel")

	groceries := seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "25.00", date("2026-01-05"))
	pay := seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeIncome, "1000.00", date("2026-01-15"))
	flight := seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "300.00", date("2026-01-25"))
	linkTag(t, db, flight.ID, travel.ID)

	page := adapter.Pagination{Page: 1, Limit: 10}

	t.Run("orders newest first", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{}, page)
		require.NoError(t, err)
		require.EqualValues(t, 3, result.Total)
		assert.Equal(t, flight.ID, result.Transactions[0].ID)
		assert.Equal(t, pay.ID, result.Transactions[1].ID)
		assert.Equal(t, groceries.ID, result.Transactions[2].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		income := entity.TransactionTypeIncome
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{Type: &income}, page)
		require.NoError(t, err)
		require.EqualValues(t, 1, result.Total)
		assert.Equal(t, pay.ID, result.Transactions[0].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{CategoryID: &food.ID}, page)
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)
	})

	t.Run("tag filter", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{TagID: &travel.ID}, page)
		require.NoError(t, err)
		require.EqualValues(t, 1, result.Total)
		assert.Equal(t, flight.ID, result.Transactions[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		start := date("2026-01-10")
		end := date("2026-01-20")
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{StartDate: &start, EndDate: &end}, page)
		require.NoError(t, err)
		require.EqualValues(t, 1, result.Total)
		assert.Equal(t, pay.ID, result.Transactions[0].ID)
	})

	t.Run("search on description", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TransactionFilter{Search: "SEED"}, page)
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Total)
	})
}

func TestTransactionRepositoryUpdateWithTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	old := seedTag(t, db, user.ID, "old")
	fresh := seedTag(t, db, user.ID, "fresh")

	transaction := entity.NewTransaction(user.ID, category.ID, entity.TransactionTypeExpense, dec("10.00"), "lunch", date("2026-01-01"), "")
	require.NoError(t, repo.CreateWithTags(ctx, transaction, []uint{old.ID}))

	transaction.Description = "team lunch"
	require.NoError(t, repo.UpdateWithTags(ctx, transaction, nil, false))

	found, err := repo.FindByID(ctx, transaction.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "team lunch", found.Description)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, old.ID, found.Tags[0].ID)

	require.NoError(t, repo.UpdateWithTags(ctx, transaction, []uint{fresh.ID}, true))

	found, err = repo.FindByID(ctx, transaction.ID, ownedBy(user.ID))
	require.NoError(t, err)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, fresh.ID, found.Tags[0].ID)

	require.NoError(t, repo.UpdateWithTags(ctx, transaction, nil, true))

	found, err = repo.FindByID(ctx, transaction.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Empty(t, found.Tags)
}

func TestTransactionRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	tag := seedTag(t, db, user.ID, "groceries")
	transaction := seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))
	linkTag(t, db, transaction.ID, tag.ID)

	require.NoError(t, repo.Delete(ctx, transaction.ID))

	_, err := repo.FindByID(ctx, transaction.ID, entity.AccessScope{})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	var linkCount int64
	require.NoError(t, db.Table("transaction_tags").Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	assert.ErrorIs(t, repo.Delete(ctx, transaction.ID), domainerror.ErrTransactionNotFound)
}

func TestTransactionRepositoryGetSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	salary := seedCategory(t, db, user.ID, "Salary", entity.CategoryTypeIncome)
	food := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeIncome, "1000.00", date("2026-01-01"))
	seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeIncome, "250.00", date("2026-01-10"))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "400.50", date("2026-01-15"))
	seedTransaction(t, db, other.ID, food.ID, entity.TransactionTypeExpense, "9999.00", date("2026-01-15"))

	summary, err := repo.GetSummary(ctx, ownedBy(user.ID), adapter.TransactionFilter{})
	require.NoError(t, err)
	assert.True(t, summary.IncomeTotal.Equal(dec("1250")), "income %s", summary.IncomeTotal)
	assert.EqualValues(t, 2, summary.IncomeCount)
	assert.True(t, summary.ExpenseTotal.Equal(dec("400.5")), "expense %s", summary.ExpenseTotal)
	assert.EqualValues(t, 1, summary.ExpenseCount)
	assert.True(t, summary.Balance.Equal(dec("849.5")), "balance %s", summary.Balance)

	start := date("2026-01-05")
	summary, err = repo.GetSummary(ctx, ownedBy(user.ID), adapter.TransactionFilter{StartDate: &start})
	require.NoError(t, err)
	assert.True(t, summary.IncomeTotal.Equal(dec("250")), "income %s", summary.IncomeTotal)
}

func TestTransactionRepositoryGetCategoryBreakdown(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	food := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	rent := seedCategory(t, db, user.ID, "Rent", entity.CategoryTypeExpense)
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "100.00", date("2026-01-01"))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "50.00", date("2026-01-02"))
	seedTransaction(t, db, user.ID, rent.ID, entity.TransactionTypeExpense, "800.00", date("2026-01-03"))

	breakdown, err := repo.GetCategoryBreakdown(ctx, ownedBy(user.ID), adapter.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, rent.ID, breakdown[0].CategoryID)
	assert.Equal(t, "Rent", breakdown[0].CategoryName)
	assert.Equal(t, entity.DefaultCategoryColor, breakdown[0].CategoryColor)
	assert.True(t, breakdown[0].Total.Equal(dec("800")), "total %s", breakdown[0].Total)
	assert.EqualValues(t, 1, breakdown[0].Count)

	assert.Equal(t, food.ID, breakdown[1].CategoryID)
	assert.True(t, breakdown[1].Total.Equal(dec("150")), "total %s", breakdown[1].Total)
	assert.EqualValues(t, 2, breakdown[1].Count)
}
