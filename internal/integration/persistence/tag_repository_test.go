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

func TestTagRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)

	tag := entity.NewTag(user.ID, "groceries", "#00FF00")
	require.NoError(t, repo.Create(ctx, tag))
	require.NotZero(t, tag.ID)

	found, err := repo.FindByID(ctx, tag.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "groceries", found.Name)
	assert.Equal(t, "#00FF00", found.Color)

	_, err = repo.FindByID(ctx, tag.ID, ownedBy(other.ID))
	assert.ErrorIs(t, err, domainerror.ErrTagNotFound)
}

func TestTagRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	seedTag(t, db, user.ID, "vacation")
	seedTag(t, db, user.ID, "bills")
	seedTag(t, db, user.ID, "monthly-bills")

	page := adapter.Pagination{Page: 1, Limit: 10}

	result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TagFilter{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)
	assert.Equal(t, "bills", result.Tags[0].Name)

	result, err = repo.FindByFilter(ctx, ownedBy(user.ID), adapter.TagFilter{Search: "BILL"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
}

func TestTagRepositoryFindPopular(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	rarely := seedTag(t, db, user.ID, "rarely")
	often := seedTag(t, db, user.ID, "often")
	never := seedTag(t, db, user.ID, "never")

	first := seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))
	second := seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "11.00", date("2026-01-02"))
	linkTag(t, db, first.ID, often.ID)
	linkTag(t, db, second.ID, often.ID)
	linkTag(t, db, first.ID, rarely.ID)

	popular, err := repo.FindPopular(ctx, ownedBy(user.ID), 0)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, often.ID, popular[0].Tag.ID)
	assert.EqualValues(t, 2, popular[0].TransactionCount)
	assert.Equal(t, rarely.ID, popular[1].Tag.ID)
	assert.Equal(t, never.ID, popular[2].Tag.ID)
	assert.EqualValues(t, 0, popular[2].TransactionCount)

	top, err := repo.FindPopular(ctx, ownedBy(user.ID), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, often.ID, top[0].Tag.ID)
}

func TestTagRepositoryFindOwnedByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	mine := seedTag(t, db, user.ID, "mine")
	foreign := seedTag(t, db, other.ID, "foreign")

	tags, err := repo.FindOwnedByIDs(ctx, user.ID, []uint{mine.ID, foreign.ID, 9999})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, mine.ID, tags[0].ID)

	tags, err = repo.FindOwnedByIDs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepositoryExistsByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	tag := seedTag(t, db, user.ID, "groceries")

	exists, err := repo.ExistsByName(ctx, user.ID, "GROCERIES", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, user.ID, "groceries", tag.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTagRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	tag := seedTag(t, db, user.ID, "groceries")
	transaction := seedTransaction(t, db, user.ID, category.ID, entity.TransactionTypeExpense, "10.00", date("2026-01-01"))
	linkTag(t, db, transaction.ID, tag.ID)

	require.NoError(t, repo.Delete(ctx, tag.ID))

	_, err := repo.FindByID(ctx, tag.ID, entity.AccessScope{})
	assert.ErrorIs(t, err, domainerror.ErrTagNotFound)

	var linkCount int64
	require.NoError(t, db.Table("transaction_tags").Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	assert.ErrorIs(t, repo.Delete(ctx, tag.ID), domainerror.ErrTagNotFound)
}

func TestTagRepositoryGetStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	salary := seedCategory(t, db, user.ID, "Salary", entity.CategoryTypeIncome)
	food := seedCategory(t, db, user.ID, "Food", entity.CategoryTypeExpense)
	tag := seedTag(t, db, user.ID, "monthly")

	income := seedTransaction(t, db, user.ID, salary.ID, entity.TransactionTypeIncome, "200.00", date("2026-01-01"))
	expense := seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "75.50", date("2026-01-02"))
	seedTransaction(t, db, user.ID, food.ID, entity.TransactionTypeExpense, "999.00", date("2026-01-03"))
	linkTag(t, db, income.ID, tag.ID)
	linkTag(t, db, expense.ID, tag.ID)

	stats, err := repo.GetStats(ctx, tag.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TransactionCount)
	assert.True(t, stats.IncomeTotal.Equal(dec("200")), "income %s", stats.IncomeTotal)
	assert.EqualValues(t, 1, stats.IncomeCount)
	assert.True(t, stats.ExpenseTotal.Equal(dec("75.5")), "expense %s", stats.ExpenseTotal)
	assert.EqualValues(t, 1, stats.ExpenseCount)
	assert.True(t, stats.NetTotal.Equal(dec("124.5")), "net %s", stats.NetTotal)
	require.NotNil(t, stats.FirstUsed)
	require.NotNil(t, stats.LastUsed)
	assert.True(t, stats.FirstUsed.Equal(date("2026-01-01")), "first used %s", stats.FirstUsed)
	assert.True(t, stats.LastUsed.Equal(date("2026-01-02")), "last used %s", stats.LastUsed)

	count, err := repo.CountTransactions(ctx, tag.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	unused := seedTag(t, db, user.ID, "unused")
	stats, err = repo.GetStats(ctx, unused.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TransactionCount)
	assert.Nil(t, stats.FirstUsed)
	assert.Nil(t, stats.LastUsed)
}
