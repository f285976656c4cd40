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

func TestGoalRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	category := seedCategory(t, db, user.ID, "Travel", entity.CategoryTypeExpense)

	targetDate := date("2026-12-31")
	goal := entity.NewGoal(user.ID, "Vacation", "two weeks away", dec("5000.00"), dec("1250.00"), &targetDate, &category.ID)
	require.NoError(t, repo.Create(ctx, goal))
	require.NotZero(t, goal.ID)

	found, err := repo.FindByID(ctx, goal.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "Vacation", found.Name)
	assert.True(t, found.TargetAmount.Equal(dec("5000")))
	assert.False(t, found.IsCompleted)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Travel", found.Category.Name)

	_, err = repo.FindByID(ctx, goal.ID, ownedBy(other.ID))
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}

func TestGoalRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	seedGoal(t, db, user.ID, "Emergency fund", "1000.00", "1000.00")
	seedGoal(t, db, user.ID, "New laptop", "2000.00", "300.00")
	seedGoal(t, db, user.ID, "House deposit", "50000.00", "100.00")

	page := adapter.Pagination{Page: 1, Limit: 10}

	result, err := repo.FindByFilter(ctx, ownedBy(user.ID), adapter.GoalFilter{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Total)

	completed := true
	result, err = repo.FindByFilter(ctx, ownedBy(user.ID), adapter.GoalFilter{Completed: &completed}, page)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	assert.Equal(t, "Emergency fund", result.Goals[0].Name)

	result, err = repo.FindByFilter(ctx, ownedBy(user.ID), adapter.GoalFilter{Search: "house"}, page)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	assert.Equal(t, "House deposit", result.Goals[0].Name)
}

func TestGoalRepositoryExistsByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	goal := seedGoal(t, db, user.ID, "Vacation", "1000.00", "0")

	exists, err := repo.ExistsByName(ctx, user.ID, "VACATION", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, user.ID, "Vacation", goal.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGoalRepositoryUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	goal := seedGoal(t, db, user.ID, "Vacation", "1000.00", "0")

	goal.CurrentAmount = dec("1000.00")
	goal.RefreshCompletion()
	require.NoError(t, repo.Update(ctx, goal))

	found, err := repo.FindByID(ctx, goal.ID, ownedBy(user.ID))
	require.NoError(t, err)
	assert.True(t, found.IsCompleted)

	require.NoError(t, repo.Delete(ctx, goal.ID))
	assert.ErrorIs(t, repo.Delete(ctx, goal.ID), domainerror.ErrGoalNotFound)
}

func TestGoalRepositoryGetOverview(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	other := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	seedGoal(t, db, user.ID, "Open", "1000.00", "250.00")
	seedGoal(t, db, user.ID, "Done", "500.00", "500.00")
	seedGoal(t, db, other.ID, "Foreign", "9000.00", "0")

	overview, err := repo.GetOverview(ctx, ownedBy(user.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, overview.TotalGoals)
	assert.EqualValues(t, 1, overview.CompletedGoals)
	assert.True(t, overview.TargetTotal.Equal(dec("1500")), "target %s", overview.TargetTotal)
	assert.True(t, overview.CurrentTotal.Equal(dec("750")), "current %s", overview.CurrentTotal)
	assert.Equal(t, 50, overview.OverallProgress)
}

func TestGoalRepositoryGetOverviewEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)

	overview, err := repo.GetOverview(ctx, ownedBy(user.ID))
	require.NoError(t, err)
	assert.Zero(t, overview.TotalGoals)
	assert.Zero(t, overview.CompletedGoals)
	assert.Equal(t, 0, overview.OverallProgress)
}
