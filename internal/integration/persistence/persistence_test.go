package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finflow/backend/internal/domain/entity"
	"github.com/finflow/backend/internal/integration/persistence/model"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema
// migrated. Each test gets its own database, pinned to a single connection
// so the memory store is not dropped between statements.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.TagModel{},
		&model.TransactionModel{},
		&model.GoalModel{},
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = dbSQL.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role entity.Role) *entity.User {
	t.Helper()
	user := entity.NewUser(name, email, "$2a$12$hash", role)
	userModel := model.UserFromEntity(user)
	require.NoError(t, db.Create(userModel).Error)
	user.ID = userModel.ID
	return user
}

func seedViewer(t *testing.T, db *gorm.DB, name, email string, delegateOf uint) *entity.User {
	t.Helper()
	user := entity.NewUser(name, email, "$2a$12$hash", entity.RoleViewer)
	user.DelegateOf = &delegateOf
	userModel := model.UserFromEntity(user)
	require.NoError(t, db.Create(userModel).Error)
	user.ID = userModel.ID
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, userID uint, name string, categoryType entity.CategoryType) *entity.Category {
	t.Helper()
	category := entity.NewCategory(userID, name, categoryType, "", "", "")
	categoryModel := model.CategoryFromEntity(category)
	require.NoError(t, db.Create(categoryModel).Error)
	category.ID = categoryModel.ID
	return category
}

func seedTag(t *testing.T, db *gorm.DB, userID uint, name string) *entity.Tag {
	t.Helper()
	tag := entity.NewTag(userID, name, "")
	tagModel := model.TagFromEntity(tag)
	require.NoError(t, db.Create(tagModel).Error)
	tag.ID = tagModel.ID
	return tag
}

func seedTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, transactionType entity.TransactionType, amount string, date time.Time) *entity.Transaction {
	t.Helper()
	transaction := entity.NewTransaction(userID, categoryID, transactionType, dec(amount), "seed", date, "")
	transactionModel := model.TransactionFromEntity(transaction)
	require.NoError(t, db.Create(transactionModel).Error)
	transaction.ID = transactionModel.ID
	return transaction
}

func linkTag(t *testing.T, db *gorm.DB, transactionID, tagID uint) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO transaction_tags (transaction_id, tag_id) VALUES (?, ?)",
		transactionID, tagID,
	).Error
	require.NoError(t, err)
}

func seedGoal(t *testing.T, db *gorm.DB, userID uint, name string, target, current string) *entity.Goal {
	t.Helper()
	goal := entity.NewGoal(userID, name, "", dec(target), dec(current), nil, nil)
	goalModel := model.GoalFromEntity(goal)
	require.NoError(t, db.Create(goalModel).Error)
	goal.ID = goalModel.ID
	return goal
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ownedBy(id uint) entity.AccessScope {
	return entity.AccessScope{OwnerID: &id}
}

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}
