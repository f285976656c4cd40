package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/application/usecase/auditlog"
	"github.com/finflow/backend/internal/application/usecase/auth"
	"github.com/finflow/backend/internal/application/usecase/category"
	"github.com/finflow/backend/internal/application/usecase/goal"
	"github.com/finflow/backend/internal/application/usecase/tag"
	"github.com/finflow/backend/internal/application/usecase/transaction"
	"github.com/finflow/backend/internal/application/usecase/user"
	"github.com/finflow/backend/internal/infra/server/router"
	"github.com/finflow/backend/internal/integration/adapters"
	"github.com/finflow/backend/internal/integration/entrypoint/controller"
	"github.com/finflow/backend/internal/integration/entrypoint/middleware"
	"github.com/finflow/backend/internal/integration/persistence"
	"github.com/finflow/backend/internal/integration/persistence/model"
	"github.com/finflow/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var scenarioTags string

func init() {
	flag.StringVar(&scenarioTags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     scenarioTags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	db           *mock.Db
	serverPort   int
	accessToken  string
	refreshToken string

	userIDs       map[string]uint // by email
	categoryIDs   map[string]uint // by name
	tagIDs        map[string]uint // by name
	goalIDs       map[string]uint // by name
	transactionID uint
	lastID        uint
}

type response struct {
	status int
	raw    []byte
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testServerPort int
var testDB *mock.Db
var testAuditStore = mock.NewAuditStore()

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"categories":     &model.CategoryModel{},
			"transactions":   &model.TransactionModel{},
			"tags":           &model.TagModel{},
			"goals":          &model.GoalModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExists)
	ctx.Given(`^an admin exists with email "([^"]*)" and password "([^"]*)"$`, test.anAdminExists)
	ctx.Given(`^an inactive user exists with email "([^"]*)" and password "([^"]*)"$`, test.anInactiveUserExists)
	ctx.Given(`^a viewer exists with email "([^"]*)" and password "([^"]*)" delegating to "([^"]*)"$`, test.aViewerExists)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Domain data setup steps
	ctx.Given(`^a category named "([^"]*)" of type "([^"]*)" exists for "([^"]*)"$`, test.aCategoryExists)
	ctx.Given(`^a tag named "([^"]*)" exists for "([^"]*)"$`, test.aTagExists)
	ctx.Given(`^a transaction of "([^"]*)" type "([^"]*)" in category "([^"]*)" exists for "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^a goal named "([^"]*)" with target "([^"]*)" and current "([^"]*)" exists for "([^"]*)"$`, test.aGoalExists)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendNRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)

	// Audit trail assertion steps
	ctx.Then(`^the audit store should contain (\d+) entries$`, test.theAuditStoreShouldContainEntries)
	ctx.Then(`^the latest audit entry should have action "([^"]*)" and entity type "([^"]*)"$`, test.theLatestAuditEntryShouldHave)
	ctx.Then(`^the latest audit entry should redact the field "([^"]*)"$`, test.theLatestAuditEntryShouldRedact)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.response = nil
	t.userIDs = make(map[string]uint)
	t.categoryIDs = make(map[string]uint)
	t.tagIDs = make(map[string]uint)
	t.goalIDs = make(map[string]uint)
	t.transactionID = 0
	t.lastID = 0

	testAuditStore.Clear()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.Reset()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			tagRepo := persistence.NewTagRepository(testDB.DbConn)
			goalRepo := persistence.NewGoalRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute, 7*24*time.Hour, tokenRepo)

			// Create use cases
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

			createUserUseCase := user.NewCreateUserUseCase(userRepo, passwordService)
			listUsersUseCase := user.NewListUsersUseCase(userRepo)
			getUserUseCase := user.NewGetUserUseCase(userRepo)
			updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService)
			deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, tokenService)
			getUserStatsUseCase := user.NewGetUserStatsUseCase(userRepo)
			setUserActiveUseCase := user.NewSetUserActiveUseCase(userRepo, tokenService)

			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			getCategoryCountsUseCase := category.NewGetCategoryCountsUseCase(categoryRepo)
			getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
			listCategoryTransactionsUseCase := category.NewListCategoryTransactionsUseCase(categoryRepo, transactionRepo)

			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, tagRepo)
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
			updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, tagRepo)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
			getSummaryUseCase := transaction.NewGetSummaryUseCase(transactionRepo)
			getCategoryStatsUseCase := transaction.NewGetCategoryStatsUseCase(transactionRepo)

			createTagUseCase := tag.NewCreateTagUseCase(tagRepo)
			listTagsUseCase := tag.NewListTagsUseCase(tagRepo)
			getPopularTagsUseCase := tag.NewGetPopularTagsUseCase(tagRepo)
			getTagUseCase := tag.NewGetTagUseCase(tagRepo)
			updateTagUseCase := tag.NewUpdateTagUseCase(tagRepo)
			deleteTagUseCase := tag.NewDeleteTagUseCase(tagRepo)
			getTagStatsUseCase := tag.NewGetTagStatsUseCase(tagRepo)
			listTagTransactionsUseCase := tag.NewListTagTransactionsUseCase(tagRepo, transactionRepo)

			createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo)
			listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
			getOverviewUseCase := goal.NewGetOverviewUseCase(goalRepo)
			getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
			updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, categoryRepo)
			deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
			addProgressUseCase := goal.NewAddProgressUseCase(goalRepo)
			getProgressUseCase := goal.NewGetProgressUseCase(goalRepo)

			recordEntryUseCase := auditlog.NewRecordEntryUseCase(testAuditStore)
			listLogsUseCase := auditlog.NewListLogsUseCase(testAuditStore)
			getLogUseCase := auditlog.NewGetLogUseCase(testAuditStore)
			listEntityLogsUseCase := auditlog.NewListEntityLogsUseCase(testAuditStore)
			deleteLogUseCase := auditlog.NewDeleteLogUseCase(testAuditStore)

			// Create controllers
			healthController := controller.NewHealthController()
			authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
			userController := controller.NewUserController(
				createUserUseCase, listUsersUseCase, getUserUseCase, updateUserUseCase,
				deleteUserUseCase, getUserStatsUseCase, setUserActiveUseCase,
			)
			categoryController := controller.NewCategoryController(
				createCategoryUseCase, listCategoriesUseCase, getCategoryCountsUseCase, getCategoryUseCase,
				updateCategoryUseCase, deleteCategoryUseCase, listCategoryTransactionsUseCase,
			)
			transactionController := controller.NewTransactionController(
				createTransactionUseCase, listTransactionsUseCase, getTransactionUseCase,
				updateTransactionUseCase, deleteTransactionUseCase, getSummaryUseCase, getCategoryStatsUseCase,
			)
			tagController := controller.NewTagController(
				createTagUseCase, listTagsUseCase, getPopularTagsUseCase, getTagUseCase,
				updateTagUseCase, deleteTagUseCase, getTagStatsUseCase, listTagTransactionsUseCase,
			)
			goalController := controller.NewGoalController(
				createGoalUseCase, listGoalsUseCase, getOverviewUseCase, getGoalUseCase,
				updateGoalUseCase, deleteGoalUseCase, addProgressUseCase, getProgressUseCase,
			)
			auditLogController := controller.NewAuditLogController(
				listLogsUseCase, getLogUseCase, listEntityLogsUseCase, deleteLogUseCase,
			)

			// Create middleware
			loginRateLimiter := middleware.NewRateLimiter(mock.NewRedis())
			authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)
			auditRecorder := middleware.NewAuditRecorder(recordEntryUseCase, logger)

			r := router.NewRouter(
				healthController, authController, userController, categoryController,
				transactionController, tagController, goalController, auditLogController,
				loginRateLimiter, authMiddleware, auditRecorder,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExists(email, password string) error {
	return t.createUser(email, password, "regular", true, nil)
}

func (t *testContext) anAdminExists(email, password string) error {
	return t.createUser(email, password, "admin", true, nil)
}

func (t *testContext) anInactiveUserExists(email, password string) error {
	return t.createUser(email, password, "regular", false, nil)
}

func (t *testContext) aViewerExists(email, password, targetEmail string) error {
	targetID, ok := t.userIDs[targetEmail]
	if !ok {
		return fmt.Errorf("delegate target %q does not exist", targetEmail)
	}
	return t.createUser(email, password, "viewer", true, &targetID)
}

func (t *testContext) createUser(email, password, role string, active bool, delegateOf *uint) error {
	now := time.Now().UTC()
	userModel := &model.UserModel{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hashPassword(password),
		Role:         role,
		IsActive:     active,
		DelegateOf:   delegateOf,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := t.db.DbConn.Create(userModel).Error; err != nil {
		return err
	}
	if !active {
		// IsActive carries gorm:"default:true", so Create drops the zero-value
		// false; persist it explicitly.
		if err := t.db.DbConn.Model(userModel).Update("is_active", false).Error; err != nil {
			return err
		}
	}
	t.userIDs[email] = userModel.ID
	return nil
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) iAmLoggedInAs(email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		return fmt.Errorf("user %q does not exist", email)
	}

	accessToken, err := mintToken(userID, email, "access", 15*time.Minute)
	if err != nil {
		return err
	}
	refreshToken, err := mintToken(userID, email, "refresh", 7*24*time.Hour)
	if err != nil {
		return err
	}
	t.accessToken = accessToken
	t.refreshToken = refreshToken

	refreshModel := &model.RefreshTokenModel{
		Token:     refreshToken,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	return t.db.DbConn.Create(refreshModel).Error
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	t.refreshToken = ""
	return nil
}

func mintToken(userID uint, email, tokenType string, duration time.Duration) (string, error) {
	now := time.Now().UTC()
	subject := strconv.FormatUint(uint64(userID), 10)
	claims := jwt.MapClaims{
		"user_id":    subject,
		"email":      email,
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(duration)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "finflow",
		"sub":        subject,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aCategoryExists(name, categoryType, email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		return fmt.Errorf("user %q does not exist", email)
	}

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		Color:     "#6366F1",
		Icon:      "tag",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(categoryModel).Error; err != nil {
		return err
	}
	t.categoryIDs[name] = categoryModel.ID
	return nil
}

func (t *testContext) aTagExists(name, email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		return fmt.Errorf("user %q does not exist", email)
	}

	now := time.Now().UTC()
	tagModel := &model.TagModel{
		UserID:    userID,
		Name:      name,
		Color:     "#9CA3AF",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(tagModel).Error; err != nil {
		return err
	}
	t.tagIDs[name] = tagModel.ID
	return nil
}

func (t *testContext) aTransactionExists(amount, transactionType, categoryName, email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		return fmt.Errorf("user %q does not exist", email)
	}
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q does not exist", categoryName)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      value,
		Description: "Seeded transaction",
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.db.DbConn.Create(transactionModel).Error; err != nil {
		return err
	}
	t.transactionID = transactionModel.ID
	return nil
}

func (t *testContext) aGoalExists(name, target, current, email string) error {
	userID, ok := t.userIDs[email]
	if !ok {
		return fmt.Errorf("user %q does not exist", email)
	}

	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	currentAmount, err := decimal.NewFromString(current)
	if err != nil {
		return fmt.Errorf("invalid current %q: %w", current, err)
	}

	now := time.Now().UTC()
	goalModel := &model.GoalModel{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Priority:      "medium",
		IsCompleted:   currentAmount.GreaterThanOrEqual(targetAmount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(goalModel).Error; err != nil {
		return err
	}
	t.goalIDs[name] = goalModel.ID
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendNRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", strconv.FormatUint(uint64(t.transactionID), 10))
	content = strings.ReplaceAll(content, "{{last_id}}", strconv.FormatUint(uint64(t.lastID), 10))

	if strings.Contains(content, "{{log_id}}") {
		logID := ""
		if latest := testAuditStore.Latest(); latest != nil {
			logID = latest.LogID
		}
		content = strings.ReplaceAll(content, "{{log_id}}", logID)
	}

	content = replaceNamedIDs(content, "user_id", func(email string) (uint, bool) {
		id, ok := t.userIDs[email]
		return id, ok
	})
	content = replaceNamedIDs(content, "category_id", func(name string) (uint, bool) {
		id, ok := t.categoryIDs[name]
		return id, ok
	})
	content = replaceNamedIDs(content, "tag_id", func(name string) (uint, bool) {
		id, ok := t.tagIDs[name]
		return id, ok
	})
	content = replaceNamedIDs(content, "goal_id", func(name string) (uint, bool) {
		id, ok := t.goalIDs[name]
		return id, ok
	})

	return content
}

// replaceNamedIDs substitutes placeholders of the form {{kind:key}} with the
// numeric id the lookup returns for key.
func replaceNamedIDs(content, kind string, lookup func(string) (uint, bool)) string {
	prefix := "{{" + kind + ":"
	for {
		start := strings.Index(content, prefix)
		if start < 0 {
			return content
		}
		end := strings.Index(content[start:], "}}")
		if end < 0 {
			return content
		}
		end += start
		key := content[start+len(prefix) : end]
		replacement := ""
		if id, ok := lookup(key); ok {
			replacement = strconv.FormatUint(uint64(id), 10)
		}
		content = content[:start] + replacement + content[end+2:]
	}
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, raw: raw}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		t.response.body = parsed

		if object, ok := parsed.(map[string]any); ok {
			if id, ok := object["id"].(float64); ok {
				t.lastID = uint(id)
			}
			if token, ok := object["refresh_token"].(string); ok && token != "" {
				t.refreshToken = token
			}
			if token, ok := object["access_token"].(string); ok && token != "" && method == http.MethodPost {
				t.accessToken = token
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), t.replacePlaceholders(expected)) {
		return fmt.Errorf("response does not contain %q: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(t.response.body, field); value != nil {
		return fmt.Errorf("field %q should not exist but is %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		if count == 0 {
			return nil
		}
		return err
	}
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array: %v", field, value)
	}
	if len(arr) != count {
		return fmt.Errorf("field %q expected %d items, got %d", field, count, len(arr))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response: %s", field, string(t.response.raw))
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	slicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := t.db.DbConn.Find(slicePtr.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

// Audit entries are written by a fire-and-forget goroutine, so assertions
// poll briefly before failing.
func (t *testContext) theAuditStoreShouldContainEntries(quantity int) error {
	var count int
	for i := 0; i < 20; i++ {
		count = testAuditStore.Count()
		if count == quantity {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("expected %d audit entries, got %d", quantity, count)
}

func (t *testContext) theLatestAuditEntryShouldHave(action, entityType string) error {
	for i := 0; i < 20; i++ {
		if latest := testAuditStore.Latest(); latest != nil {
			if latest.Action == action && latest.EntityType == entityType {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	latest := testAuditStore.Latest()
	if latest == nil {
		return errors.New("no audit entries recorded")
	}
	return fmt.Errorf("expected action %q entity %q, got action %q entity %q",
		action, entityType, latest.Action, latest.EntityType)
}

func (t *testContext) theLatestAuditEntryShouldRedact(field string) error {
	for i := 0; i < 20; i++ {
		if latest := testAuditStore.Latest(); latest != nil {
			if body, ok := latest.NewValue.(map[string]any); ok {
				if body[field] == "[REDACTED]" {
					return nil
				}
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("field %q is not redacted in the latest audit entry", field)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	current := object

	for _, segment := range fields {
		if current == nil {
			return nil
		}

		if index, err := strconv.Atoi(segment); err == nil {
			arr, ok := current.([]any)
			if !ok || index >= len(arr) {
				return nil
			}
			current = arr[index]
			continue
		}

		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[segment]
	}

	return current
}
