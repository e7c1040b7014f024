package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"debtplanner/internal/cache"
	"debtplanner/internal/handlers"
	"debtplanner/internal/logger"
	"debtplanner/internal/metrics"
	"debtplanner/internal/middleware"
	"debtplanner/internal/services"
	"debtplanner/internal/testutil"
	"debtplanner/internal/validator"
)

const testPipelineAPIKey = "integration-pipeline-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Metrics *metrics.Metrics
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(testutil.Models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite and an in-memory plan cache.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	m := metrics.New()

	// Services
	userService := services.NewUserService(db)
	debtService := services.NewDebtService(db)
	paymentService := services.NewPaymentService(db)
	fundingService := services.NewFundingService(db)
	auditService := services.NewAuditService(db)
	plannerService := services.NewPlannerService(db, services.PlannerConfig{
		Cache:    cache.NewMemoryCache(64),
		CacheTTL: time.Minute,
		Metrics:  m,
	})
	snapshotService := services.NewPlanSnapshotService(db, plannerService, m)

	// Handlers
	h := handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userService, auditService),
		Debt:     handlers.NewDebtHandler(debtService, plannerService, auditService),
		Payment:  handlers.NewPaymentHandler(paymentService, auditService),
		Funding:  handlers.NewFundingHandler(fundingService, auditService),
		Plan:     handlers.NewPlanHandler(plannerService, snapshotService, auditService),
		Pipeline: handlers.NewPipelineHandler(fundingService, snapshotService, m),
	}

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(m))
	router.Use(middleware.ErrorHandler())
	router.GET("/metrics", gin.WrapH(m.Handler()))

	handlers.RegisterRoutes(router.Group("/api/v1"), h, testPipelineAPIKey)

	return &testApp{DB: db, Router: router, Metrics: m}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// pipelineRequest makes a request authenticated with the pipeline API key.
func (app *testApp) pipelineRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testPipelineAPIKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createDebt creates a debt and returns its ID.
func (app *testApp) createDebt(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/debts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create debt failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["debt"].(map[string]interface{})["id"].(string)
}

// setPlanSettings saves the user's default strategy and monthly budget.
func (app *testApp) setPlanSettings(t *testing.T, token, strategy string, budget int64) {
	t.Helper()
	body := fmt.Sprintf(`{"payoff_strategy":%q,"monthly_budget":%d}`, strategy, budget)
	rec := app.request("PUT", "/api/v1/profile/plan-settings", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update plan settings failed: %d %s", rec.Code, rec.Body.String())
	}
}
