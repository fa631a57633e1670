//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/finance-tracker/recurring/config"
	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/infra/dependency"
	"github.com/finance-tracker/recurring/internal/integration/adapters"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
	"github.com/finance-tracker/recurring/test/integration/mock"
)

const (
	testJWTSecret  = "test-jwt-secret-key-for-testing-purposes"
	testCronSecret = "test-cron-secret"
)

// suiteState holds resources shared by every scenario.
type suiteState struct {
	server       *httptest.Server
	db           *mock.Db
	redis        *mock.Redis
	clock        *mock.Time
	tokenService adapter.TokenService
}

var (
	suite     suiteState
	suiteOnce sync.Once
)

// testContext holds the state of one scenario.
type testContext struct {
	headers       map[string]string
	client        *http.Client
	response      *response
	accessToken   string
	currentUserID uuid.UUID
	categories    map[string]uuid.UUID
	lastID        string
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		suiteOnce.Do(startServer)
	})

	ctx.AfterSuite(func() {
		if suite.server != nil {
			suite.server.Close()
		}
	})
}

func startServer() {
	suite.db = mock.NewDb(map[string]any{
		"categories":            &model.CategoryModel{},
		"transactions":          &model.TransactionModel{},
		"recurring_definitions": &model.RecurringDefinitionModel{},
	})
	suite.redis = mock.NewRedis()
	suite.clock = mock.NewTime()
	suite.tokenService = adapters.NewTokenService(testJWTSecret, time.Hour)

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Scheduler.CronSecret = testCronSecret
	cfg.Conversation.SessionTTL = time.Minute

	injector, err := dependency.NewInjector(cfg, suite.db.DbConn, suite.redis.Client, prometheus.NewRegistry(), suite.clock)
	if err != nil {
		panic(fmt.Sprintf("failed to wire dependencies: %v", err))
	}

	suite.server = httptest.NewServer(injector.Router.Setup(cfg.Server))
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^I am authenticated as a new user$`, test.iAmAuthenticatedAsANewUser)
	ctx.Given(`^(\d+) minutes? pass(?:es)? without messages$`, test.minutesPassWithoutMessages)

	// Fixture steps
	ctx.Given(`^a category "([^"]*)" exists$`, test.aCategoryExists)
	ctx.Given(`^a category "([^"]*)" exists under "([^"]*)"$`, test.aCategoryExistsUnder)
	ctx.Given(`^an approved "([^"]*)" of "([^"]*)" on "([^"]*)" in category "([^"]*)"$`, test.anApprovedTransaction)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^the cron secret header is set$`, test.theCronSecretHeaderIsSet)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response list "([^"]*)" should have (\d+) items?$`, test.theResponseListShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values:$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.categories = make(map[string]uuid.UUID)
	t.lastID = ""

	if err := suite.db.ClearDB(); err != nil {
		return err
	}
	return suite.redis.Clear()
}

func (t *testContext) theAPIServerIsRunning() error {
	for i := 0; i < 50; i++ {
		resp, err := t.client.Get(suite.server.URL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become healthy", suite.server.URL)
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	suite.clock.SetCurrentTime(now)
	return nil
}

func (t *testContext) iAmAuthenticatedAsANewUser() error {
	t.currentUserID = uuid.New()
	token, err := suite.tokenService.GenerateAccessToken(context.Background(), t.currentUserID, "user@example.com")
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) minutesPassWithoutMessages(minutes int) error {
	elapsed := time.Duration(minutes) * time.Minute
	suite.redis.Elapse(elapsed)
	suite.clock.SetCurrentTime(suite.clock.Now().Add(elapsed))
	return nil
}
