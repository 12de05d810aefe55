package integration_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "movie_catalog"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	mongoImageName = "mongo:7"
	mongoDbName    = "movie_catalog_test"
	cacheImageName = "redis:7"
)

// BaseSuite starts the store selected by storage plus a redis cache and
// builds the application on top of them. Each test starts from an empty store.
type BaseSuite struct {
	suite.Suite
	storage    string
	app        *TestApp
	containers []testcontainers.Container
	server     *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	cfg := app.Config{
		Port:    3000,
		Env:     "test",
		Storage: s.storage,
		Redis: app.RedisConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
			CacheTTL:     time.Minute,
		},
	}

	switch s.storage {
	case app.StoragePostgres:
		postgresContainer, err := getDbContainer(ctx)
		s.Require().NoError(err)
		s.containers = append(s.containers, postgresContainer.Container)

		cfg.DB = app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		}
	case app.StorageMongo:
		mongoContainer, err := getMongoContainer(ctx)
		s.Require().NoError(err)
		s.containers = append(s.containers, mongoContainer.Container)

		cfg.Mongo = app.MongoConfig{
			URI:         mongoContainer.ConnectionString,
			Database:    mongoDbName,
			MaxPoolSize: 10,
			Timeout:     10 * time.Second,
		}
	default:
		s.FailNow("unsupported storage", s.storage)
	}

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err)
	s.containers = append(s.containers, redisContainer.Container)

	cfg.Redis.URL = redisContainer.ConnectionString

	testApp, err := newTestApp(cfg)
	s.Require().NoError(err, "cannot initialize app")

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) SetupTest() {
	s.Require().NoError(s.app.reset(context.Background()))
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.close()
	}
	for _, c := range s.containers {
		if err := testcontainers.TerminateContainer(c); err != nil {
			s.T().Logf("failed to terminate container: %s", err)
		}
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	IgnoreKeys       []string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse, s.IgnoreKeys...)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
