package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexej1900/cart-api/api"
	"github.com/alexej1900/cart-api/config"
	"github.com/alexej1900/cart-api/database"
	"github.com/alexej1900/cart-api/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
)

// TestEnv is a running instance of the whole API backed by a disposable
// Postgres container, shared by all tests of this package. Tests isolate
// from each other through distinct user ids.
type TestEnv struct {
	URL    string
	DB     *sqlx.DB
	Server *httptest.Server
}

var (
	envOnce sync.Once
	testEnv *TestEnv
	envErr  error
)

func Env(t *testing.T) *TestEnv {
	t.Helper()

	envOnce.Do(func() {
		testEnv, envErr = newTestEnv()
	})
	if envErr != nil {
		t.Skipf("test environment unavailable: %v", envErr)
	}

	return testEnv
}

func newTestEnv() (*TestEnv, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=cart",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	// The container kills itself if a test run is interrupted before
	// AutoRemove can kick in.
	_ = resource.Expire(600)

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       resource.GetHostPort("5432/tcp"),
		Name:       "cart",
		DisableTLS: true,
	}

	var db *sqlx.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return database.StatusCheck(ctx, db)
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for postgres: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test db: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mux := api.APIMux(api.APIConfig{
		Log:     logger,
		DB:      db,
		Limiter: rate.NewLimiter(1000, 100, 1000),
	})

	srv := httptest.NewServer(mux)

	return &TestEnv{
		URL:    srv.URL,
		DB:     db,
		Server: srv,
	}, nil
}

// request performs an authenticated JSON request and decodes the response
// body into out when out is non-nil and the body is not empty.
func (e *TestEnv) request(t *testing.T, userID string, method string, path string, body any, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if userID != "" {
		r.Header.Set("X-User-Id", userID)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.Server.Client().Do(r)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decoding response body: %v", err)
		}
	}

	return w.StatusCode
}
