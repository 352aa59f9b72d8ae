//go:build integration

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/repo"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/services"
	"github.com/light-bringer/menucat-service/tests/testutil"
)

// Suite runs the full catalog over HTTP against the Spanner emulator and an
// in-memory Redis.
type Suite struct {
	Client  *spanner.Client
	Clock   *clock.MockClock
	Redis   *miniredis.Miniredis
	Catalog *services.Catalog
	Server  *httptest.Server
}

// setupTest initializes all dependencies for E2E testing.
func setupTest(t *testing.T) *Suite {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)
	t.Cleanup(cleanup)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clk := testutil.NewMockClock()
	catalog := services.NewCatalog(services.Dependencies{
		Spanner:    client,
		StatsCache: repo.NewStatisticsCache(rdb),
		Clock:      clk,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	server := httptest.NewServer(catalog.HTTPHandler)
	t.Cleanup(server.Close)

	return &Suite{
		Client:  client,
		Clock:   clk,
		Redis:   mr,
		Catalog: catalog,
		Server:  server,
	}
}

// send issues a JSON request and decodes the response into out when both are
// present. It does not touch testing.T, so it is safe inside goroutines.
func (s *Suite) send(method, path string, body interface{}, out interface{}) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Server.Client().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", raw, err)
		}
	}
	return resp.StatusCode, nil
}

// do is send for the test goroutine; transport failures fail the test.
func (s *Suite) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	status, err := s.send(method, path, body, out)
	require.NoError(t, err)
	return status
}

// create posts b and returns the created item.
func (s *Suite) create(t *testing.T, b *MenuItemBuilder) *contracts.MenuItemDTO {
	t.Helper()

	var item contracts.MenuItemDTO
	status := s.do(t, http.MethodPost, "/api/v1/menu-items", b.Build(), &item)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, item.ID)
	return &item
}
