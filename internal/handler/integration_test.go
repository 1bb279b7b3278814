//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/spicetable/api/internal/config"
	"github.com/spicetable/api/internal/router"
	"github.com/spicetable/api/internal/storage"
	"github.com/spicetable/api/internal/ws"
)

// TestIntegrationFlow exercises the full customer and admin lifecycle against
// a real PostgreSQL database: session, cart, checkout, login, status
// transitions, stats.
func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()

	_, connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	runMigrations(t, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{
		Port:              "8081",
		DatabaseURL:       connStr,
		JWTSecret:         "integration-test-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: hashPassword(t, "integration-password"),
		CORSOrigins:       []string{"http://localhost:3000"},
	}

	hub := ws.NewHub()
	// NOTE: hub.Run() goroutine leaks on test exit — Hub has no shutdown
	// mechanism. Acceptable for tests.
	go hub.Run()

	r := router.New(cfg, storage.NewPostgres(pool), hub)
	server := httptest.NewServer(r)
	defer server.Close()

	// --- 1. Create a session ---
	sessionResp := httpPostJSON(t, server, "/sessions", nil, "")
	sid := sessionResp["sessionId"].(string)

	// --- 2. Fill the cart ---
	httpPostJSON(t, server, "/sessions/"+sid+"/cart/items", map[string]string{"itemId": "main-1"}, "")
	httpPostJSON(t, server, "/sessions/"+sid+"/cart/items", map[string]string{"itemId": "main-2"}, "")

	// --- 3. Checkout ---
	orderResp := httpPostJSON(t, server, "/sessions/"+sid+"/checkout", map[string]string{
		"customerName":  "Integration Tester",
		"customerPhone": "555-0100",
		"paymentMethod": "card",
	}, "")
	orderID := orderResp["id"].(string)

	// 14.50 + 11.00 = 25.50 subtotal, 2.55 tax, 5.99 fee
	if got := orderResp["total"].(string); got != "34.04" {
		t.Fatalf("order total: got %s, want 34.04", got)
	}
	if got := orderResp["status"].(string); got != "pending" {
		t.Fatalf("order status: got %s, want pending", got)
	}

	// --- 4. Cart is empty after checkout ---
	cartResp := httpGetJSON(t, server, "/sessions/"+sid+"/cart", "")
	if got := cartResp["count"].(float64); got != 0 {
		t.Fatalf("cart count after checkout: got %v, want 0", got)
	}

	// --- 5. Admin login ---
	loginResp := httpPostJSON(t, server, "/auth/login", map[string]string{
		"username": "admin",
		"password": "integration-password",
	}, "")
	token := loginResp["access_token"].(string)

	// --- 6. Admin routes reject unauthenticated requests ---
	req, _ := http.NewRequest("GET", server.URL+"/admin/orders", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unauthenticated admin request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated admin status: got %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// --- 7. The order shows up in the admin list ---
	listBody := httpGetBody(t, server, "/admin/orders?status=pending", token)
	var adminOrders []map[string]interface{}
	if err := json.Unmarshal(listBody, &adminOrders); err != nil {
		t.Fatalf("decode admin orders: %v", err)
	}
	if len(adminOrders) != 1 || adminOrders[0]["id"] != orderID {
		t.Fatalf("admin orders: got %v, want only %s", adminOrders, orderID)
	}

	// --- 8. Walk the order to delivered ---
	for _, step := range []string{"prepare", "ready", "deliver"} {
		stepResp := httpPostJSON(t, server, "/admin/orders/"+orderID+"/"+step, nil, token)
		if stepResp["id"] != orderID {
			t.Fatalf("%s: got order %v, want %s", step, stepResp["id"], orderID)
		}
	}

	// --- 9. Delivered orders cannot be cancelled ---
	req, _ = http.NewRequest("DELETE", server.URL+"/admin/orders/"+orderID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("cancel request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("cancel delivered status: got %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	// --- 10. Stats reflect the delivered order ---
	statsBody := httpGetBody(t, server, "/admin/stats", token)
	var stats map[string]interface{}
	if err := json.Unmarshal(statsBody, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["revenue"] != "34.04" {
		t.Fatalf("revenue: got %v, want 34.04", stats["revenue"])
	}
	if stats["totalOrders"] != float64(1) {
		t.Fatalf("totalOrders: got %v, want 1", stats["totalOrders"])
	}
}

// --- Infrastructure helpers ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("spicetable_test"),
		tcpostgres.WithUsername("spicetable"),
		tcpostgres.WithPassword("spicetable"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}

	return pgContainer, connStr, cleanup
}

func runMigrations(t *testing.T, connStr string) {
	t.Helper()

	// Connect with stdlib for migrate
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db for migrations: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		t.Fatalf("create migrate driver: %v", err)
	}

	// Path relative to this test file's package directory. Go test sets cwd
	// to the package directory.
	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"postgres", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("run migrations: %v", err)
	}
}

// --- HTTP helpers ---

func httpPostJSON(t *testing.T, server *httptest.Server, path string, body interface{}, token string) map[string]interface{} {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest("POST", server.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		t.Fatalf("POST %s: status %d", path, resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode POST %s response: %v", path, err)
	}
	return out
}

func httpGetJSON(t *testing.T, server *httptest.Server, path, token string) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(httpGetBody(t, server, path, token), &out); err != nil {
		t.Fatalf("decode GET %s response: %v", path, err)
	}
	return out
}

func httpGetBody(t *testing.T, server *httptest.Server, path, token string) []byte {
	t.Helper()

	req, err := http.NewRequest("GET", server.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read GET %s body: %v", path, err)
	}
	return buf.Bytes()
}
