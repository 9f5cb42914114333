package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/domain/exchange"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type exchangeItem struct {
	ID                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	ProviderID         uuid.UUID `json:"provider_id"`
	RequesterID        uuid.UUID `json:"requester_id"`
	OfferingID         uuid.UUID `json:"offering_id"`
	RequestDescription *string   `json:"request_description"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type offeringItem struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type requestWithMatches struct {
	Request           json.RawMessage `json:"request"`
	MatchingOfferings []offeringItem  `json:"matching_offerings"`
}

func TestIntegration_ExchangeLifecycle_ListOrdering_Matching(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedLifecycleData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	jwtSvc := jwt.NewHMACService(seed.cfg.JWT.AccessSecret, seed.cfg.JWT.AccessExpiresIn)
	providerTok := mintToken(t, jwtSvc, seed.providerID, "provider@campus.test")
	requesterTok := mintToken(t, jwtSvc, seed.requesterID, "requester@campus.test")

	// pending -> accepted.
	accepted := createExchange(t, app, requesterTok, seed.offeringIDs[0], nil)
	updateStatus(t, app, providerTok, accepted.ID, "accepted", 200)

	// pending -> canceled by the requester.
	canceled := createExchange(t, app, requesterTok, seed.offeringIDs[1], nil)
	updateStatus(t, app, requesterTok, canceled.ID, "canceled", 200)

	// accepted -> completed by the requester.
	completed := createExchange(t, app, requesterTok, seed.offeringIDs[2], nil)
	updateStatus(t, app, providerTok, completed.ID, "accepted", 200)
	updateStatus(t, app, requesterTok, completed.ID, "completed", 200)

	// stays pending; linked to the seeded request so the joined view is
	// enriched with the request's fields.
	pending := createExchange(t, app, requesterTok, seed.offeringIDs[3], &seed.requestID)
	if pending.RequestDescription == nil || *pending.RequestDescription != seed.requestDescription {
		t.Fatalf("create: expected joined request_description %q, got %v", seed.requestDescription, pending.RequestDescription)
	}

	items := listExchanges(t, app, requesterTok)
	if len(items) != 4 {
		t.Fatalf("list: expected 4 exchanges, got %d", len(items))
	}
	assertStatusRankOrdering(t, items)
	if items[0].ID != pending.ID {
		t.Fatalf("list: expected the pending exchange first, got id=%s status=%s", items[0].ID, items[0].Status)
	}

	matches := fetchMatches(t, app, requesterTok, seed.requestID)
	if len(matches) != len(seed.offeringIDs) {
		t.Fatalf("matches: expected %d offerings, got %d", len(seed.offeringIDs), len(matches))
	}
	for i, m := range matches {
		if m.OwnerID == seed.requesterID {
			t.Fatalf("matches: idx=%d includes the requester's own offering %s", i, m.ID)
		}
		if !m.IsActive {
			t.Fatalf("matches: idx=%d includes inactive offering %s", i, m.ID)
		}
		if i > 0 && m.CreatedAt.After(matches[i-1].CreatedAt) {
			t.Fatalf("matches: expected created_at descending at idx=%d: prev=%s cur=%s", i, matches[i-1].CreatedAt, m.CreatedAt)
		}
	}
}

// assertStatusRankOrdering checks the listing invariant: status rank
// ascending, then updated_at descending inside a rank.
func assertStatusRankOrdering(t *testing.T, items []exchangeItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		prev, err := exchange.ParseStatus(items[i-1].Status)
		if err != nil {
			t.Fatalf("list: idx=%d unknown status %q", i-1, items[i-1].Status)
		}
		cur, err := exchange.ParseStatus(items[i].Status)
		if err != nil {
			t.Fatalf("list: idx=%d unknown status %q", i, items[i].Status)
		}

		if cur.Rank() < prev.Rank() {
			t.Fatalf("list: expected status rank ascending at idx=%d: prev=%s cur=%s", i, prev, cur)
		}
		if cur.Rank() == prev.Rank() && items[i].UpdatedAt.After(items[i-1].UpdatedAt) {
			t.Fatalf("list: expected updated_at descending within rank at idx=%d", i)
		}
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/exchange_lifecycle_test.go
	moduleRoot := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(moduleRoot, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

type seededIDs struct {
	cfg config.Config

	providerID  uuid.UUID
	requesterID uuid.UUID

	categoryID uuid.UUID
	skillID    uuid.UUID

	offeringIDs        []uuid.UUID
	ownOfferingID      uuid.UUID
	inactiveOfferingID uuid.UUID

	requestID          uuid.UUID
	requestDescription string
}

func seedLifecycleData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "skillswap", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:    stringsOrDefault(os.Getenv("SKILLSWAP_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
				AccessExpiresIn: 15 * time.Minute,
			},
		},
		requestDescription: "Weekly pairing on goroutines and channels",
	}

	out.providerID = ensureUser(t, ctx, db, "provider@campus.test", "Pat Provider")
	out.requesterID = ensureUser(t, ctx, db, "requester@campus.test", "Riley Requester")

	out.categoryID = ensureCategory(t, ctx, db, "Integration Drills")
	out.skillID = ensureSkill(t, ctx, db, out.categoryID, "Concurrency Pairing")

	// Staggered creation times so newest-first ordering is observable.
	for i := 0; i < 4; i++ {
		age := time.Duration(4-i) * time.Hour
		out.offeringIDs = append(out.offeringIDs, seedOffering(t, ctx, db, out.providerID, out.skillID, true, age))
	}
	out.ownOfferingID = seedOffering(t, ctx, db, out.requesterID, out.skillID, true, 0)
	out.inactiveOfferingID = seedOffering(t, ctx, db, out.providerID, out.skillID, false, 0)

	out.requestID = seedRequest(t, ctx, db, out.requesterID, out.skillID, out.requestDescription)

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM exchanges WHERE provider_id = $1 OR requester_id = $1`, seed.providerID)
	_, _ = db.Exec(ctx, `DELETE FROM skill_requests WHERE id = $1`, seed.requestID)
	_, _ = db.Exec(ctx, `DELETE FROM skill_offerings WHERE user_id = $1 OR user_id = $2`, seed.providerID, seed.requesterID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1 OR id = $2`, seed.providerID, seed.requesterID)
	_, _ = db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, seed.skillID)
	_, _ = db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, seed.categoryID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	logger := log.New(io.Discard, "", 0)

	hub := ws.NewHub(logger)
	go hub.Run()

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())

	routes.NewRegistry(routes.Deps{
		Config: cfg,
		DB:     db,
		Hub:    hub,
		Logger: logger,
	}).Register(app)
	return app
}

func mintToken(t *testing.T, svc jwt.Service, userID uuid.UUID, email string) string {
	t.Helper()

	tok, err := svc.GenerateAccessToken(userID, email, "user")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}

func createExchange(t *testing.T, app *fiber.App, token string, offeringID uuid.UUID, requestID *uuid.UUID) exchangeItem {
	t.Helper()

	body := map[string]any{"offering_id": offeringID}
	if requestID != nil {
		body["request_id"] = *requestID
	}

	sr := apiCall(t, app, "POST", "/api/v1/exchanges/", token, body, 201)

	var item exchangeItem
	if err := json.Unmarshal(sr.Data, &item); err != nil {
		t.Fatalf("create exchange: data unmarshal error: %v", err)
	}
	if item.Status != "pending" {
		t.Fatalf("create exchange: expected status pending, got %s", item.Status)
	}
	return item
}

func updateStatus(t *testing.T, app *fiber.App, token string, id uuid.UUID, status string, wantStatus int) {
	t.Helper()

	apiCall(t, app, "PUT", "/api/v1/exchanges/"+id.String()+"/status", token, map[string]string{"status": status}, wantStatus)
}

func listExchanges(t *testing.T, app *fiber.App, token string) []exchangeItem {
	t.Helper()

	sr := apiCall(t, app, "GET", "/api/v1/exchanges/user", token, nil, 200)

	var items []exchangeItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("list exchanges: data unmarshal error: %v", err)
	}
	return items
}

func fetchMatches(t *testing.T, app *fiber.App, token string, requestID uuid.UUID) []offeringItem {
	t.Helper()

	sr := apiCall(t, app, "GET", "/api/v1/requests/"+requestID.String(), token, nil, 200)

	var res requestWithMatches
	if err := json.Unmarshal(sr.Data, &res); err != nil {
		t.Fatalf("fetch matches: data unmarshal error: %v", err)
	}
	return res.MatchingOfferings
}

func apiCall(t *testing.T, app *fiber.App, method, path, token string, body any, wantStatus int) semanticResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("%s %s: marshal body: %v", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode error: %v", method, path, err)
	}
	if sr.Status != wantStatus {
		t.Fatalf("%s %s: expected status=%d, got %d (message=%s)", method, path, wantStatus, sr.Status, sr.Message)
	}
	return sr
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, fullName string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1,$2,$3)
		 ON CONFLICT (email) DO NOTHING`,
		id, email, "integration-test-hash",
	)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select %s: %v", email, err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO user_profiles (user_id, full_name) VALUES ($1,$2)
		 ON CONFLICT (user_id) DO UPDATE SET full_name = EXCLUDED.full_name`,
		got, fullName,
	)
	if err != nil {
		t.Fatalf("seed profile %s: %v", email, err)
	}
	return got
}

func ensureCategory(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1,$2) ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name,
	)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed category select: %v", err)
	}
	return got
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, categoryID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, category_id, name) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO NOTHING`,
		uuid.New(), categoryID, name,
	)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed skill select %s: %v", name, err)
	}
	return got
}

func seedOffering(t *testing.T, ctx context.Context, db database.DB, ownerID, skillID uuid.UUID, active bool, age time.Duration) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skill_offerings (id, user_id, skill_id, title, description, mode, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		id, ownerID, skillID, "Offering "+id.String()[:8], "seeded", "online", active, time.Now().UTC().Add(-age),
	)
	if err != nil {
		t.Fatalf("seed offering: %v", err)
	}
	return id
}

func seedRequest(t *testing.T, ctx context.Context, db database.DB, ownerID, skillID uuid.UUID, description string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skill_requests (id, user_id, skill_id, title, description, urgency, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,TRUE)`,
		id, ownerID, skillID, "Need a Go study partner", description, "high",
	)
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	return id
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
