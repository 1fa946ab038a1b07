package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"aicademy/internal/database"
	"aicademy/internal/repository"
	"aicademy/internal/security"
	"aicademy/internal/service"
)

const testKidTokenSecret = "test-secret"

func newTestServer(t *testing.T, dbPath string) *httptest.Server {
	t.Helper()

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	parentRepo := repository.NewParentRepository(db)
	kidRepo := repository.NewKidRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	authService := service.NewAuthService(parentRepo, 24*time.Hour)
	profileService := service.NewProfileService(parentRepo, kidRepo)
	progressService := service.NewProgressService(kidRepo, sessionRepo)

	rateLimiter := security.NewRateLimiter(1000, time.Minute)
	middleware := NewMiddleware(authService, testKidTokenSecret, rateLimiter)
	authHandler := NewAuthHandler(authService, nil, nil, "")
	kidHandler := NewKidHandler(profileService, testKidTokenSecret, time.Hour)
	progressHandler := NewProgressHandler(progressService, profileService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/kids", middleware.RequireAuth(kidHandler.CreateKid))
	mux.HandleFunc("GET /api/kids", middleware.RequireAuth(kidHandler.ListKids))
	mux.HandleFunc("GET /api/kids/{id}/progress", middleware.RequireAuth(progressHandler.GetKidProgress))
	mux.HandleFunc("GET /api/progress", middleware.RequireAuth(progressHandler.GetParentProgress))
	mux.HandleFunc("GET /api/kid-picker", kidHandler.KidPicker)
	mux.HandleFunc("POST /api/kid-picker/{id}/select", kidHandler.SelectKid)
	mux.HandleFunc("POST /api/sessions", middleware.RequireKidToken(progressHandler.LogSession))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}, token string) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestAPIFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	server := newTestServer(t, "test_api_flow.db")

	jar := newCookieClient(t)

	// Register a parent; cookie jar captures the session
	resp := postJSON(t, jar, server.URL+"/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "password1",
		"name":     "Alice",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var parent parentView
	decodeBody(t, resp, &parent)
	if parent.Email != "a@x.com" {
		t.Errorf("registered email = %s, want a@x.com", parent.Email)
	}

	// Duplicate registration conflicts
	resp = postJSON(t, jar, server.URL+"/api/register", map[string]string{
		"email":    "a@x.com",
		"password": "password2",
		"name":     "Alice2",
	}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	// Create a kid profile
	resp = postJSON(t, jar, server.URL+"/api/kids", map[string]interface{}{
		"name":   "Sam",
		"age":    8,
		"grade":  "3rd Grade",
		"avatar": "robot",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create kid status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var kid kidView
	decodeBody(t, resp, &kid)

	// Pick the kid and receive an activity token
	resp = postJSON(t, jar, server.URL+"/api/kid-picker/1/select", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select kid status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var selection selectKidResponse
	decodeBody(t, resp, &selection)
	if selection.Token == "" {
		t.Fatal("select kid returned empty token")
	}

	// Logging a session without the token is rejected
	resp = postJSON(t, jar, server.URL+"/api/sessions", map[string]interface{}{
		"total_score":       10,
		"time_spent_minutes": 5,
	}, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated session log status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// Log two sessions with the token
	resp = postJSON(t, jar, server.URL+"/api/sessions", map[string]interface{}{
		"activities_completed": []string{"AI Detective Game"},
		"total_score":          10,
		"time_spent_minutes":   5,
	}, selection.Token)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("log session status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	resp = postJSON(t, jar, server.URL+"/api/sessions", map[string]interface{}{
		"activities_completed": []string{"AI Quiz"},
		"total_score":          20,
		"time_spent_minutes":   15,
		"certificates_earned":  []string{"Quiz Master"},
	}, selection.Token)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("log session status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	// Kid progress reflects both sessions
	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/kids/1/progress", nil)
	getResp, err := jar.Do(req)
	if err != nil {
		t.Fatalf("progress request failed: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("progress status = %d, want %d", getResp.StatusCode, http.StatusOK)
	}
	var progress progressView
	decodeBody(t, getResp, &progress)

	if progress.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", progress.TotalSessions)
	}
	if progress.TotalTimeMinutes != 20 {
		t.Errorf("TotalTimeMinutes = %d, want 20", progress.TotalTimeMinutes)
	}
	if progress.AverageScore != 15.0 {
		t.Errorf("AverageScore = %v, want 15.0", progress.AverageScore)
	}
	if progress.RecentTimeMinutes != 20 {
		t.Errorf("RecentTimeMinutes = %d, want 20", progress.RecentTimeMinutes)
	}

	// Parent rollup includes the kid
	req, _ = http.NewRequest(http.MethodGet, server.URL+"/api/progress", nil)
	getResp, err = jar.Do(req)
	if err != nil {
		t.Fatalf("rollup request failed: %v", err)
	}
	var rollup parentProgressView
	decodeBody(t, getResp, &rollup)
	if len(rollup.Kids) != 1 || rollup.TotalSessions != 2 {
		t.Errorf("rollup = %+v, want one kid with 2 sessions", rollup)
	}
}

func TestAPIAuthRequired(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	server := newTestServer(t, "test_api_auth.db")
	client := server.Client()

	// Protected routes reject anonymous requests
	for _, path := range []string{"/api/me", "/api/kids", "/api/progress"} {
		resp, err := client.Get(server.URL + path)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusUnauthorized)
		}
	}

	// Wrong credentials get the uniform rejection
	resp := postJSON(t, client, server.URL+"/api/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "password1",
	}, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("login status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Error != "Invalid email or password" {
		t.Errorf("login error = %q, want uniform credentials message", body.Error)
	}
}

func newCookieClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}
