package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"web-travelsite/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testConfig(apiURL string) config.Config {
	return config.Config{
		ServerPort:       ":0",
		APIURL:           apiURL,
		SiteURL:          "https://example.com",
		SiteName:         "Travel Agency",
		RequestTimeout:   time.Second,
		DashboardTimeout: time.Second,
		SessionTTL:       time.Hour,
		RememberTTL:      24 * time.Hour,
	}
}

func TestHealthRoute(t *testing.T) {
	s := NewServer(testConfig("http://127.0.0.1:1/api"), nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestRoutesAreMounted(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/login":
			_, _ = w.Write([]byte(`{"token":"tok","admin":{"_id":"a1","email":"admin@example.com"}}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer backend.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewServer(testConfig(backend.URL+"/api"), nil, rdb)
	defer s.Stream.Close()

	for path, want := range map[string]int{
		"/":                   http.StatusOK,
		"/places":             http.StatusOK,
		"/robots.txt":         http.StatusOK,
		"/sitemap.xml":        http.StatusOK,
		"/admin/login":        http.StatusOK,
		"/admin":              http.StatusSeeOther,
		"/admin/api/places":   http.StatusUnauthorized,
		"/admin/api/activity": http.StatusUnauthorized,
		"/admin/ws":           http.StatusUnauthorized,
	} {
		resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, path, nil), 5000)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if resp.StatusCode != want {
			t.Fatalf("%s: expected %d, got %d", path, want, resp.StatusCode)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req, 5000)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "admin_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = s.App.Test(req, 5000)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d: %s", resp.StatusCode, body)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil || out["places"] == nil {
		t.Fatalf("unexpected dashboard body %s", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/activity", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, _ = s.App.Test(req, 5000)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected activity 200 without a database, got %d", resp.StatusCode)
	}
}
