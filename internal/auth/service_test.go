package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"web-travelsite/internal/apiclient"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"id": "a1"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

// loginBackend answers /admin/login with the given token, or 401 for a wrong password.
func loginBackend(t *testing.T, token string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"admin": map[string]string{"_id": "a1", "email": body["email"], "name": "Admin"},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, token string) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	backend := loginBackend(t, token)
	return NewService(rdb, apiclient.New(backend.URL+"/api", time.Second), time.Hour, 30*24*time.Hour), mr
}

func TestLoginStoresSession(t *testing.T) {
	svc, mr := newTestService(t, signedToken(t, time.Time{}))

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.ID == "" || sess.Token == "" || sess.Admin.Email != "admin@example.com" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !mr.Exists("admin:session:" + sess.ID) {
		t.Fatalf("expected session key in redis")
	}
	if ttl := mr.TTL("admin:session:" + sess.ID); ttl <= 59*time.Minute || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	got, err := svc.Lookup(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Token != sess.Token || got.Admin.ID != "a1" {
		t.Fatalf("unexpected lookup: %+v", got)
	}
}

func TestLoginRememberUsesLongTTL(t *testing.T) {
	svc, mr := newTestService(t, signedToken(t, time.Time{}))

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret", Remember: true})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ttl := mr.TTL("admin:session:" + sess.ID); ttl < 29*24*time.Hour {
		t.Fatalf("expected remember ttl, got %v", ttl)
	}
}

func TestLoginCapsSessionAtTokenExpiry(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute)
	svc, mr := newTestService(t, signedToken(t, exp))

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret", Remember: true})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.ExpiresAt.Unix() != exp.Unix() {
		t.Fatalf("expected expiry %v, got %v", exp, sess.ExpiresAt)
	}
	if ttl := mr.TTL("admin:session:" + sess.ID); ttl > 10*time.Minute {
		t.Fatalf("ttl should be capped, got %v", ttl)
	}
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestService(t, signedToken(t, time.Now().Add(-time.Minute)))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret"})
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, signedToken(t, time.Time{}))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "nope"})
	if apiclient.StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 api error, got %v", err)
	}
	if apiclient.UserMessage(err, "") != "Invalid credentials" {
		t.Fatalf("unexpected message %q", apiclient.UserMessage(err, ""))
	}
}

func TestLoginWithoutToken(t *testing.T) {
	svc, _ := newTestService(t, "")

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret"})
	if !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestLoginWithoutRedis(t *testing.T) {
	svc := NewService(nil, apiclient.New("http://127.0.0.1:1", time.Second), time.Hour, time.Hour)
	if _, err := svc.Login(context.Background(), LoginRequest{Email: "a", Password: "b"}); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), "x"); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestLookupMissingAndLogout(t *testing.T) {
	svc, mr := newTestService(t, signedToken(t, time.Time{}))

	if _, err := svc.Lookup(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty id, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), "unknown"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if mr.Exists("admin:session:" + sess.ID) {
		t.Fatalf("expected session removed")
	}
	if _, err := svc.Lookup(context.Background(), sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestLookupDropsExpiredSession(t *testing.T) {
	svc, mr := newTestService(t, signedToken(t, time.Time{}))

	sess, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	oldNow := nowFn
	nowFn = func() time.Time { return time.Now().Add(2 * time.Hour) }
	defer func() { nowFn = oldNow }()

	if !svc.Expired(sess) {
		t.Fatalf("expected session expired")
	}
	if _, err := svc.Lookup(context.Background(), sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if mr.Exists("admin:session:" + sess.ID) {
		t.Fatalf("expected expired session deleted")
	}
}

func TestTokenExpiry(t *testing.T) {
	if !tokenExpiry("not-a-jwt").IsZero() {
		t.Fatalf("expected zero time for garbage token")
	}
	if !tokenExpiry(signedToken(t, time.Time{})).IsZero() {
		t.Fatalf("expected zero time without exp claim")
	}
	exp := time.Now().Add(time.Hour)
	if got := tokenExpiry(signedToken(t, exp)); got.Unix() != exp.Unix() {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}
