package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"web-travelsite/internal/apiclient"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrNoStore      = errors.New("session store unavailable")
	ErrTokenMissing = errors.New("login response carried no token")
	ErrTokenExpired = errors.New("token already expired")
)

var (
	nowFn             = time.Now
	parseUnverifiedFn = jwt.NewParser().ParseUnverified
)

type Service struct {
	redis       *redis.Client
	api         apiclient.Doer
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewService(redisClient *redis.Client, api apiclient.Doer, ttl, rememberTTL time.Duration) *Service {
	return &Service{
		redis:       redisClient,
		api:         api,
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Login exchanges credentials with the backend and opens a session that
// never outlives the backend token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Session, error) {
	if s.redis == nil {
		return Session{}, ErrNoStore
	}

	var resp loginResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/admin/login",
		Body:   map[string]string{"email": req.Email, "password": req.Password},
	}, &resp)
	if err != nil {
		return Session{}, err
	}
	if resp.Token == "" {
		return Session{}, ErrTokenMissing
	}

	now := nowFn()
	ttl := s.ttl
	if req.Remember {
		ttl = s.rememberTTL
	}
	expiresAt := now.Add(ttl)
	if exp := tokenExpiry(resp.Token); !exp.IsZero() && exp.Before(expiresAt) {
		expiresAt = exp
	}
	if !expiresAt.After(now) {
		return Session{}, ErrTokenExpired
	}

	sess := Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		Admin:     resp.Admin,
		Remember:  req.Remember,
		ExpiresAt: expiresAt,
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := s.redis.Set(ctx, sessionKey(sess.ID), payload, expiresAt.Sub(now)).Err(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Lookup(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNoSession
	}
	if s.redis == nil {
		return Session{}, ErrNoStore
	}

	raw, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	if s.Expired(sess) {
		_ = s.Logout(ctx, id)
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" || s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, sessionKey(id)).Err()
}

func (s *Service) Expired(sess Session) bool {
	return !nowFn().Before(sess.ExpiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend owns the key and rejects forged tokens itself.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := parseUnverifiedFn(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func sessionKey(id string) string {
	return "admin:session:" + id
}
