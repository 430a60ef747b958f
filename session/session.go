package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie the browser carries between requests.
const CookieName = "quizdeck_session"

var (
	ErrNoSession = errors.New("no active session")
)

// Manager issues and resolves browser sessions. The cookie value is a
// signed JWT carrying the user id and a random session id; the session id
// must also be live in redis, so logout revokes the token immediately.
type Manager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewManager(client *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{
		client: client,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a new session for the user and returns the cookie token.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()

	claims := jwt.RegisteredClaims{
		ID:        sid,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", err
	}

	if err := m.client.Set(ctx, sessionKey(sid), userID, m.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve validates a cookie token and returns the user id it belongs to.
// A well-signed token whose session id was revoked resolves to ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	sid, userID, err := m.parse(token)
	if err != nil {
		return 0, ErrNoSession
	}

	stored, err := m.client.Get(ctx, sessionKey(sid)).Uint64()
	if err == redis.Nil {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	if uint(stored) != userID {
		return 0, ErrNoSession
	}

	return userID, nil
}

// Revoke deletes the server-side session for the token.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, _, err := m.parse(token)
	if err != nil {
		return ErrNoSession
	}

	deleted, err := m.client.Del(ctx, sessionKey(sid)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNoSession
	}
	return nil
}

func (m *Manager) parse(token string) (sid string, userID uint, err error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", 0, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", 0, errors.New("malformed session claims")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return "", 0, err
	}

	return claims.ID, uint(id), nil
}

func sessionKey(sid string) string {
	return "session:" + sid
}
