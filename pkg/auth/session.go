// Package auth provides authentication and session management utilities.
//
// Session keys should be 32 or 64 bytes for HMAC authentication,
// and 16, 24, or 32 bytes for AES encryption. Production deployments
// must use cryptographically random keys generated with:
//
//	openssl rand -base64 32
package auth

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "worktrack:session:"

	// DefaultSessionMaxAge is used when SessionConfig.MaxAge is zero.
	DefaultSessionMaxAge = 7 * 24 * time.Hour
)

// SessionConfig configures NewSessionStore.
type SessionConfig struct {
	AuthKey       []byte        // signs the cookie; 32 or 64 bytes
	EncryptionKey []byte        // encrypts the cookie; 16, 24 or 32 bytes
	Secure        bool          // HTTPS-only cookie, set in production
	MaxAge        time.Duration // session lifetime
}

// RedisStore is a sessions.Store that keeps session values in Redis under
// "worktrack:session:<id>". Only the encrypted session id travels in the
// HttpOnly, SameSite=Lax cookie. Values are gob-encoded; the tracker stores
// the user id as a string so no gob.Register is needed.
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore returns a Redis-backed store. The Redis TTL and the
// cookie's signed timestamp both expire after cfg.MaxAge.
func NewSessionStore(client *redis.Client, cfg SessionConfig) *RedisStore {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	seconds := int(maxAge / time.Second)

	codecs := securecookie.CodecsFromPairs(cfg.AuthKey, cfg.EncryptionKey)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(seconds)
		}
	}

	return &RedisStore{
		client: client,
		codecs: codecs,
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   seconds,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the request's cached session or loads it from Redis.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie, or a session Redis no longer holds, yields a fresh session
// without error so that RequireAuth answers 401 rather than 500.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	session.ID = id
	if err := s.load(r.Context(), session); err != nil {
		session.ID = ""
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// revokes the session: the Redis key is deleted and the cookie expired.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), sessionKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("revoke session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}
	if err := s.save(r.Context(), session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}

func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	return s.client.Set(ctx, sessionKeyPrefix+session.ID, buf.Bytes(), ttl).Err()
}

var errSessionNotFound = errors.New("session not found")

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) error {
	data, err := s.client.Get(ctx, sessionKeyPrefix+session.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		return errSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("get session from redis: %w", err)
	}
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values)
}
