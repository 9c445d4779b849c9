package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "sid"

var ErrInvalidToken = errors.New("invalid session token")

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues signed cookies that carry only an opaque session id.
// The user behind the id lives in the Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	sid := uuid.NewString()
	if err := m.store.Save(ctx, sid, userID, m.ttl); err != nil {
		return "", err
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	sid, err := m.parse(token)
	if err != nil {
		return uuid.Nil, err
	}
	return m.store.Load(ctx, sid)
}

func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, err := m.parse(token)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, sid)
}

func (m *Manager) parse(token string) (string, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || c.SID == "" {
		return "", ErrInvalidToken
	}
	return c.SID, nil
}

// -------- cookie helpers --------

func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl/time.Second), "/", "", m.secure, true)
}

func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
