// Package session issues the opaque bearer tokens handed out at login.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
	"github.com/google/uuid"
)

// Collection holds one document per issued token.
const Collection = "session"

// DefaultTTL is the lifetime of a session when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var ErrUserRequired = errors.New("session: user id is required")

// Session is an issued bearer token. Expired sessions are never purged.
type Session struct {
	ID        docstore.ID
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Client describes where the token was requested from. Both fields are
// optional and only stored when set.
type Client struct {
	UserAgent string
	IP        string
}

// Manager persists sessions in the document store.
type Manager struct {
	store docstore.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager constructs a manager. A non-positive ttl falls back to DefaultTTL.
func NewManager(store docstore.Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// Issue creates a fresh token for userID and stores it.
func (m *Manager) Issue(ctx context.Context, userID string, client Client) (Session, error) {
	if strings.TrimSpace(userID) == "" {
		return Session{}, ErrUserRequired
	}
	if m.store == nil {
		return Session{}, docstore.ErrUnavailable
	}

	created := m.now().UTC()
	sess := Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		CreatedAt: created,
		ExpiresAt: created.Add(m.ttl),
	}

	doc := docstore.Document{
		"user_id":               sess.UserID,
		"token":                 sess.Token,
		docstore.FieldCreatedAt: sess.CreatedAt,
		"expires_at":            sess.ExpiresAt,
	}
	if client.UserAgent != "" {
		doc["user_agent"] = client.UserAgent
	}
	if client.IP != "" {
		doc["ip"] = client.IP
	}

	id, err := m.store.InsertOne(ctx, Collection, doc)
	if err != nil {
		return Session{}, fmt.Errorf("storing session: %w", err)
	}
	sess.ID = id
	return sess, nil
}
