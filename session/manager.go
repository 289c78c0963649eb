package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/utils"
	"github.com/octabyte/campus-portal/utils/logger"
)

// ErrIncompleteSession is returned by Establish when any of the three
// session fields is missing.
var ErrIncompleteSession = errors.New("session: access token, refresh token and user are all required")

// Manager reads and writes the session through a Store. It holds no session
// state of its own: every read goes to the store.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads all three fields. Absent keys yield empty fields; an undecodable
// user profile is treated as absent.
func (m *Manager) Load(ctx context.Context) (models.Session, error) {
	var s models.Session
	var err error

	if s.AccessToken, err = m.get(ctx, KeyAccessToken); err != nil {
		return models.Session{}, err
	}
	if s.RefreshToken, err = m.get(ctx, KeyRefreshToken); err != nil {
		return models.Session{}, err
	}
	if s.User, err = m.User(ctx); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// AccessToken returns the stored access token, or "" when absent.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	return m.get(ctx, KeyAccessToken)
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	return m.get(ctx, KeyRefreshToken)
}

// User returns the cached profile, or nil when absent or unreadable.
func (m *Manager) User(ctx context.Context) (*models.User, error) {
	raw, err := m.get(ctx, KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}

	var user models.User
	if err := utils.StringToStruct(raw, &user); err != nil {
		logger.LogWarn("discarding unreadable cached user profile", zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// Establish writes all three fields with user encoded as the profile.
func (m *Manager) Establish(ctx context.Context, tokens models.Tokens, user *models.User) error {
	if user == nil {
		return ErrIncompleteSession
	}
	encoded, err := utils.StructToString(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	return m.EstablishProfile(ctx, tokens, encoded)
}

// EstablishProfile writes all three fields, storing profile verbatim so
// fields models.User does not know about survive. The profile must decode
// as a user. If any write fails the previous session is put back as it was.
func (m *Manager) EstablishProfile(ctx context.Context, tokens models.Tokens, profile string) error {
	if tokens.Access == "" || tokens.Refresh == "" || profile == "" {
		return ErrIncompleteSession
	}
	var user models.User
	if err := utils.StringToStruct(profile, &user); err != nil {
		return fmt.Errorf("session: decode user: %w", err)
	}

	prior, err := m.snapshot(ctx)
	if err != nil {
		return err
	}

	writes := []struct{ key, value string }{
		{KeyAccessToken, tokens.Access},
		{KeyRefreshToken, tokens.Refresh},
		{KeyUser, profile},
	}
	for _, w := range writes {
		if err := m.store.Set(ctx, w.key, w.value); err != nil {
			m.restore(ctx, prior)
			return fmt.Errorf("session: write %s: %w", w.key, err)
		}
	}
	return nil
}

// snapshot reads the raw session keys that are currently present.
func (m *Manager) snapshot(ctx context.Context) (map[string]string, error) {
	prior := make(map[string]string, len(sessionKeys))
	for _, key := range sessionKeys {
		v, err := m.store.Get(ctx, key)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session: read %s: %w", key, err)
		}
		prior[key] = v
	}
	return prior, nil
}

// restore replaces the stored session with prior.
func (m *Manager) restore(ctx context.Context, prior map[string]string) {
	if err := m.store.Clear(ctx); err != nil {
		logger.LogError("clearing partial session after failed write", zap.Error(err))
	}
	for _, key := range sessionKeys {
		v, ok := prior[key]
		if !ok {
			continue
		}
		if err := m.store.Set(ctx, key, v); err != nil {
			logger.LogError("restoring previous session after failed write", zap.String("key", key), zap.Error(err))
		}
	}
}

// SetAccessToken overwrites the access token only.
func (m *Manager) SetAccessToken(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, KeyAccessToken, token); err != nil {
		return fmt.Errorf("session: write %s: %w", KeyAccessToken, err)
	}
	return nil
}

// Clear destroys the session.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	return v, nil
}
