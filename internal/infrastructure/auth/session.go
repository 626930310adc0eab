package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
)

// ErrNoSession is returned when the request carries no authenticated session
var ErrNoSession = errors.New("no authenticated session")

const (
	sessionKeyUserID   = "user_id"
	sessionKeyTenantID = "tenant_id"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
)

// Principal identifies the logged-in user behind a session cookie or token
type Principal struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Username string
	Role     string
}

// SessionManager stores the principal in a signed cookie
type SessionManager struct {
	store sessions.Store
	name  string
}

// NewSessionManager creates a cookie-backed session manager
func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(cfg.SameSite),
	}
	return &SessionManager{store: store, name: cfg.Name}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Save writes p into the session cookie
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, p Principal) error {
	// a tampered or stale cookie yields a fresh session, which is fine here
	session, _ := m.store.Get(r, m.name)
	session.Values[sessionKeyUserID] = p.UserID.String()
	session.Values[sessionKeyTenantID] = p.TenantID.String()
	session.Values[sessionKeyUsername] = p.Username
	session.Values[sessionKeyRole] = p.Role
	return session.Save(r, w)
}

// Load reads the principal from the session cookie
func (m *SessionManager) Load(r *http.Request) (*Principal, error) {
	session, err := m.store.Get(r, m.name)
	if err != nil || session.IsNew {
		return nil, ErrNoSession
	}
	userID, err := uuid.Parse(stringValue(session, sessionKeyUserID))
	if err != nil {
		return nil, ErrNoSession
	}
	tenantID, err := uuid.Parse(stringValue(session, sessionKeyTenantID))
	if err != nil {
		return nil, ErrNoSession
	}
	return &Principal{
		TenantID: tenantID,
		UserID:   userID,
		Username: stringValue(session, sessionKeyUsername),
		Role:     stringValue(session, sessionKeyRole),
	}, nil
}

// Clear expires the session cookie
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, m.name)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func stringValue(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}
