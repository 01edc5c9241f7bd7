package auth

import (
	"strings"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/session"
)

// CookieName is the name of the session cookie
const CookieName = "blog_session"

// Resolver turns a request's Cookie header into an Identity
type Resolver struct {
	sessions   *session.Store
	cookieName string
}

// NewResolver creates a resolver reading the given cookie name.
// An empty name falls back to CookieName.
func NewResolver(sessions *session.Store, cookieName string) *Resolver {
	if cookieName == "" {
		cookieName = CookieName
	}
	return &Resolver{sessions: sessions, cookieName: cookieName}
}

// CookieName returns the cookie name the resolver reads
func (r *Resolver) CookieName() string {
	return r.cookieName
}

// Resolve never fails: any problem with the header, the cookie value or the
// session lookup yields the anonymous identity.
func (r *Resolver) Resolve(header string, present bool) models.Identity {
	if !present {
		return models.Anonymous()
	}

	cookies, ok := ParseCookies(header)
	if !ok {
		return models.Anonymous()
	}

	value, ok := cookies[r.cookieName]
	if !ok {
		return models.Anonymous()
	}

	id, err := models.ParseSessionID(value)
	if err != nil {
		return models.Anonymous()
	}

	state, ok := r.sessions.Lookup(id)
	if !ok {
		return models.Anonymous()
	}

	return models.Identity{State: state, SessionID: &id}
}

// ParseCookies splits a Cookie header into name/value pairs. Parsing is
// all-or-nothing: a single pair that is not exactly name=value rejects the
// whole header.
func ParseCookies(header string) (map[string]string, bool) {
	cookies := make(map[string]string)
	for _, pair := range strings.Split(header, ";") {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			return nil, false
		}
		cookies[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return cookies, true
}
