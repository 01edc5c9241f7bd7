package service

import (
	"crypto/subtle"

	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/session"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	sessions *session.Store
	admin    config.AdminConfig
	log      zerolog.Logger
}

func newAuthService(sessions *session.Store, admin config.AdminConfig, log zerolog.Logger) *authService {
	return &authService{
		sessions: sessions,
		admin:    admin,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Login checks the shared admin credentials and opens an admin session.
// A wrong user and a wrong password fail the same way.
func (s *authService) Login(user, password string) (models.SessionID, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.admin.User))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password))
	if !s.admin.AdminConfigured() || userOK&passOK != 1 {
		s.log.Warn().Msg("Failed login attempt")
		return models.SessionID{}, models.ErrUnauthorized
	}

	id, err := s.sessions.Create(models.UserStateAdmin)
	if err != nil {
		return models.SessionID{}, err
	}

	s.log.Info().Int("active_sessions", s.sessions.Len()).Msg("Admin logged in")
	return id, nil
}

// Logout closes the caller's session
func (s *authService) Logout(identity models.Identity) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if identity.SessionID != nil {
		s.sessions.Invalidate(*identity.SessionID)
	}
	s.log.Info().Msg("Admin logged out")
	return nil
}
