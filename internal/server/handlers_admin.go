package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/cloudflex/assistant/internal/types"
)

// handleAdminLogin exchanges the admin credentials for a bearer token.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil {
		s.errorFrom(w, &ErrAdminDisabled{})
		return
	}

	var req types.AdminLoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// bcrypt runs for every attempt, unknown emails included.
	passwordOK := s.passwords.VerifyPassword(req.Password, s.admin.PasswordHash)
	emailOK := strings.EqualFold(strings.TrimSpace(req.Email), s.admin.Email)
	if !passwordOK || !emailOK {
		log.Printf("[admin] failed login from %s", s.extractClientID(r))
		s.errorFrom(w, &ErrInvalidCredentials{})
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken(s.admin.Email)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.AdminLoginResponse{Token: token, ExpiresAt: expiresAt})
}
