package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crackr/config"
	"crackr/provider"
)

const (
	sessionCookie = "crackr_session"
	sessionTTL    = 24 * time.Hour
)

// sessionStore holds admin session tokens in memory. Sessions do not survive
// a restart.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]time.Time)}
}

func (s *sessionStore) create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = time.Now().Add(sessionTTL)
	return token
}

func (s *sessionStore) valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.checkAdminCredential(req.Username, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
}

// checkAdminCredential compares against the bcrypt hash when configured and
// falls back to a constant-time plaintext compare otherwise. No credential
// configured means the admin surface is disabled.
func (s *Server) checkAdminCredential(username, password string) bool {
	admin := s.cfg.Admin
	if subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) != 1 {
		return false
	}
	if admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
	}
	if admin.Password != "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
	}
	return false
}

// requireAdmin rejects requests without a live session cookie.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || !s.sessions.valid(cookie.Value) {
			writeError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleProviderStatus(w http.ResponseWriter, r *http.Request) {
	m := s.Manager()
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": m.ProviderStatus(),
		"available": m.AvailableProviders(),
	})
}

type credentialUpdate struct {
	OpenAIKey     *string `json:"openai_key,omitempty"`
	AnthropicKey  *string `json:"anthropic_key,omitempty"`
	OpenRouterKey *string `json:"openrouter_key,omitempty"`
	OllamaHost    *string `json:"ollama_host,omitempty"`
}

// handleUpdateCredentials applies a partial credential update: fields absent
// from the request keep their current value, empty strings clear a
// credential. A fresh manager is built from the merged snapshot and swapped
// in atomically; in-flight jobs finish on the manager they started with.
func (s *Server) handleUpdateCredentials(w http.ResponseWriter, r *http.Request) {
	var req credentialUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds := s.cfg.Credentials
	if req.OpenAIKey != nil {
		creds.OpenAIKey = *req.OpenAIKey
	}
	if req.AnthropicKey != nil {
		creds.AnthropicKey = *req.AnthropicKey
	}
	if req.OpenRouterKey != nil {
		creds.OpenRouterKey = *req.OpenRouterKey
	}
	if req.OllamaHost != nil {
		creds.OllamaHost = *req.OllamaHost
	}
	s.rotateCredentials(creds)

	m := s.Manager()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "updated",
		"providers": m.ProviderStatus(),
		"available": m.AvailableProviders(),
	})
}

// rotateCredentials stores the new snapshot and swaps in a manager built
// from it.
func (s *Server) rotateCredentials(creds config.Credentials) {
	s.cfg.Credentials = creds
	s.manager.Store(provider.NewManager(creds))
	s.log.Info("provider credentials rotated")
}
