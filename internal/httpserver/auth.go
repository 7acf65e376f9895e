// internal/httpserver/auth.go
//
// Optional access gate for the advisor routes.
// When a bcrypt passphrase hash is configured, POST /auth/token exchanges the
// passphrase for an HS256 JWT (returned in the body and as an HttpOnly cookie)
// and requireAccess rejects advisor calls without a valid token.
// With no hash configured the gate is open and /auth/token answers 404.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accessSubject is the JWT subject of every issued token.
const accessSubject = "terraform-os"

type tokenReq struct {
	Passphrase string `json:"passphrase"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) gateEnabled() bool { return s.auth.PassphraseHash != "" }

// mountAuthRoutes registers /auth/token and /auth/logout.
func (s *Server) mountAuthRoutes() {
	s.r.Route("/auth", func(r chi.Router) {
		r.Post("/token", s.handleToken)
		r.Post("/logout", s.handleLogout)
	})
}

// handleToken verifies the passphrase and issues an access token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !s.gateEnabled() {
		httpError(w, http.StatusNotFound, "access_gate_disabled")
		return
	}
	var body tokenReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !checkPassphrase(s.auth.PassphraseHash, body.Passphrase) {
		httpError(w, http.StatusUnauthorized, "Invalid passphrase")
		return
	}
	tok, exp, err := s.signJWT()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// handleLogout clears the token cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// checkPassphrase is a bcrypt verifier.
func checkPassphrase(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// signJWT creates an HS256 token valid for TokenDays.
func (s *Server) signJWT() (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.auth.TokenDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   accessSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.auth.Secret))
	return ss, exp, err
}

// verifyJWT reports whether tok is a live token signed with our secret.
func (s *Server) verifyJWT(tok string) bool {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.auth.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && t.Valid && claims.Subject == accessSubject
}

func (s *Server) cookie(value string) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.auth.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     s.auth.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.auth.Secure,
		SameSite: sameSite,
	}
}

// setAuthCookie writes the token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := s.cookie(token)
	c.Expires = exp
	http.SetCookie(w, c)
}

// clearAuthCookie deletes the token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	c := s.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// bearerOrCookie extracts a bearer token from the Authorization header or the token cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.auth.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireAccess enforces a valid token when the gate is enabled.
func (s *Server) requireAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.gateEnabled() {
				next.ServeHTTP(w, r)
				return
			}
			tok := s.bearerOrCookie(r)
			if tok == "" {
				httpError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !s.verifyJWT(tok) {
				httpError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
