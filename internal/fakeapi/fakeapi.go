// Package fakeapi is an in-process stand-in for the college API used by
// tests. It issues HS256 JWTs, records every request and lets tests replace
// any endpoint.
package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/models"
)

// Request is one recorded call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Header        http.Header
	Body          []byte
}

type account struct {
	user     models.User
	password string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	secret    []byte
	requests  []Request
	overrides map[string]http.HandlerFunc
	accounts  map[string]account
	revoked   map[string]bool
	accessGen int
	serial    int
}

func New(t testing.TB) *Server {
	s := &Server{
		secret:    []byte("fakeapi-secret"),
		overrides: make(map[string]http.HandlerFunc),
		accounts:  make(map[string]account),
		revoked:   make(map[string]bool),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root the client should be configured with.
func (s *Server) BaseURL() string { return s.URL + "/api" }

// Handle replaces the handler for path (relative to the API root).
func (s *Server) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = h
}

// Requests returns the recorded calls to path; an empty path returns all.
func (s *Server) Requests(path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if path == "" || r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) Calls(path string) int { return len(s.Requests(path)) }

func (s *Server) TotalCalls() int { return len(s.Requests("")) }

// AddUser registers an account the login endpoint accepts.
func (s *Server) AddUser(email, password string, role enums.Role) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: models.UserID(uuid.NewString()), Email: email, Name: strings.Split(email, "@")[0], Role: role}
	s.accounts[email] = account{user: u, password: password}
	return u
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessGen++
}

// IssueTokens mints a fresh pair for user.
func (s *Server) IssueTokens(user models.User) models.Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Tokens{Access: s.sign(user, "access"), Refresh: s.sign(user, "refresh")}
}

func (s *Server) sign(user models.User, kind string) string {
	s.serial++
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"type":  kind,
		"gen":   s.accessGen,
		"jti":   s.serial,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("fakeapi: sign: %v", err))
	}
	return signed
}

// parse validates a token of the given kind; callers hold s.mu.
func (s *Server) parse(raw, kind string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != kind {
		return nil, false
	}
	if kind == "access" {
		if gen, _ := claims["gen"].(float64); int(gen) != s.accessGen {
			return nil, false
		}
	}
	if kind == "refresh" && s.revoked[raw] {
		return nil, false
	}
	return claims, true
}

func (s *Server) userFor(claims jwt.MapClaims) (models.User, bool) {
	email, _ := claims["email"].(string)
	acc, ok := s.accounts[email]
	return acc.user, ok
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Header:        r.Header.Clone(),
		Body:          body,
	})
	override := s.overrides[path]
	s.mu.Unlock()

	if override != nil {
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		override(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload := gjson.ParseBytes(body)
	switch path {
	case "/auth/login/":
		acc, ok := s.accounts[payload.Get("email").String()]
		if !ok || acc.password != payload.Get("password").String() {
			WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"non_field_errors": []string{"Invalid email or password."}})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"tokens":  map[string]string{"access": s.sign(acc.user, "access"), "refresh": s.sign(acc.user, "refresh")},
			"user":    acc.user,
		})
	case "/auth/register/":
		email := payload.Get("email").String()
		if _, exists := s.accounts[email]; exists {
			WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"email": []string{"user with this email already exists."}})
			return
		}
		if payload.Get("password").String() != payload.Get("password2").String() {
			WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"password": []string{"Password fields didn't match."}})
			return
		}
		u := models.User{ID: models.UserID(uuid.NewString()), Email: email, Name: payload.Get("name").String(), Role: enums.Role(payload.Get("role").String())}
		s.accounts[email] = account{user: u, password: payload.Get("password").String()}
		WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "User registered successfully", "user": u})
	case "/auth/refresh-token/":
		claims, ok := s.parse(payload.Get("refresh").String(), "refresh")
		if !ok {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
		user, _ := s.userFor(claims)
		WriteJSON(w, http.StatusOK, map[string]string{"access": s.sign(user, "access")})
	case "/auth/verify-token/":
		user, ok := s.authorize(r)
		if !ok {
			writeUnauthorized(w)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "Token is valid", "user": user})
	case "/auth/logout/":
		if _, ok := s.authorize(r); !ok {
			writeUnauthorized(w)
			return
		}
		if rt := payload.Get("refresh_token").String(); rt != "" {
			s.revoked[rt] = true
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
	case "/auth/forgot-password/":
		WriteJSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent"})
	case "/auth/reset-password/":
		if payload.Get("token").String() != "valid-reset-token" {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset token"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
	case "/auth/setup/":
		user, ok := s.authorize(r)
		if !ok {
			writeUnauthorized(w)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("%s profile setup completed", user.Role)})
	case "/contact/submit/":
		WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": "Contact form submitted successfully"})
	case "/courses/":
		if _, ok := s.authorize(r); !ok {
			writeUnauthorized(w)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"courses": []string{"B.Tech CSE", "BCA"}})
	default:
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}
}

// authorize checks the bearer access token; callers hold s.mu.
func (s *Server) authorize(r *http.Request) (models.User, bool) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	claims, ok := s.parse(raw, "access")
	if !ok {
		return models.User{}, false
	}
	return s.userFor(claims)
}

func writeUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type", "code": "token_not_valid"})
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Respond returns a handler writing a fixed JSON answer.
func Respond(status int, v interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { WriteJSON(w, status, v) }
}

// Sequence returns a handler answering with each handler in turn, repeating
// the last one.
func Sequence(handlers ...http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	i := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		h := handlers[i]
		if i < len(handlers)-1 {
			i++
		}
		mu.Unlock()
		h(w, r)
	}
}

// Hang returns a handler that drops the connection without answering.
func Hang() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}
}
