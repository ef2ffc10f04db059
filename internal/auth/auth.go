// Package auth issues and verifies JWT session tokens for API users.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/siknue/gpg-back/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"

	CookieName = "session_token"
	TokenTTL   = 30 * 24 * time.Hour
)

type Env struct {
	JWTKey []byte
	Repo   repo.Repository
	// SecureCookie marks the session cookie HTTPS-only.
	SecureCookie bool
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserID returns the authenticated user's id, if any.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id != 0
}

func UserLogin(ctx context.Context) string {
	login, _ := ctx.Value(userLoginKey).(string)
	return login
}

// WithUser stores an authenticated user in ctx.
func WithUser(ctx context.Context, id int, login string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userLoginKey, login)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// IssueToken signs an HS256 token carrying user_id and login.
func (env *Env) IssueToken(userID int, login string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(env.JWTKey)
}

// ParseToken validates a token and returns its user.
func (env *Env) ParseToken(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return env.JWTKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID == 0 {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	return int(userID), login, nil
}

// tokenFromRequest prefers the Authorization header over the session cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

func (env *Env) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			unauthorized(w)
			return
		}
		userID, login, err := env.ParseToken(tokenString)
		if err != nil {
			log.Printf("reject token from %s: %v", clientIP(r), err)
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, login)))
	})
}

// issue sets the session cookie and answers with the token in the body.
func (env *Env) issue(w http.ResponseWriter, status int, userID int, login, message string) {
	tokenString, err := env.IssueToken(userID, login)
	if err != nil {
		log.Printf("sign token: %v", err)
		http.Error(w, "Token error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  time.Now().Add(TokenTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   env.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(TokenResponse{Message: message, Token: tokenString})
}

func (env *Env) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Login, email and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if errors.Is(err, repo.ErrUserExists) {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("CreateUser error: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	env.issue(w, http.StatusCreated, id, req.Login, "Registration successful")
}

func (env *Env) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if err != nil {
		log.Printf("GetByLogin error: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); id == 0 || err != nil {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	env.issue(w, http.StatusOK, id, req.Login, "Authentication successful")
}
