package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/computer-store/httpx"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const (
	sessionCookieName = "session"
	sessionIDCtxKey   = ctxKey("sessionID")
	sessionTTL        = 12 * time.Hour
)

// SessionVerifier reports whether a session id from a valid cookie is still
// the live session. Set it during bootstrap via SetSessionVerifier.
type SessionVerifier func(ctx context.Context, sessionID string) bool

var (
	mu       sync.RWMutex
	verifier SessionVerifier
	secret   string
)

// SetSessionVerifier configures the verifier used by RequireAuth.
func SetSessionVerifier(v SessionVerifier) {
	mu.Lock()
	defer mu.Unlock()
	verifier = v
}

// SetSecret overrides the signing secret (normally taken from config).
func SetSecret(s string) {
	mu.Lock()
	defer mu.Unlock()
	secret = s
}

// Secret returns the configured secret, SESSION_SECRET, or a dev value.
func Secret() string {
	mu.RLock()
	s := secret
	mu.RUnlock()
	if s != "" {
		return s
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(value string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie carrying the session id.
func CreateSession(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID + "." + sign(sessionID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

// ParseSession validates the cookie signature and returns the session id.
func ParseSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, sig, ok := strings.Cut(c.Value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(sign(id))) {
		return "", false
	}
	return id, true
}

// WithSessionID stores the session id in context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDCtxKey, id)
}

// SessionIDFromContext extracts the session id.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDCtxKey).(string)
	return id, ok && id != ""
}

// Middleware attaches the session id to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := ParseSession(r); ok {
			r = r.WithContext(WithSessionID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth answers 401 unless the request carries the live session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := SessionIDFromContext(r.Context())
		mu.RLock()
		v := verifier
		mu.RUnlock()
		if !ok || (v != nil && !v(r.Context(), id)) {
			if ok {
				// stale cookie from an ended session
				ClearSession(w)
			}
			httpx.JSONError(w, http.StatusUnauthorized, "auth_required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HashPassword returns a bcrypt hash suitable for the users table.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// IsHashed reports whether stored looks like a bcrypt hash rather than a
// plaintext password written by the legacy desktop program.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword compares a candidate against a stored value. Plaintext
// values are compared in constant time; legacy reports whether the stored
// value should be re-hashed.
func CheckPassword(stored, candidate string) (ok, legacy bool) {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil, false
	}
	if stored == "" {
		return false, false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1, true
}
