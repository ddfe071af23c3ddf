package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "artisan_session_token"

// sessionTTL bounds how long an issued token stays valid. The cookie max-age
// in LoginHandler must not outlive this.
const sessionTTL = time.Hour

// sessions holds the tokens issued by LoginHandler, keyed to their expiry.
// In-memory only: a restart invalidates every session, which is acceptable
// for a single-instance deployment.
var sessions = struct {
	sync.Mutex
	expiry map[string]time.Time
}{expiry: make(map[string]time.Time)}

// newSession issues a fresh random token and registers it.
func newSession() string {
	token := uuid.New().String()
	sessions.Lock()
	defer sessions.Unlock()
	sessions.expiry[token] = time.Now().Add(sessionTTL)
	return token
}

// validSession reports whether the token was issued and has not expired.
// Expired tokens are dropped on first sight.
func validSession(token string) bool {
	sessions.Lock()
	defer sessions.Unlock()
	expiry, ok := sessions.expiry[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(sessions.expiry, token)
		return false
	}
	return true
}

// endSession revokes a token. Unknown tokens are a no-op.
func endSession(token string) {
	sessions.Lock()
	defer sessions.Unlock()
	delete(sessions.expiry, token)
}
