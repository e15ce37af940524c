package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader carries the catalog session id in both directions
const SessionHeader = "X-Session-ID"

const sessionIDKey contextKey = "sessionID"

// SessionMiddleware resolves the catalog session of each request.
//
// A well-formed X-Session-ID header is reused as is, otherwise a new session id is generated.
// The resolved id is echoed in the response so that clients can keep it for later requests.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if !headerIDPattern.MatchString(sessionID) {
			sessionID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		w.Header().Set(SessionHeader, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID retrieves the session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSessionID returns a copy of ctx carrying the session id
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
