package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
)

// NewSessionID issues a fresh visitor session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether s looks like an id issued by NewSessionID.
func ValidSessionID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 4
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionIDKey).(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

func SetSessionContext(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sid)
}
