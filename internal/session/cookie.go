package session

import (
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
)

// IdentityCookieName is the cookie the backend sets alongside login; its
// value is a JWT whose claims carry the user snapshot. The server owns the
// signature; client-side we only read claims for session bootstrap.
const IdentityCookieName = "brd_identity"

// DecodeIdentity extracts the user snapshot from an identity cookie value.
// Malformed content of any kind is treated as an absent identity; this
// must never panic.
func DecodeIdentity(raw string) (*dtos.User, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, false
	}

	user := dtos.User{
		ID:    claimString(claims, "sub"),
		Email: claimString(claims, "email"),
		Name:  claimString(claims, "name"),
		Role:  claimString(claims, "role"),
	}
	if user.ID == "" {
		user.ID = claimString(claims, "id")
	}
	if user.ID == "" || user.Email == "" {
		return nil, false
	}
	return &user, true
}

func claimString(claims jwt.MapClaims, key string) string {
	v, ok := claims[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
