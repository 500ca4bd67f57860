package service

import (
	"log/slog"
	"strings"

	"coupon-generator/internal/model"
)

// dummyHash is compared against when the username is unknown so that a miss
// costs the same as a wrong password.
var dummyHash = sha256Hex("coupon-generator-dummy")

// AuthService is the read-only credential store built from configuration.
type AuthService struct {
	usersByUsername map[string]model.UserRecord
}

func NewAuthService(users []model.UserRecord) *AuthService {
	byName := make(map[string]model.UserRecord, len(users))
	for _, user := range users {
		key := strings.ToLower(strings.TrimSpace(user.Username))
		if _, exists := byName[key]; exists {
			slog.Warn("duplicate username in configuration; keeping first", "username", user.Username)
			continue
		}
		byName[key] = user
	}

	if len(byName) == 0 {
		slog.Warn("no users configured; nobody can sign in")
	}

	return &AuthService{usersByUsername: byName}
}

// Authenticate returns the identity for a matching username and password.
// Username lookup is case-insensitive.
func (s *AuthService) Authenticate(username string, password string) (model.Identity, bool) {
	user, exists := s.usersByUsername[strings.ToLower(strings.TrimSpace(username))]
	if !exists {
		VerifyPassword(password, dummyHash)
		return model.Identity{}, false
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return model.Identity{}, false
	}

	return user.Identity(), true
}

func (s *AuthService) UserCount() int {
	return len(s.usersByUsername)
}
