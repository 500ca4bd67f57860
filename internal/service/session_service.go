package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coupon-generator/internal/model"
)

const MinSessionSecretLength = 32

// SessionClaims is the signed session payload.
type SessionClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if len(secret) < MinSessionSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters", MinSessionSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &SessionService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token for identity and returns it with its expiry.
func (s *SessionService) Issue(identity model.Identity) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := SessionClaims{
		Username: identity.Username,
		Name:     identity.Name,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the identity carried by token. Any failure, whether a bad
// signature, expiry or malformed payload, reports ok=false.
func (s *SessionService) Verify(token string) (model.Identity, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Identity{}, false
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return model.Identity{}, false
	}

	if claims.Username == "" {
		return model.Identity{}, false
	}

	return model.Identity{
		Username: claims.Username,
		Name:     claims.Name,
		Role:     model.NormalizeRole(claims.Role),
	}, true
}
