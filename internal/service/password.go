package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256   = "sha256"
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

const (
	bcryptCost = 12

	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword produces a digest suitable for USER_n_PASSWORD_HASH.
// sha256 is kept as the default for existing deployments even though it is
// unsalted; bcrypt and argon2id are preferred for new users.
func HashPassword(password string, scheme string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeSHA256:
		return sha256Hex(password), nil
	case SchemeBcrypt:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt hash: %w", err)
		}
		return string(hash), nil
	case SchemeArgon2id:
		salt := make([]byte, argonSaltLen)
		if _, err := rand.Read(salt); err != nil {
			return "", fmt.Errorf("argon2 salt: %w", err)
		}
		key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
		return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version, argonMemory, argonTime, argonThreads,
			base64.RawStdEncoding.EncodeToString(salt),
			base64.RawStdEncoding.EncodeToString(key)), nil
	default:
		return "", fmt.Errorf("unsupported hash scheme %q", scheme)
	}
}

// DetectScheme infers the scheme from the stored hash format.
func DetectScheme(hash string) string {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return SchemeArgon2id
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return SchemeBcrypt
	default:
		return SchemeSHA256
	}
}

// VerifyPassword compares password against hash in constant time.
func VerifyPassword(password string, hash string) bool {
	hash = strings.TrimSpace(hash)

	switch DetectScheme(hash) {
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	case SchemeArgon2id:
		return verifyArgon2id(password, hash)
	default:
		computed := sha256Hex(password)
		return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(hash))) == 1
	}
}

func verifyArgon2id(password string, encoded string) bool {
	// $argon2id$v=19$m=65536,t=3,p=2$salt$key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
