// Package security hashes and verifies account passwords.
//
// Two encodings are understood. The legacy scheme stores the lowercase hex
// SHA-256 digest of the password; argon2id hashes carry their parameters in
// the PHC string form. VerifyPassword detects the encoding from the stored
// value, so accounts hashed under either scheme keep working when the
// configured scheme changes.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelmondragon/universe-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

const argonPrefix = "$argon2id$"

var (
	// ErrInvalidHash signals a stored hash in neither supported encoding.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ArgonParams captures the Argon2id parameters we embed into each hash string.
type ArgonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// HashPassword encodes password with the scheme selected in cfg.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Scheme), config.PasswordSchemeArgon2id) {
		return hashArgon(password, paramsFromConfig(cfg))
	}
	return HashSHA256(password), nil
}

// HashSHA256 returns the lowercase hex SHA-256 digest of password.
func HashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, encoded string) (bool, error) {
	if strings.HasPrefix(encoded, argonPrefix) {
		return verifyArgon(password, encoded)
	}
	if !isSHA256Hex(encoded) {
		return false, ErrInvalidHash
	}
	computed := HashSHA256(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(encoded)), []byte(computed)) == 1, nil
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func hashArgon(password string, params ArgonParams) (string, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix, argon2.Version, params.Memory, params.Time, params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func verifyArgon(password, encoded string) (bool, error) {
	params, salt, key, err := decodeArgon(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func paramsFromConfig(cfg config.PasswordConfig) ArgonParams {
	return ArgonParams{
		Memory:      clampUint32(cfg.ArgonMemoryKB, 8, 512*1024),
		Time:        clampUint32(cfg.ArgonTime, 1, 10),
		Parallelism: uint8(clampInt(cfg.ArgonParallelism, 1, 255)),
		SaltLen:     clampUint32(cfg.ArgonSaltLen, 8, 64),
		KeyLen:      clampUint32(cfg.ArgonKeyLen, 16, 64),
	}
}

// decodeArgon parses $argon2id$v=19$m=..,t=..,p=..$salt$key.
func decodeArgon(encoded string) (ArgonParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	var params ArgonParams
	for _, token := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return ArgonParams{}, nil, nil, ErrInvalidHash
		}
		bits := 32
		if key == "p" {
			bits = 8
		}
		n, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return ArgonParams{}, nil, nil, ErrInvalidHash
		}
		switch key {
		case "m":
			params.Memory = uint32(n)
		case "t":
			params.Time = uint32(n)
		case "p":
			params.Parallelism = uint8(n)
		}
	}
	if params.Memory == 0 || params.Time == 0 || params.Parallelism == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(key))
	return params, salt, key, nil
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampUint32(value, min, max int) uint32 {
	return uint32(clampInt(value, min, max))
}
