// Package password wraps argon2id hashing for account credentials.
// Digests are PHC-formatted strings that embed their own parameters,
// so verification keeps working after the configured parameters change.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kasuganosora/clientauth/config"
	"golang.org/x/crypto/argon2"
)

// UnusablePrefix marks a digest that can never verify. Accounts created
// without a password get one of these instead of an empty hash.
const UnusablePrefix = "!"

// Hasher produces and checks argon2id digests.
type Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewHasher builds a Hasher from security config. Zero-valued fields
// fall back to the package defaults (64 MiB, t=3, p=2, 16-byte salt,
// 32-byte key).
func NewHasher(cfg config.SecurityConfig) *Hasher {
	h := &Hasher{
		memory:      cfg.Argon2Memory,
		iterations:  cfg.Argon2Iterations,
		parallelism: cfg.Argon2Parallelism,
		saltLength:  cfg.Argon2SaltLength,
		keyLength:   cfg.Argon2KeyLength,
	}
	if h.memory == 0 {
		h.memory = 64 * 1024
	}
	if h.iterations == 0 {
		h.iterations = 3
	}
	if h.parallelism == 0 {
		h.parallelism = 2
	}
	if h.saltLength == 0 {
		h.saltLength = 16
	}
	if h.keyLength == 0 {
		h.keyLength = 32
	}
	return h
}

// Hash derives an argon2id digest of the secret with a fresh random
// salt, encoded as $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
func (h *Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether the secret matches the digest. The parameters
// embedded in the digest are used, not the Hasher's own, so digests
// hashed under older settings still verify. A malformed or unusable
// digest verifies as false; Verify never panics or errors.
func (h *Hasher) Verify(secret, digest string) bool {
	params, salt, key, ok := decode(digest)
	if !ok {
		return false
	}
	candidate := argon2.IDKey([]byte(secret), salt, params.iterations, params.memory, params.parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// IsUsable reports whether the digest could ever verify a secret.
func IsUsable(digest string) bool {
	_, _, _, ok := decode(digest)
	return ok
}

// UnusablePassword returns a sentinel digest that never verifies. The
// random suffix keeps two password-less accounts from sharing a hash.
func UnusablePassword() string {
	buf := make([]byte, 20)
	_, _ = rand.Read(buf)
	return UnusablePrefix + hex.EncodeToString(buf)
}

type params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func decode(digest string) (params, []byte, []byte, bool) {
	var p params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, false
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return p, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, false
	}

	return p, salt, key, true
}
