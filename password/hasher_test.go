package password_test

import (
	"strings"
	"testing"

	"github.com/kasuganosora/clientauth/config"
	"github.com/kasuganosora/clientauth/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *password.Hasher {
	return password.NewHasher(config.SecurityConfig{
		Argon2Memory:      8 * 1024,
		Argon2Iterations:  1,
		Argon2Parallelism: 1,
		Argon2SaltLength:  8,
		Argon2KeyLength:   16,
	})
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := testHasher()
	for _, secret := range []string{"hunter2", "", "pässwörd ✓", strings.Repeat("x", 200)} {
		digest, err := h.Hash(secret)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$"), "digest %q", digest)
		assert.True(t, h.Verify(secret, digest))
		assert.False(t, h.Verify(secret+"nope", digest))
	}
}

func TestHashSaltsDiffer(t *testing.T) {
	h := testHasher()
	d1, err := h.Hash("same secret")
	require.NoError(t, err)
	d2, err := h.Hash("same secret")
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestVerifyAcrossParameterChange(t *testing.T) {
	old := testHasher()
	digest, err := old.Hash("secret")
	require.NoError(t, err)

	// A hasher configured with different parameters still verifies
	// digests produced under the old ones.
	upgraded := password.NewHasher(config.SecurityConfig{
		Argon2Memory:      16 * 1024,
		Argon2Iterations:  2,
		Argon2Parallelism: 2,
		Argon2SaltLength:  16,
		Argon2KeyLength:   32,
	})
	assert.True(t, upgraded.Verify("secret", digest))
	assert.False(t, upgraded.Verify("wrong", digest))
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := testHasher()
	for _, digest := range []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=8192,t=1,p=1$salt",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	} {
		assert.False(t, h.Verify("anything", digest), "digest %q", digest)
	}
}

func TestUnusablePassword(t *testing.T) {
	h := testHasher()

	sentinel := password.UnusablePassword()
	assert.True(t, strings.HasPrefix(sentinel, password.UnusablePrefix))
	assert.False(t, password.IsUsable(sentinel))
	assert.False(t, h.Verify("", sentinel))
	assert.False(t, h.Verify(sentinel, sentinel))

	// Two password-less accounts never share a hash.
	assert.NotEqual(t, sentinel, password.UnusablePassword())

	digest, err := h.Hash("real")
	require.NoError(t, err)
	assert.True(t, password.IsUsable(digest))
}
