package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cheapArgon2() *Argon2 {
	return &Argon2{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}
}

func TestArgon2_HashAndVerify(t *testing.T) {
	h := cheapArgon2()

	encoded, err := h.Hash([]byte("admin123"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$"), encoded)

	ok, err := h.Verify([]byte("admin123"), encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify([]byte("admin124"), encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2_SaltedHashesDiffer(t *testing.T) {
	h := cheapArgon2()
	a, err := h.Hash([]byte("admin123"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("admin123"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2_VerifyUsesEncodedParams(t *testing.T) {
	encoded, err := (&Argon2{Memory: 128, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32}).
		Hash([]byte("s3cret"))
	require.NoError(t, err)

	ok, err := cheapArgon2().Verify([]byte("s3cret"), encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2_VerifyRejectsMalformed(t *testing.T) {
	h := cheapArgon2()
	for _, encoded := range []string{
		"",
		"YWRtaW4xMjM=", // the old reversible encoding
		"$bcrypt$v=19$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$!!$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=16,t=1,p=4$c2FsdA$a2V5",
	} {
		ok, err := h.Verify([]byte("admin123"), encoded)
		assert.Error(t, err, encoded)
		assert.False(t, ok, encoded)
	}
}

func TestNewArgon2_Defaults(t *testing.T) {
	h := NewArgon2()
	assert.Equal(t, uint32(64*1024), h.Memory)
	assert.Equal(t, uint32(1), h.Iterations)
	assert.Equal(t, uint8(4), h.Parallelism)
	assert.Equal(t, uint32(32), h.KeyLength)
}
