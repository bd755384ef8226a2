package password

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cheapHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(Options{Memory: 64, Time: 1, Threads: 1, MaxConcurrent: 2})
	require.NoError(t, err)
	return h
}

func TestDefaultParametersAreEncoded(t *testing.T) {
	h, err := NewHasher(DefaultOptions())
	require.NoError(t, err)

	encoded, err := h.Hash(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=65536,t=3,p=2$"), encoded)
	assert.NotContains(t, encoded, "s3cret")

	ok, err := h.Verify(context.Background(), "s3cret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashVerify(t *testing.T) {
	h := cheapHasher(t)
	ctx := context.Background()

	for _, pw := range []string{"", "password", "pässwörd ✓", strings.Repeat("x", 512)} {
		encoded, err := h.Hash(ctx, pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, encoded)

		ok, err := h.Verify(ctx, pw, encoded)
		require.NoError(t, err)
		assert.True(t, ok, "password %q", pw)

		ok, err = h.Verify(ctx, pw+"x", encoded)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := cheapHasher(t)
	a, err := h.Hash(context.Background(), "same")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyUsesEncodedParameters(t *testing.T) {
	weak := cheapHasher(t)
	encoded, err := weak.Hash(context.Background(), "pw")
	require.NoError(t, err)

	strong, err := NewHasher(Options{Memory: 128, Time: 2, Threads: 1})
	require.NoError(t, err)
	ok, err := strong.Verify(context.Background(), "pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformedHashIsMismatch(t *testing.T) {
	h := cheapHasher(t)
	valid, err := h.Hash(context.Background(), "pw")
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	cases := []string{
		"",
		"plaintext",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2d$" + strings.Join(parts[2:], "$"),
		"$argon2id$v=16$" + strings.Join(parts[3:], "$"),
		fmt.Sprintf("$argon2id$v=19$m=0,t=1,p=1$%s$%s", parts[4], parts[5]),
		fmt.Sprintf("$argon2id$v=19$m=64,t=0,p=1$%s$%s", parts[4], parts[5]),
		fmt.Sprintf("$argon2id$v=19$m=99999999,t=1,p=1$%s$%s", parts[4], parts[5]),
		fmt.Sprintf("$argon2id$v=19$m=64,t=1$%s$%s", parts[4], parts[5]),
		fmt.Sprintf("$argon2id$v=19$m=64,t=1,p=1$%s$%s", "!!", parts[5]),
		fmt.Sprintf("$argon2id$v=19$m=64,t=1,p=1$%s$%s", parts[4], "!!"),
		valid + "$extra",
	}
	for _, encoded := range cases {
		ok, err := h.Verify(context.Background(), "pw", encoded)
		assert.NoError(t, err, encoded)
		assert.False(t, ok, encoded)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestHashEntropyFailureIsBackendError(t *testing.T) {
	h := cheapHasher(t)
	h.rand = failingReader{}

	_, err := h.Hash(context.Background(), "pw")
	assert.ErrorIs(t, err, ErrBackend)
}

func TestHashHonorsContextWhileWaitingForSlot(t *testing.T) {
	h, err := NewHasher(Options{Memory: 64, Time: 1, Threads: 1, MaxConcurrent: 1})
	require.NoError(t, err)
	h.slots <- struct{}{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = h.Hash(ctx, "pw")
	assert.ErrorIs(t, err, ErrBackend)

	_, err = h.Verify(ctx, "pw", "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5")
	assert.ErrorIs(t, err, ErrBackend)
}

func TestNewHasherRejectsInvalidOptions(t *testing.T) {
	_, err := NewHasher(Options{Memory: 4, Time: 1, Threads: 1})
	assert.Error(t, err)
	_, err = NewHasher(Options{Memory: 64, Time: 0, Threads: 1})
	assert.Error(t, err)
}

// Hashes written by the reference libargon2 (the backend of argon2-cffi and
// passlib): salt "portal-salt-0001", password "correct horse battery".
const (
	passlibArgon2id = "$argon2id$v=19$m=65536,t=3,p=2$cG9ydGFsLXNhbHQtMDAwMQ$u5koRNmqBGou7FaS/vUd+EC0QKJXloWZ6Oiu2KwvBdc"
	passlibArgon2i  = "$argon2i$v=19$m=65536,t=3,p=2$cG9ydGFsLXNhbHQtMDAwMQ$VnT37lBwrSZuSrbaN/eR84NaG+ponotVmDzo9/CdPKw"
	// Example from the Argon2 reference README: argon2 somesalt -t 2 -m 16 -p 4 -l 24.
	referenceArgon2i = "$argon2i$v=19$m=65536,t=2,p=4$c29tZXNhbHQ$RdescudvJCsgt3ub+b+dWRWJTmaaJObG"
)

func TestVerifyExternallyProducedHashes(t *testing.T) {
	h, err := NewHasher(DefaultOptions())
	require.NoError(t, err)
	ctx := context.Background()

	cases := []struct {
		name     string
		encoded  string
		password string
	}{
		{name: "argon2id", encoded: passlibArgon2id, password: "correct horse battery"},
		{name: "argon2i", encoded: passlibArgon2i, password: "correct horse battery"},
		{name: "argon2i 24-byte key", encoded: referenceArgon2i, password: "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify(ctx, tc.password, tc.encoded)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify(ctx, "wrong password", tc.encoded)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
