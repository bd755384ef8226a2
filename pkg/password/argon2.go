// Package password hashes and verifies user passwords with Argon2.
//
// Hashes use the PHC string format shared with passlib:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// DefaultMemory is the memory cost in KiB (64 MiB).
	DefaultMemory uint32 = 64 * 1024
	// DefaultTime is the number of passes over memory.
	DefaultTime uint32 = 3
	// DefaultThreads is the degree of parallelism.
	DefaultThreads uint8 = 2

	defaultKeyLen  uint32 = 32
	defaultSaltLen uint32 = 16

	variantID = "argon2id"
	variantI  = "argon2i"

	// Upper bounds applied when reading parameters back from stored hashes so
	// a corrupted row cannot trigger a huge allocation.
	maxMemory  = 4 * 1024 * 1024
	maxTime    = 64
	maxKeyLen  = 1024
	minSaltLen = 8
)

// ErrBackend marks unexpected hashing failures that are not the caller's
// fault, such as an unavailable entropy source.
var ErrBackend = errors.New("password: hashing backend failure")

// Options configures the Argon2 cost parameters.
type Options struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	// MaxConcurrent bounds simultaneous hash computations. Each one holds
	// Memory KiB for its duration.
	MaxConcurrent int
}

// DefaultOptions returns the fixed production parameters.
func DefaultOptions() Options {
	return Options{Memory: DefaultMemory, Time: DefaultTime, Threads: DefaultThreads, MaxConcurrent: 4}
}

// Hasher produces and verifies Argon2id hashes. It is safe for concurrent use.
type Hasher struct {
	opts  Options
	slots chan struct{}
	rand  io.Reader
}

// NewHasher constructs a Hasher.
func NewHasher(opts Options) (*Hasher, error) {
	if opts.Time < 1 || opts.Threads < 1 || opts.Memory < 8*uint32(opts.Threads) {
		return nil, fmt.Errorf("password: invalid argon2 options m=%d t=%d p=%d", opts.Memory, opts.Time, opts.Threads)
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &Hasher{opts: opts, slots: make(chan struct{}, opts.MaxConcurrent), rand: rand.Reader}, nil
}

// Hash returns a PHC encoded Argon2id hash of password with a fresh salt.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, defaultSaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", ErrBackend, err)
	}

	release, err := h.acquire(ctx)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.opts.Time, h.opts.Memory, h.opts.Threads, defaultKeyLen)
	release()

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		variantID,
		argon2.Version,
		h.opts.Memory,
		h.opts.Time,
		h.opts.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. A malformed hash is a
// mismatch, not an error.
func (h *Hasher) Verify(ctx context.Context, password, encoded string) (bool, error) {
	p, ok := decodePHC(encoded)
	if !ok {
		return false, nil
	}

	release, err := h.acquire(ctx)
	if err != nil {
		return false, err
	}
	var computed []byte
	if p.variant == variantID {
		computed = argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	} else {
		computed = argon2.Key([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.key)))
	}
	release()

	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

func (h *Hasher) acquire(ctx context.Context) (func(), error) {
	select {
	case h.slots <- struct{}{}:
		return func() { <-h.slots }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for hashing slot: %v", ErrBackend, ctx.Err())
	}
}

type phcParams struct {
	variant string
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodePHC(encoded string) (*phcParams, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, false
	}
	if parts[1] != variantID && parts[1] != variantI {
		return nil, false
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, false
	}

	params := make(map[string]uint64, 3)
	for _, kv := range strings.Split(parts[3], ",") {
		name, raw, found := strings.Cut(kv, "=")
		if !found {
			return nil, false
		}
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, false
		}
		params[name] = value
	}
	memory, okM := params["m"]
	iterations, okT := params["t"]
	threads, okP := params["p"]
	if !okM || !okT || !okP || len(params) != 3 {
		return nil, false
	}
	if iterations < 1 || iterations > maxTime || threads < 1 || threads > 255 || memory < 8*threads || memory > maxMemory {
		return nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < minSaltLen {
		return nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < 4 || len(key) > maxKeyLen {
		return nil, false
	}

	return &phcParams{
		variant: parts[1],
		memory:  uint32(memory),
		time:    uint32(iterations),
		threads: uint8(threads),
		salt:    salt,
		key:     key,
	}, true
}
