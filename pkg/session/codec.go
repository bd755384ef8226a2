// Package session signs and verifies the user_data cookie value.
//
// A token is "<base64(json payload)>.<hex(hmac-sha256(base64 text))>". The
// token carries no expiry of its own; lifetime is bounded only by the cookie
// Max-Age, so a copied token stays valid until the secret is rotated.
package session

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

const separator = "."

// CookieName is the cookie carrying the signed token.
const CookieName = "user_data"

// ErrEmptySecret is returned when a codec is built without a signing key.
var ErrEmptySecret = errors.New("session: signing secret is empty")

// Payload is the identity embedded in the session cookie. Field order is
// fixed by the struct so the serialized form is canonical.
type Payload struct {
	UserID    int64  `json:"user_id"`
	Matricule string `json:"matricule"`
	Name      string `json:"name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FullName joins first and last name the way requests denormalize it.
func (p Payload) FullName() string {
	return p.Name + " " + p.LastName
}

// Codec encodes and decodes signed session tokens. It is safe for
// concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec constructs a codec for the given secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Encode serializes and signs the payload.
func (c *Codec) Encode(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	data := base64.StdEncoding.EncodeToString(raw)
	return data + separator + c.sign(data), nil
}

// Decode verifies token and returns its payload. Any malformed, truncated or
// tampered token yields (nil, false).
func (c *Codec) Decode(token string) (*Payload, bool) {
	if token == "" || strings.Count(token, separator) != 1 {
		return nil, false
	}
	data, signature, _ := strings.Cut(token, separator)

	expected := c.sign(data)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, false
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(data)
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return &p, true
}

func (c *Codec) sign(data string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
