// Package tokenizer turns numeric album IDs into opaque URL tokens and back.
//
// A token is XChaCha20-Poly1305 ciphertext of the big-endian ID under a fresh
// random nonce, base64url encoded and percent-escaped. Encoding the same ID
// twice yields different tokens; all of them decode to that ID. Tampered or
// foreign tokens fail authentication and decode to ErrInvalidToken.
package tokenizer

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/url"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// hkdfInfo binds derived keys to this use, so the same APP_KEY can feed other subsystems.
const hkdfInfo = "galeri album token v1"

type Tokenizer interface {
	Encode(id int64) string
	Decode(token string) (int64, error)
}

type aeadTokenizer struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from secret and returns a Tokenizer using it.
func New(secret string) (Tokenizer, error) {
	if secret == "" {
		return nil, errors.New("tokenizer secret is empty")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	_, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return &aeadTokenizer{aead: aead}, nil
}

func (t *aeadTokenizer) Encode(id int64) string {
	nonce := make([]byte, t.aead.NonceSize(), t.aead.NonceSize()+8+t.aead.Overhead())
	_, err := rand.Read(nonce)
	if err != nil {
		panic("failed to generate token nonce: " + err.Error())
	}

	plaintext := binary.BigEndian.AppendUint64(nil, uint64(id))
	sealed := t.aead.Seal(nonce, nonce, plaintext, nil)

	return url.PathEscape(base64.RawURLEncoding.EncodeToString(sealed))
}

func (t *aeadTokenizer) Decode(token string) (int64, error) {
	unescaped, err := url.PathUnescape(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	sealed, err := base64.RawURLEncoding.DecodeString(unescaped)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if len(sealed) < t.aead.NonceSize()+t.aead.Overhead() {
		return 0, ErrInvalidToken
	}

	nonce, ciphertext := sealed[:t.aead.NonceSize()], sealed[t.aead.NonceSize():]
	plaintext, err := t.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil || len(plaintext) != 8 {
		return 0, ErrInvalidToken
	}

	return int64(binary.BigEndian.Uint64(plaintext)), nil
}
