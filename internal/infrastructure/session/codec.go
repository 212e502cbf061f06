package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"

	"github.com/example/holdbot/internal/domain/session"
)

const (
	blobName     = "holdbot_session"
	keyInfo      = "holdbot session v1"
	MinSecretLen = 16
)

// Codec seals session blobs with an HMAC and AES, keyed from one secret.
type Codec struct {
	sc *securecookie.SecureCookie
}

// DeriveKeys expands secret into a 32 byte hash key and a 32 byte block key.
func DeriveKeys(secret []byte) (hashKey, blockKey []byte, err error) {
	if len(secret) < MinSecretLen {
		return nil, nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLen)
	}
	r := hkdf.New(sha256.New, secret, nil, []byte(keyInfo))
	hashKey = make([]byte, 32)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func NewCodec(secret []byte) (*Codec, error) {
	hashKey, blockKey, err := DeriveKeys(secret)
	if err != nil {
		return nil, err
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	// stored blobs never expire and can be large
	sc.MaxAge(0)
	sc.MaxLength(0)
	return &Codec{sc: sc}, nil
}

func (c *Codec) Encode(b session.Blob) (string, error) {
	if c == nil {
		return "", errors.New("session codec is not configured")
	}
	return c.sc.Encode(blobName, b)
}

func (c *Codec) Decode(s string) (session.Blob, error) {
	if c == nil {
		return session.Blob{}, errors.New("session codec is not configured")
	}
	var b session.Blob
	if err := c.sc.Decode(blobName, strings.TrimSpace(s), &b); err != nil {
		return session.Blob{}, err
	}
	return b, nil
}
