package repository

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrBrokenSeal = errors.New("session blob cannot be opened")

// Sealer encrypts session snapshots at rest; they carry customer names,
// phones and addresses. A nil Sealer stores blobs as plain JSON.
type Sealer struct {
	key [32]byte
}

func NewSealer(secret string) *Sealer {
	if secret == "" {
		return nil
	}
	return &Sealer{key: blake2b.Sum256([]byte(secret))}
}

func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	if s == nil {
		return plain, nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *Sealer) Open(box []byte) ([]byte, error) {
	if s == nil {
		return box, nil
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrBrokenSeal
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrBrokenSeal
	}
	return plain, nil
}
