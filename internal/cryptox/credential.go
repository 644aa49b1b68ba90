// Package cryptox implements the salted, iterated credential record used by
// the credential store.
//
// A record is the hex encoding of salt||key: 64 hex characters of salt
// followed by 2*KeyLength hex characters of PBKDF2-HMAC-SHA256 output. The
// derivation parameters are not part of the record; they are persisted next to
// it (see Params) so they can change without invalidating stored records.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	KDFPBKDF2SHA256   = "pbkdf2-sha256"
	DefaultIterations = 100_000
	SaltLength        = 32
	DefaultKeyLength  = 32
)

var (
	ErrMalformedRecord = errors.New("malformed credential record")
	ErrUnsupportedKDF  = errors.New("unsupported key derivation function")
)

// Params are the key derivation parameters a record was created with.
type Params struct {
	KDF        string
	Iterations int
	KeyLength  int
}

// DefaultParams returns the parameters used for new records.
func DefaultParams() Params {
	return Params{KDF: KDFPBKDF2SHA256, Iterations: DefaultIterations, KeyLength: DefaultKeyLength}
}

func (p Params) validate() error {
	if p.KDF != KDFPBKDF2SHA256 {
		return fmt.Errorf("%w: %q", ErrUnsupportedKDF, p.KDF)
	}
	if p.Iterations <= 0 || p.KeyLength <= 0 {
		return fmt.Errorf("invalid kdf parameters: iterations=%d key_length=%d", p.Iterations, p.KeyLength)
	}
	return nil
}

// DeriveKey runs the key derivation function over password and salt.
func DeriveKey(password, salt []byte, p Params) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, p.Iterations, p.KeyLength, sha256.New), nil
}

// EncodeRecord hex encodes salt||key.
func EncodeRecord(salt, key []byte) string {
	buf := make([]byte, 0, len(salt)+len(key))
	buf = append(buf, salt...)
	buf = append(buf, key...)
	return hex.EncodeToString(buf)
}

// DecodeRecord splits a record into salt and key. The first 2*SaltLength hex
// characters are the salt, the remainder must decode to keyLength bytes.
func DecodeRecord(record string, keyLength int) (salt, key []byte, err error) {
	saltHex := SaltLength * 2
	if len(record) != saltHex+keyLength*2 {
		return nil, nil, fmt.Errorf("%w: length %d", ErrMalformedRecord, len(record))
	}
	salt, err = hex.DecodeString(record[:saltHex])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedRecord, err)
	}
	key, err = hex.DecodeString(record[saltHex:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedRecord, err)
	}
	return salt, key, nil
}

// NewRecord creates a record for password using a fresh random salt.
func NewRecord(password []byte, p Params) (string, error) {
	salt := common.GenerateRandByteArray(SaltLength)
	key, err := DeriveKey(password, salt, p)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)
	return EncodeRecord(salt, key), nil
}

// VerifyRecord re-derives the key from password and the record's salt and
// compares it with the stored key in constant time.
func VerifyRecord(password []byte, record string, p Params) (bool, error) {
	salt, stored, err := DecodeRecord(record, p.KeyLength)
	if err != nil {
		return false, err
	}
	candidate, err := DeriveKey(password, salt, p)
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(stored, candidate) == 1, nil
}
