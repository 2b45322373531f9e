package encryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/Beastly713/pixelstash/pkg/crypto/secrets"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KDF names a password-based key derivation function.
type KDF string

const (
	PBKDF2 KDF = "pbkdf2"
	Scrypt KDF = "scrypt"
)

const (
	KeySize  = 32 // AES-256
	SaltSize = 16
	IVSize   = 16

	PBKDF2Iterations = 100_000

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// ErrUnknownKDF indicates an unsupported key derivation name.
var ErrUnknownKDF = errors.New("unknown key derivation function")

// ErrAuthentication indicates a ciphertext that failed the GCM tag check,
// usually because the password is wrong.
var ErrAuthentication = errors.New("decryption/authentication failed")

// ParseKDF validates a KDF name. The empty string selects PBKDF2.
func ParseKDF(name string) (KDF, error) {
	switch KDF(name) {
	case "", PBKDF2:
		return PBKDF2, nil
	case Scrypt:
		return Scrypt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKDF, name)
}

// DeriveKey stretches password into a KeySize key bound to salt.
// The caller owns the returned Secret and should Destroy it.
func DeriveKey(kdf KDF, password string, salt []byte) (*secrets.Secret, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}
	switch kdf {
	case "", PBKDF2:
		return secrets.WrapSecret(pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeySize, sha256.New)), nil
	case Scrypt:
		key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, KeySize)
		if err != nil {
			return nil, fmt.Errorf("scrypt failed: %w", err)
		}
		return secrets.WrapSecret(key), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, kdf)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt performs AES-GCM encryption of plaintext under key and iv.
// The result is the ciphertext followed by the authentication tag.
// An iv must never be reused with the same key.
func Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", IVSize, len(iv))
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, iv, plaintext, nil), nil
}

// Decrypt reverses Encrypt. It returns ErrAuthentication if the tag does not
// verify, so a wrong key never yields plaintext.
func Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", IVSize, len(iv))
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.Overhead() {
		return nil, errors.New("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return plaintext, nil
}

// Provider adapts the package functions to a password-keyed cipher capability.
type Provider struct {
	KDF KDF
}

// DeriveKey derives raw key bytes with the provider's KDF.
func (p Provider) DeriveKey(password string, salt []byte) ([]byte, error) {
	s, err := DeriveKey(p.KDF, password, salt)
	if err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// Encrypt calls the package Encrypt.
func (p Provider) Encrypt(key, iv, plaintext []byte) ([]byte, error) {
	return Encrypt(key, iv, plaintext)
}

// Decrypt calls the package Decrypt.
func (p Provider) Decrypt(key, iv, ciphertext []byte) ([]byte, error) {
	return Decrypt(key, iv, ciphertext)
}
