// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// SealedPrefix marks a stored credential value produced by Seal.
const SealedPrefix = "enc:v1:"

// HKDF parameters. Changing either makes existing sealed values unreadable.
const (
	hkdfSalt = "rankpulse-tenant-credentials"
	hkdfInfo = "credential-encryption-v1"
)

var (
	ErrEmptySecret        = errors.New("encryption secret cannot be empty")
	ErrEmptyPlaintext     = errors.New("plaintext cannot be empty")
	ErrEmptyCiphertext    = errors.New("ciphertext cannot be empty")
	ErrInvalidCiphertext  = errors.New("invalid ciphertext format")
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrDecryptionFailed covers a wrong key as well as tampered data.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or authentication tag")
)

// CredentialEncryptor seals tenant credential values at rest with
// AES-256-GCM under a key derived from CREDENTIAL_SECRET by HKDF-SHA256.
//
// Encrypt produces base64(nonce || ciphertext || tag). Seal adds
// SealedPrefix so rows stored before a secret was configured stay readable.
type CredentialEncryptor struct {
	aead cipher.AEAD
}

func NewCredentialEncryptor(secret string) (*CredentialEncryptor, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), []byte(hkdfSalt), []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &CredentialEncryptor{aead: aead}, nil
}

func (e *CredentialEncryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(e.aead.Seal(nonce, nonce, []byte(plaintext), nil)), nil
}

func (e *CredentialEncryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", ErrEmptyCiphertext
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	n := e.aead.NonceSize()
	if len(raw) <= n+e.aead.Overhead() {
		return "", ErrCiphertextTooShort
	}

	plain, err := e.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

// Seal is Encrypt plus SealedPrefix. An empty value stays empty.
func (e *CredentialEncryptor) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	ct, err := e.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return SealedPrefix + ct, nil
}

// Open reverses Seal and passes unsealed values through.
func (e *CredentialEncryptor) Open(stored string) (string, error) {
	if !IsSealed(stored) {
		return stored, nil
	}
	return e.Decrypt(strings.TrimPrefix(stored, SealedPrefix))
}

// SelfCheck seals and reopens a sample value. The server runs it once at
// startup so a broken key setup fails before any credential is written.
func (e *CredentialEncryptor) SelfCheck() error {
	const sample = "rankpulse-credential-check"

	sealed, err := e.Seal(sample)
	if err != nil {
		return fmt.Errorf("credential seal check failed: %w", err)
	}
	opened, err := e.Open(sealed)
	if err != nil {
		return fmt.Errorf("credential open check failed: %w", err)
	}
	if opened != sample {
		return errors.New("credential round trip returned different data")
	}
	return nil
}

func IsSealed(stored string) bool {
	return strings.HasPrefix(stored, SealedPrefix)
}

// MaskCredential shows the last four characters of a credential value.
//
//	"cf-token-9876" -> "****...9876"
func MaskCredential(value string) string {
	switch {
	case value == "":
		return ""
	case len(value) <= 4:
		return "****"
	default:
		return "****..." + value[len(value)-4:]
	}
}
