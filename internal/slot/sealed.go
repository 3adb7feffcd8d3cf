// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

const (
	defaultIterations = 600000
	keyLength         = 32
	saltLength        = 16
	kdfName           = "pbkdf2-sha512"
)

// ErrWrongPassphrase is returned when a sealed document cannot be opened.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted store")

// Sealed encrypts everything written to Inner with AES-GCM under a key derived
// from Passphrase with PBKDF2-SHA512.
type Sealed struct {
	Inner      Slot
	Passphrase string
	// Iterations for new writes; zero means the default. Reads use the count
	// recorded in the envelope.
	Iterations int
}

// envelope is the on-slot form of a sealed document.
type envelope struct {
	KDF           string `json:"kdf"`
	Salt          string `json:"salt"`
	Iterations    int    `json:"iterations"`
	KeyLength     int    `json:"key_length"`
	EncryptedData string `json:"encrypted_data"`
}

func (s *Sealed) Read() ([]byte, error) {
	raw, err := s.Inner.Read()
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.EncryptedData == "" {
		return nil, errors.New("store is not sealed")
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if env.KeyLength == 0 {
		env.KeyLength = keyLength
	}

	key := pbkdf2.Key([]byte(s.Passphrase), salt, env.Iterations, env.KeyLength, sha512.New)
	return open(env.EncryptedData, key)
}

func (s *Sealed) Write(data []byte) error {
	iterations := s.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(s.Passphrase), salt, iterations, keyLength, sha512.New)
	sealed, err := seal(data, key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(envelope{
		KDF:           kdfName,
		Salt:          base64.StdEncoding.EncodeToString(salt),
		Iterations:    iterations,
		KeyLength:     keyLength,
		EncryptedData: sealed,
	})
	if err != nil {
		return err
	}
	return s.Inner.Write(raw)
}

// IsSealed reports whether data is a sealed envelope.
func IsSealed(data []byte) bool {
	var env envelope
	return json.Unmarshal(data, &env) == nil && env.EncryptedData != "" && env.KDF != ""
}

func (s *Sealed) Remove() error {
	return s.Inner.Remove()
}

func (s *Sealed) String() string {
	return "sealed:" + s.Inner.String()
}

// PromptPassphrase asks for a passphrase on the terminal without echoing it.
// It fails when stdin is not a terminal.
func PromptPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("a passphrase is required but stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(pw), nil
}

func seal(plaintext []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// nonce || ciphertext
	out := aesGCM.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func open(encryptedData string, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
