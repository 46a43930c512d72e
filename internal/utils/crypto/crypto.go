package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

// encryptedPrefix marks values produced by EncryptString so plaintext written
// before a key was configured can still be read back.
const encryptedPrefix = "enc:v1:"

// EncryptString encrypts plaintext using AES-256-GCM with the given secret key.
func EncryptString(secret, plaintext string) (string, error) {
	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString reverses EncryptString. Values without the encryption prefix are returned as-is.
func DecryptString(secret, value string) (string, error) {
	if !IsEncrypted(value) {
		return value, nil
	}
	gcm, err := newGCM(secret)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptedPrefix))
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// IsEncrypted reports whether value was produced by EncryptString.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encryptedPrefix)
}

func newGCM(secret string) (cipher.AEAD, error) {
	if secret == "" {
		return nil, errors.New("secret key cannot be empty")
	}

	// Keys shorter than 32 bytes are zero padded, longer keys truncated.
	key := make([]byte, 32)
	copy(key, secret)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
