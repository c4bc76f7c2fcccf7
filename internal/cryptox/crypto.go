// Package cryptox implements the key-sealing primitives used to protect the
// device identity key file: an argon2id passphrase KDF and AES-GCM AEAD.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches a passphrase into a 32-byte AES key using argon2id.
// The same (passphrase, salt) pair always yields the same key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random 12-byte
// nonce is generated per call and returned alongside the ciphertext.
//
// The key must be a valid AES key length (16, 24, or 32 bytes).
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open decrypts ciphertext produced by Seal. It fails if the key is wrong or
// the ciphertext was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
