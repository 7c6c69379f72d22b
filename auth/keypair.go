// Package auth implements the online-mode authentication handshake: the
// server's RSA keypair, the Mojang session-server check, and the
// offline-mode UUID fallback.
package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"

	"github.com/mcproxy/mcproxy/crypto"
)

// KeyPair holds the server's RSA keypair used for the Encryption
// Request/Response exchange (§4.8). One pair is generated per process and
// reused for every connection.
type KeyPair struct {
	Private *rsa.PrivateKey
	// PublicDER is the SPKI-encoded public key sent verbatim in
	// EncryptionRequest and hashed into the Mojang server-id digest.
	PublicDER []byte
}

var (
	keyPairOnce sync.Once
	keyPair     *KeyPair
	keyPairErr  error
)

// GenerateKeyPair returns the process-wide 1024-bit RSA keypair, generating
// it on first use.
func GenerateKeyPair() (*KeyPair, error) {
	keyPairOnce.Do(func() {
		priv, err := rsa.GenerateKey(rand.Reader, 1024)
		if err != nil {
			keyPairErr = fmt.Errorf("auth: generate rsa key: %w", err)
			return
		}
		der, err := crypto.ConvertPublicKeyToSPKI(&priv.PublicKey)
		if err != nil {
			keyPairErr = fmt.Errorf("auth: marshal public key: %w", err)
			return
		}
		keyPair = &KeyPair{Private: priv, PublicDER: der}
	})
	return keyPair, keyPairErr
}

// Decrypt unwraps data encrypted with the keypair's public key, PKCS#1v1.5.
func (k *KeyPair) Decrypt(data []byte) ([]byte, error) {
	out, err := rsa.DecryptPKCS1v15(rand.Reader, k.Private, data)
	if err != nil {
		return nil, fmt.Errorf("auth: decrypt: %w", err)
	}
	return out, nil
}
