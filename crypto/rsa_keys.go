package crypto

import (
	"crypto/rsa"
	"crypto/x509"
)

// ConvertPublicKeyToSPKI converts an RSA public key to SPKI DER format, the
// encoding Minecraft's EncryptionRequest carries its public key in.
func ConvertPublicKeyToSPKI(publicKey *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(publicKey)
}
