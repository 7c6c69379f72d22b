package protocol

import (
	"net"

	"github.com/mcproxy/mcproxy/crypto"
)

// Conn wraps a net.Conn, transparently applying AES-128/CFB8 once
// encryption has been enabled on it. Every byte that crosses Read/Write
// passes through the cipher; this is the primitive the Framer's decoder and
// encoder stages are built on (§4.3).
type Conn struct {
	net.Conn
	encryption *crypto.Encryption
}

// NewConn wraps conn with encryption disabled.
func NewConn(conn net.Conn) *Conn {
	return &Conn{Conn: conn, encryption: crypto.NewEncryption()}
}

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	if err != nil {
		return n, err
	}
	if c.encryption.IsEnabled() {
		copy(p[:n], c.encryption.Decrypt(p[:n]))
	}
	return n, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	data := p
	if c.encryption.IsEnabled() {
		data = c.encryption.Encrypt(p)
	}
	return c.Conn.Write(data)
}

// EnableEncryption turns on AES-128/CFB8 with key = IV = secret for every
// subsequent read and write. Once enabled it cannot be disabled (§3
// invariants).
func (c *Conn) EnableEncryption(secret []byte) error {
	c.encryption.SetSharedSecret(secret)
	return c.encryption.EnableEncryption()
}

func (c *Conn) EncryptionEnabled() bool { return c.encryption.IsEnabled() }
