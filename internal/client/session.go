package client

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"
)

// ErrNoToken is returned when no session token has been stored.
var ErrNoToken = errors.New("no stored session token")

const (
	deviceIDFile = "device_id"
	tokenFile    = "token"
)

// Vault stores the single session token ("userToken") on disk, sealed
// with AES-GCM under a key derived from a per-install device id. It is
// written on login/signup, read before each authenticated call and
// deleted on logout.
type Vault struct {
	dir string
}

// OpenVault prepares the vault directory. An empty dir selects
// ~/.config/cardlink.
func OpenVault(dir string) (*Vault, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", "cardlink")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &Vault{dir: dir}, nil
}

// SaveToken seals and writes the session token.
func (v *Vault) SaveToken(token string) error {
	key, err := v.key()
	if err != nil {
		return err
	}
	blob, err := seal(key, []byte(token))
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(v.dir, tokenFile), blob, 0600)
}

// Token reads and opens the stored session token.
func (v *Vault) Token() (string, error) {
	blob, err := os.ReadFile(filepath.Join(v.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	key, err := v.key()
	if err != nil {
		return "", err
	}
	tok, err := open(key, blob)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}

// DeleteToken removes the stored token, if any.
func (v *Vault) DeleteToken() error {
	err := os.Remove(filepath.Join(v.dir, tokenFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// key derives the sealing key from the per-install device id,
// creating the id on first use.
func (v *Vault) key() ([]byte, error) {
	idPath := filepath.Join(v.dir, deviceIDFile)
	id, err := os.ReadFile(idPath)
	if os.IsNotExist(err) {
		id = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, id); err != nil {
			return nil, err
		}
		if err := os.WriteFile(idPath, id, 0600); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	h := hkdf.New(sha256.New, id, nil, []byte("cardlink-token-vault"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, err
	}
	return key, nil
}

func seal(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return append(nonce, gcm.Seal(nil, nonce, plaintext, nil)...), nil
}

func open(key, blob []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	ns := gcm.NonceSize()
	if len(blob) < ns {
		return nil, errors.New("stored token is corrupt")
	}
	return gcm.Open(nil, blob[:ns], blob[ns:], nil)
}
