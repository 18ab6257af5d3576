package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultTokenRoundTrip(t *testing.T) {
	v, err := OpenVault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := v.SaveToken("tok-abc-123"); err != nil {
		t.Fatal(err)
	}

	got, err := v.Token()
	if err != nil {
		t.Fatal(err)
	}
	if got != "tok-abc-123" {
		t.Fatalf("Token() = %q", got)
	}
}

func TestVaultNoTokenStored(t *testing.T) {
	v, err := OpenVault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := v.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestVaultDeleteToken(t *testing.T) {
	v, err := OpenVault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := v.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := v.DeleteToken(); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("err after delete = %v, want ErrNoToken", err)
	}

	// deleting twice is fine
	if err := v.DeleteToken(); err != nil {
		t.Fatal(err)
	}
}

func TestVaultTokenNotStoredInPlaintext(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenVault(dir)
	if err != nil {
		t.Fatal(err)
	}

	const token = "very-secret-session-token"
	if err := v.SaveToken(token); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "token"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), token) {
		t.Fatal("token stored in plaintext")
	}
}

func TestVaultRejectsTamperedBlob(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenVault(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := v.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "token")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xff
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := v.Token(); err == nil {
		t.Fatal("expected error for tampered token file")
	}
}
