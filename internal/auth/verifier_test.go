package auth

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func signMessage(t *testing.T, message string) (address, signature string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	sig, err := crypto.Sign(hashPersonalMessage([]byte(message)), key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	// Wallets ship the recovery id as 27/28.
	sig[64] += 27
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), "0x" + hex.EncodeToString(sig)
}

func TestVerifySignature(t *testing.T) {
	address, signature := signMessage(t, Message)

	if err := VerifySignature(address, Message, signature); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifySignatureWrongAddress(t *testing.T) {
	_, signature := signMessage(t, Message)
	other, _ := signMessage(t, Message)

	if err := VerifySignature(other, Message, signature); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureWrongMessage(t *testing.T) {
	address, signature := signMessage(t, "some other text")

	if err := VerifySignature(address, Message, signature); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureMalformed(t *testing.T) {
	address, _ := signMessage(t, Message)

	cases := []string{"", "0x1234", "not-hex", "0x" + string(make([]byte, 130))}
	for _, sig := range cases {
		if err := VerifySignature(address, Message, sig); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("expected ErrInvalidSignature for %q, got %v", sig, err)
		}
	}
}
