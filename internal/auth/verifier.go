package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Message is the fixed text wallets sign to authenticate with the API.
const Message = "Authenticate with WavePay"

var (
	// ErrInvalidSignature indicates the signature is malformed or was not
	// produced by the claimed address.
	ErrInvalidSignature = errors.New("invalid signature")
)

// VerifySignature checks that signature is an EIP-191 personal-sign of
// message produced by the private key behind address.
func VerifySignature(address, message, signature string) error {
	sig, err := decodeHex(signature)
	if err != nil || len(sig) != 65 {
		return ErrInvalidSignature
	}
	// Wallets emit the recovery id as 27/28; secp256k1 recovery wants 0/1.
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return ErrInvalidSignature
	}

	digest := hashPersonalMessage([]byte(message))
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return ErrInvalidSignature
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(recovered.Hex(), address) {
		return ErrInvalidSignature
	}
	return nil
}

// hashPersonalMessage applies the EIP-191 personal-sign envelope before
// hashing with keccak256.
func hashPersonalMessage(message []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(prefixed))
	return h.Sum(nil)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}
