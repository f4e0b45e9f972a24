package gate

import (
	"crypto/rsa"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ValidatePublicKey checks a single OpenSSH authorized_keys line against the
// tenancy's key policy. An empty allowedTypes list accepts every type.
func ValidatePublicKey(key string, allowedTypes []string, rsaMinBits int) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyEmpty
	}

	pub, _, _, rest, err := ssh.ParseAuthorizedKey([]byte(key))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyMalformed, err)
	}
	if strings.TrimSpace(string(rest)) != "" {
		return fmt.Errorf("%w: expected exactly one key", ErrKeyMalformed)
	}

	if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, pub.Type()) {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrKeyTypeNotAllowed, pub.Type(), strings.Join(allowedTypes, ", "))
	}

	if pub.Type() == ssh.KeyAlgoRSA && rsaMinBits > 0 {
		bits, err := rsaBits(pub)
		if err != nil {
			return err
		}
		if bits < rsaMinBits {
			return fmt.Errorf("%w: %d bits, need at least %d", ErrKeyTooShort, bits, rsaMinBits)
		}
	}
	return nil
}

func rsaBits(pub ssh.PublicKey) (int, error) {
	cpk, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return 0, fmt.Errorf("%w: cannot read RSA modulus", ErrKeyMalformed)
	}
	rsaKey, ok := cpk.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return 0, fmt.Errorf("%w: cannot read RSA modulus", ErrKeyMalformed)
	}
	return rsaKey.N.BitLen(), nil
}
