package keyshift

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
)

// DecodeJKSKey extracts the first private key entry from a Java KeyStore
// and returns it as a PKCS#8 PEM key pair ready for conversion, along with
// the key family. The same password is used for the store and the entry
// (standard Java convention). Certificate chains are ignored.
func DecodeJKSKey(data []byte, password string) (KeyPair, KeyFamily, error) {
	ks := keystore.New()
	if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
		return KeyPair{}, "", fmt.Errorf("loading JKS: %w", err)
	}

	for _, alias := range ks.Aliases() {
		if !ks.IsPrivateKeyEntry(alias) {
			continue
		}
		entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
		if err != nil {
			continue
		}
		key, err := parsePKCS8Any(entry.PrivateKey)
		if err != nil {
			continue
		}
		return pairFromKey(key)
	}

	return KeyPair{}, "", errors.New("JKS contains no usable private key entries")
}
