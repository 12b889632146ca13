package keyshift

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

// DecodePKCS12Key extracts the private key from a PKCS#12/PFX bundle and
// returns it as a PKCS#8 PEM key pair ready for conversion, along with the
// key family. The public half is re-derived from the private key;
// certificates in the bundle are ignored.
func DecodePKCS12Key(pfxData []byte, password string) (KeyPair, KeyFamily, error) {
	privateKey, _, _, err := gopkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return KeyPair{}, "", fmt.Errorf("decoding PKCS#12: %w", err)
	}
	return pairFromKey(privateKey)
}

// pairFromKey renders a parsed private key as a PKCS#8/PKIX PEM pair and
// reports its family.
func pairFromKey(key crypto.PrivateKey) (KeyPair, KeyFamily, error) {
	spec := FormatSpec{Container: PKCS8, Serialization: PEM}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		pair, err := encodeRSAPair(k, spec)
		if err != nil {
			return KeyPair{}, "", err
		}
		return pair, RSA, nil
	case *ecdsa.PrivateKey:
		pair, err := encodeECPair(k, spec)
		if err != nil {
			return KeyPair{}, "", err
		}
		return pair, ECC, nil
	default:
		return KeyPair{}, "", fmt.Errorf("unsupported private key type %T", key)
	}
}

// parsePKCS8Any parses a PKCS#8 DER private key of either family.
func parsePKCS8Any(der []byte) (crypto.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 private key: %w", err)
	}
	return key, nil
}
