package keyshift

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// GenerateRSA generates a new RSA key pair of the given bit size and
// renders it in the requested format.
func GenerateRSA(bits int, spec FormatSpec) (KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating RSA key: %w", err)
	}
	return encodeRSAPair(key, spec)
}

// DeriveRSAPublic re-derives the public half of an RSA key pair from its
// private key, rendered in the same format.
func DeriveRSAPublic(privateKey string, spec FormatSpec) (string, error) {
	key, err := parseRSAPrivate(privateKey, spec)
	if err != nil {
		return "", err
	}
	return encodeRSAPublic(&key.PublicKey, spec)
}

// GenerateECC generates a new EC key pair on the given curve and renders it
// in the requested format. Secp256k1 has no stdlib parameters and is not
// generatable locally.
func GenerateECC(curve Curve, spec FormatSpec) (KeyPair, error) {
	params, err := curve.EllipticCurve()
	if err != nil {
		return KeyPair{}, err
	}
	key, err := ecdsa.GenerateKey(params, rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating EC key: %w", err)
	}
	return encodeECPair(key, spec)
}

// DeriveECCPublic re-derives the public half of an EC key pair from its
// private key, rendered in the same format.
func DeriveECCPublic(privateKey string, spec FormatSpec) (string, error) {
	key, err := parseECPrivate(privateKey, spec)
	if err != nil {
		return "", err
	}
	return encodeECPublic(&key.PublicKey, spec)
}

func encodeRSAPair(key *rsa.PrivateKey, spec FormatSpec) (KeyPair, error) {
	priv, err := encodeRSAPrivate(key, spec)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := encodeRSAPublic(&key.PublicKey, spec)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}

func encodeECPair(key *ecdsa.PrivateKey, spec FormatSpec) (KeyPair, error) {
	priv, err := encodeECPrivate(key, spec)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := encodeECPublic(&key.PublicKey, spec)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}
