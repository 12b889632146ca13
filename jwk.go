package keyshift

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"
	"fmt"
	"math/big"
)

// jwk is the subset of RFC 7517/7518 fields this package emits. RSA private
// fields and EC fields are mutually exclusive.
type jwk struct {
	Kty string `json:"kty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	D   string `json:"d,omitempty"`
	P   string `json:"p,omitempty"`
	Q   string `json:"q,omitempty"`
	Dp  string `json:"dp,omitempty"`
	Dq  string `json:"dq,omitempty"`
	Qi  string `json:"qi,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

// ExportJWK renders a PKCS#8 PEM private key as a private JWK JSON object.
// Supports RSA and EC keys.
func ExportJWK(privateKeyPEM string, family KeyFamily) (string, error) {
	spec := FormatSpec{Container: PKCS8, Serialization: PEM}

	var key jwk
	switch family {
	case RSA:
		rsaKey, err := parseRSAPrivate(privateKeyPEM, spec)
		if err != nil {
			return "", err
		}
		rsaKey.Precompute()
		key = jwk{
			Kty: "RSA",
			N:   b64uint(rsaKey.N),
			E:   b64uint(big.NewInt(int64(rsaKey.E))),
			D:   b64uint(rsaKey.D),
			P:   b64uint(rsaKey.Primes[0]),
			Q:   b64uint(rsaKey.Primes[1]),
			Dp:  b64uint(rsaKey.Precomputed.Dp),
			Dq:  b64uint(rsaKey.Precomputed.Dq),
			Qi:  b64uint(rsaKey.Precomputed.Qinv),
		}
	case ECC:
		ecKey, err := parseECPrivate(privateKeyPEM, spec)
		if err != nil {
			return "", err
		}
		key, err = ecJWK(&ecKey.PublicKey)
		if err != nil {
			return "", err
		}
		key.D = b64fixed(ecKey.D, (ecKey.Curve.Params().BitSize+7)/8)
	default:
		return "", fmt.Errorf("unknown key family %q", family)
	}

	out, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("marshaling JWK: %w", err)
	}
	return string(out), nil
}

// ExportPublicJWK renders a PKIX PEM public key as a public JWK JSON object.
func ExportPublicJWK(publicKeyPEM string, family KeyFamily) (string, error) {
	spec := FormatSpec{Container: PKCS8, Serialization: PEM}

	var key jwk
	switch family {
	case RSA:
		rsaKey, err := parseRSAPublic(publicKeyPEM, spec)
		if err != nil {
			return "", err
		}
		key = jwk{
			Kty: "RSA",
			N:   b64uint(rsaKey.N),
			E:   b64uint(big.NewInt(int64(rsaKey.E))),
		}
	case ECC:
		ecKey, err := parseECPublic(publicKeyPEM, spec)
		if err != nil {
			return "", err
		}
		key, err = ecJWK(ecKey)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown key family %q", family)
	}

	out, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("marshaling JWK: %w", err)
	}
	return string(out), nil
}

func ecJWK(pub *ecdsa.PublicKey) (jwk, error) {
	crv, err := jwkCurveName(pub.Curve)
	if err != nil {
		return jwk{}, err
	}
	size := (pub.Curve.Params().BitSize + 7) / 8
	return jwk{
		Kty: "EC",
		Crv: crv,
		X:   b64fixed(pub.X, size),
		Y:   b64fixed(pub.Y, size),
	}, nil
}

func jwkCurveName(c elliptic.Curve) (string, error) {
	switch c {
	case elliptic.P256():
		return "P-256", nil
	case elliptic.P384():
		return "P-384", nil
	case elliptic.P521():
		return "P-521", nil
	default:
		return "", fmt.Errorf("curve %s has no JWK name", c.Params().Name)
	}
}

// b64uint encodes a big integer as base64url without leading zero padding,
// per RFC 7518 section 2.
func b64uint(n *big.Int) string {
	s, _ := EncodeText(n.Bytes(), Base64URL)
	return s
}

// b64fixed encodes a big integer left-padded to size bytes, as EC
// coordinates require.
func b64fixed(n *big.Int, size int) string {
	b := n.Bytes()
	if len(b) < size {
		padded := make([]byte, size)
		copy(padded[size-len(b):], b)
		b = padded
	}
	s, _ := EncodeText(b, Base64URL)
	return s
}
