package internal

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sensiblebit/keyshift"
)

// KeyInfo holds the detection results for a key input.
type KeyInfo struct {
	Family        string `json:"family"`
	Container     string `json:"container"`
	Serialization string `json:"serialization"`
	Private       bool   `json:"private"`
	Curve         string `json:"curve,omitempty"`
	Bits          string `json:"bits,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
}

// DetectKey identifies the family, container, and serialization of raw key
// data. PEM is tried first, then bare DER under each container, then
// PKCS#12 and JKS with the given passwords.
func DetectKey(data []byte, passwords []string) (*KeyInfo, error) {
	if info := detectPEM(data); info != nil {
		return info, nil
	}
	if info := detectDER(data); info != nil {
		return info, nil
	}
	if info := detectContainerFile(data, passwords); info != nil {
		return info, nil
	}
	return nil, fmt.Errorf("could not identify key data as PEM, DER, PKCS#12, or JKS")
}

func detectPEM(data []byte) *KeyInfo {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil
		}
		return describe(key, string(keyshift.PKCS1), string(keyshift.PEM), true)
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil
		}
		return describe(key, string(keyshift.SEC1), string(keyshift.PEM), true)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil
		}
		return describe(key, string(keyshift.PKCS8), string(keyshift.PEM), true)
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil
		}
		return describe(key, string(keyshift.PKCS1), string(keyshift.PEM), false)
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil
		}
		return describe(key, string(keyshift.PKCS8), string(keyshift.PEM), false)
	default:
		slog.Debug("unrecognized PEM block type", "type", block.Type)
		return nil
	}
}

func detectDER(data []byte) *KeyInfo {
	if key, err := x509.ParsePKCS8PrivateKey(data); err == nil {
		return describe(key, string(keyshift.PKCS8), string(keyshift.DER), true)
	}
	if key, err := x509.ParsePKCS1PrivateKey(data); err == nil {
		return describe(key, string(keyshift.PKCS1), string(keyshift.DER), true)
	}
	if key, err := x509.ParseECPrivateKey(data); err == nil {
		return describe(key, string(keyshift.SEC1), string(keyshift.DER), true)
	}
	if key, err := x509.ParsePKIXPublicKey(data); err == nil {
		return describe(key, string(keyshift.PKCS8), string(keyshift.DER), false)
	}
	if key, err := x509.ParsePKCS1PublicKey(data); err == nil {
		return describe(key, string(keyshift.PKCS1), string(keyshift.DER), false)
	}
	return nil
}

// detectContainerFile tries PKCS#12 then JKS with each password. Container
// inputs always report PKCS#8/PEM because that is how the decoded key is
// handed to the converter.
func detectContainerFile(data []byte, passwords []string) *KeyInfo {
	for _, pw := range passwords {
		if pair, family, err := keyshift.DecodePKCS12Key(data, pw); err == nil {
			info := detectPEM([]byte(pair.PrivateKey))
			if info != nil {
				info.Family = string(family)
			}
			return info
		}
	}
	for _, pw := range passwords {
		if pair, family, err := keyshift.DecodeJKSKey(data, pw); err == nil {
			info := detectPEM([]byte(pair.PrivateKey))
			if info != nil {
				info.Family = string(family)
			}
			return info
		}
	}
	return nil
}

// describe fills a KeyInfo from a parsed key of any supported type.
func describe(key any, container, serialization string, private bool) *KeyInfo {
	info := &KeyInfo{
		Container:     container,
		Serialization: serialization,
		Private:       private,
	}

	var pub crypto.PublicKey
	switch k := key.(type) {
	case *rsa.PrivateKey:
		info.Family = string(keyshift.RSA)
		info.Bits = strconv.Itoa(k.N.BitLen())
		pub = &k.PublicKey
	case *rsa.PublicKey:
		info.Family = string(keyshift.RSA)
		info.Bits = strconv.Itoa(k.N.BitLen())
		pub = k
	case *ecdsa.PrivateKey:
		info.Family = string(keyshift.ECC)
		info.Curve = k.Curve.Params().Name
		pub = &k.PublicKey
	case *ecdsa.PublicKey:
		info.Family = string(keyshift.ECC)
		info.Curve = k.Curve.Params().Name
		pub = k
	default:
		info.Family = "unknown"
		return info
	}

	if fp, err := KeyFingerprint(pub); err == nil {
		info.Fingerprint = fp
	}
	return info
}

// KeyFingerprint computes a stable identifier for a public key: the
// leftmost 160 bits of the SHA-256 hash of its PKIX SubjectPublicKeyInfo
// encoding, as lowercase hex.
func KeyFingerprint(pub crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal PKIX: %w", err)
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:20]), nil
}
