// Package keyshift converts asymmetric key material between container
// formats (PKCS#1, PKCS#8, SEC1) and serializations (PEM, DER), and maps
// raw key bytes to and from textual representations for display.
package keyshift

import (
	"crypto/elliptic"
	"fmt"
)

// ContainerKind identifies the structural format of an encoded key.
type ContainerKind string

const (
	PKCS1 ContainerKind = "pkcs1"
	PKCS8 ContainerKind = "pkcs8"
	SEC1  ContainerKind = "sec1"
)

// ContainerKinds returns all known container kinds.
func ContainerKinds() []ContainerKind {
	return []ContainerKind{PKCS1, PKCS8, SEC1}
}

// ParseContainerKind parses a container kind name such as "pkcs8".
func ParseContainerKind(s string) (ContainerKind, error) {
	switch ContainerKind(s) {
	case PKCS1, PKCS8, SEC1:
		return ContainerKind(s), nil
	default:
		return "", fmt.Errorf("unknown container kind %q", s)
	}
}

// Serialization identifies the framing of a container: PEM text armor or
// raw DER bytes.
type Serialization string

const (
	PEM Serialization = "pem"
	DER Serialization = "der"
)

// ParseSerialization parses a serialization name ("pem" or "der").
func ParseSerialization(s string) (Serialization, error) {
	switch Serialization(s) {
	case PEM, DER:
		return Serialization(s), nil
	default:
		return "", fmt.Errorf("unknown serialization %q", s)
	}
}

// KeyFamily identifies the algorithm family of a key pair. The family
// determines which container transitions are legal.
type KeyFamily string

const (
	RSA KeyFamily = "rsa"
	ECC KeyFamily = "ecc"
)

// ParseKeyFamily parses a key family name ("rsa" or "ecc").
func ParseKeyFamily(s string) (KeyFamily, error) {
	switch KeyFamily(s) {
	case RSA, ECC:
		return KeyFamily(s), nil
	default:
		return "", fmt.Errorf("unknown key family %q", s)
	}
}

// Curve is a named elliptic curve. Required for EC key conversions,
// irrelevant for RSA.
type Curve string

const (
	NistP256  Curve = "nistp256"
	NistP384  Curve = "nistp384"
	NistP521  Curve = "nistp521"
	Secp256k1 Curve = "secp256k1"
)

// Curves returns all known curves.
func Curves() []Curve {
	return []Curve{NistP256, NistP384, NistP521, Secp256k1}
}

// ParseCurve parses a curve name such as "nistp256".
func ParseCurve(s string) (Curve, error) {
	switch Curve(s) {
	case NistP256, NistP384, NistP521, Secp256k1:
		return Curve(s), nil
	default:
		return "", fmt.Errorf("unknown curve %q", s)
	}
}

// EllipticCurve returns the stdlib curve parameters for c. Secp256k1 has no
// stdlib implementation and returns an error.
func (c Curve) EllipticCurve() (elliptic.Curve, error) {
	switch c {
	case NistP256:
		return elliptic.P256(), nil
	case NistP384:
		return elliptic.P384(), nil
	case NistP521:
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("curve %q has no stdlib parameters", c)
	}
}

// FormatSpec describes a target key format: the container kind, the
// serialization, and optionally a text encoding for display-layer
// conversions. The container kind and serialization are independent
// choices; legality of a container transition depends on the key family.
type FormatSpec struct {
	Container     ContainerKind
	Serialization Serialization
	Encoding      Encoding // optional, zero value means none
}

// Equal reports whether two FormatSpecs are structurally identical.
// The identity shortcut in the converters compares the full FormatSpec,
// not just the container kind.
func (f FormatSpec) Equal(other FormatSpec) bool {
	return f == other
}

func (f FormatSpec) String() string {
	if f.Encoding != "" {
		return fmt.Sprintf("%s/%s/%s", f.Container, f.Serialization, f.Encoding)
	}
	return fmt.Sprintf("%s/%s", f.Container, f.Serialization)
}

// KeyPair is an ordered pair of opaque key texts whose structure is defined
// by the owning FormatSpec. Either half may be empty; conversions pass empty
// halves through untouched. KeyPairs are immutable values, only ever
// replaced by conversion results.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}
