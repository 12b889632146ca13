package keyshift

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/ssh"
)

// PEM block types for the containers this package handles.
const (
	pemTypePKCS1Private = "RSA PRIVATE KEY"
	pemTypePKCS1Public  = "RSA PUBLIC KEY"
	pemTypePKCS8Private = "PRIVATE KEY"
	pemTypePKIXPublic   = "PUBLIC KEY"
	pemTypeSEC1Private  = "EC PRIVATE KEY"
	pemTypeOpenSSH      = "OPENSSH PRIVATE KEY"
)

// LocalProvider implements Provider with in-process re-encoding via
// crypto/x509. It is the default provider; a remote implementation can be
// substituted behind the same interface.
//
// Key text with DER serialization is the raw DER bytes as a string; the
// display layer re-encodes through the codec registry for rendering.
type LocalProvider struct{}

// TransferRSAKey re-encodes an RSA key pair from one format to another.
// Empty halves pass through empty.
func (LocalProvider) TransferRSAKey(_ context.Context, req TransferRequest) (KeyPair, error) {
	slog.Debug("transfer rsa key", "from", req.From.String(), "to", req.To.String())

	var out KeyPair
	if req.PrivateKey != "" {
		key, err := parseRSAPrivate(req.PrivateKey, req.From)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_rsa_key", Err: err}
		}
		out.PrivateKey, err = encodeRSAPrivate(key, req.To)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_rsa_key", Err: err}
		}
	}
	if req.PublicKey != "" {
		key, err := parseRSAPublic(req.PublicKey, req.From)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_rsa_key", Err: err}
		}
		out.PublicKey, err = encodeRSAPublic(key, req.To)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_rsa_key", Err: err}
		}
	}
	return out, nil
}

// TransferECCKey re-encodes an EC key pair from one format to another.
// The curve in the request is informational: the parsed key carries its own
// curve parameters.
func (LocalProvider) TransferECCKey(_ context.Context, req TransferRequest) (KeyPair, error) {
	slog.Debug("transfer ecc key", "curve", string(req.Curve), "from", req.From.String(), "to", req.To.String())

	var out KeyPair
	if req.PrivateKey != "" {
		key, err := parseECPrivate(req.PrivateKey, req.From)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_ecc_key", Err: err}
		}
		out.PrivateKey, err = encodeECPrivate(key, req.To)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_ecc_key", Err: err}
		}
	}
	if req.PublicKey != "" {
		key, err := parseECPublic(req.PublicKey, req.From)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_ecc_key", Err: err}
		}
		out.PublicKey, err = encodeECPublic(key, req.To)
		if err != nil {
			return KeyPair{}, &ProviderError{Op: "transfer_ecc_key", Err: err}
		}
	}
	return out, nil
}

// containerDER extracts the DER bytes for a key text. For PEM it decodes a
// single block and checks the type; for DER the text already holds the raw
// bytes. An OpenSSH private key block is reported via the returned type;
// every caller must branch on it, either delegating to x/crypto/ssh or
// rejecting the input outright.
func containerDER(text string, spec FormatSpec, wantTypes ...string) ([]byte, string, error) {
	if spec.Serialization == DER {
		return []byte(text), "", nil
	}
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, "", errors.New("no PEM block found")
	}
	for _, want := range wantTypes {
		if block.Type == want {
			return block.Bytes, block.Type, nil
		}
	}
	if block.Type == pemTypeOpenSSH {
		return nil, pemTypeOpenSSH, nil
	}
	return nil, "", fmt.Errorf("unexpected PEM block type %q", block.Type)
}

// pemEncode wraps DER bytes in a PEM block of the given type.
func pemEncode(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

func parseRSAPrivate(text string, spec FormatSpec) (*rsa.PrivateKey, error) {
	wantType := pemTypePKCS1Private
	if spec.Container == PKCS8 {
		wantType = pemTypePKCS8Private
	}
	der, blockType, err := containerDER(text, spec, wantType)
	if err != nil {
		return nil, fmt.Errorf("reading %s rsa private key: %w", spec.Container, err)
	}
	if blockType == pemTypeOpenSSH {
		return parseOpenSSHRSA(text)
	}

	switch spec.Container {
	case PKCS1:
		key, err := x509.ParsePKCS1PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing pkcs1 rsa private key: %w", err)
		}
		return key, nil
	case PKCS8:
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing pkcs8 rsa private key: %w", err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("pkcs8 key is %T, not RSA", key)
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("container %q does not hold rsa private keys", spec.Container)
	}
}

// parseOpenSSHRSA accepts an OpenSSH-format RSA private key as conversion
// input. OpenSSH uses a proprietary encoding; delegate to x/crypto/ssh.
func parseOpenSSHRSA(text string) (*rsa.PrivateKey, error) {
	key, err := ssh.ParseRawPrivateKey([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing OpenSSH private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("OpenSSH key is %T, not RSA", key)
	}
	return rsaKey, nil
}

func encodeRSAPrivate(key *rsa.PrivateKey, spec FormatSpec) (string, error) {
	var der []byte
	var blockType string
	switch spec.Container {
	case PKCS1:
		der = x509.MarshalPKCS1PrivateKey(key)
		blockType = pemTypePKCS1Private
	case PKCS8:
		var err error
		der, err = x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return "", fmt.Errorf("marshaling rsa key to pkcs8: %w", err)
		}
		blockType = pemTypePKCS8Private
	default:
		return "", fmt.Errorf("container %q does not hold rsa private keys", spec.Container)
	}
	if spec.Serialization == DER {
		return string(der), nil
	}
	return pemEncode(blockType, der), nil
}

func parseRSAPublic(text string, spec FormatSpec) (*rsa.PublicKey, error) {
	wantType := pemTypePKCS1Public
	if spec.Container == PKCS8 {
		wantType = pemTypePKIXPublic
	}
	der, blockType, err := containerDER(text, spec, wantType)
	if err != nil {
		return nil, fmt.Errorf("reading %s rsa public key: %w", spec.Container, err)
	}
	if blockType == pemTypeOpenSSH {
		return nil, errors.New("OpenSSH private key block given as public key input")
	}

	switch spec.Container {
	case PKCS1:
		key, err := x509.ParsePKCS1PublicKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing pkcs1 rsa public key: %w", err)
		}
		return key, nil
	case PKCS8:
		key, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing rsa public key: %w", err)
		}
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is %T, not RSA", key)
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("container %q does not hold rsa public keys", spec.Container)
	}
}

func encodeRSAPublic(key *rsa.PublicKey, spec FormatSpec) (string, error) {
	var der []byte
	var blockType string
	switch spec.Container {
	case PKCS1:
		der = x509.MarshalPKCS1PublicKey(key)
		blockType = pemTypePKCS1Public
	case PKCS8:
		var err error
		der, err = x509.MarshalPKIXPublicKey(key)
		if err != nil {
			return "", fmt.Errorf("marshaling rsa public key: %w", err)
		}
		blockType = pemTypePKIXPublic
	default:
		return "", fmt.Errorf("container %q does not hold rsa public keys", spec.Container)
	}
	if spec.Serialization == DER {
		return string(der), nil
	}
	return pemEncode(blockType, der), nil
}

func parseECPrivate(text string, spec FormatSpec) (*ecdsa.PrivateKey, error) {
	wantType := pemTypeSEC1Private
	if spec.Container == PKCS8 {
		wantType = pemTypePKCS8Private
	}
	der, blockType, err := containerDER(text, spec, wantType)
	if err != nil {
		return nil, fmt.Errorf("reading %s ec private key: %w", spec.Container, err)
	}
	if blockType == pemTypeOpenSSH {
		return parseOpenSSHEC(text)
	}

	switch spec.Container {
	case SEC1:
		key, err := x509.ParseECPrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing sec1 ec private key: %w", err)
		}
		return key, nil
	case PKCS8:
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("parsing pkcs8 ec private key: %w", err)
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("pkcs8 key is %T, not EC", key)
		}
		return ecKey, nil
	default:
		return nil, fmt.Errorf("container %q does not hold ec private keys", spec.Container)
	}
}

func encodeECPrivate(key *ecdsa.PrivateKey, spec FormatSpec) (string, error) {
	var der []byte
	var blockType string
	switch spec.Container {
	case SEC1:
		var err error
		der, err = x509.MarshalECPrivateKey(key)
		if err != nil {
			return "", fmt.Errorf("marshaling ec key to sec1: %w", err)
		}
		blockType = pemTypeSEC1Private
	case PKCS8:
		var err error
		der, err = x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return "", fmt.Errorf("marshaling ec key to pkcs8: %w", err)
		}
		blockType = pemTypePKCS8Private
	default:
		return "", fmt.Errorf("container %q does not hold ec private keys", spec.Container)
	}
	if spec.Serialization == DER {
		return string(der), nil
	}
	return pemEncode(blockType, der), nil
}

// parseOpenSSHEC accepts an OpenSSH-format EC private key as conversion
// input, same as the RSA variant.
func parseOpenSSHEC(text string) (*ecdsa.PrivateKey, error) {
	key, err := ssh.ParseRawPrivateKey([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing OpenSSH private key: %w", err)
	}
	ecKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("OpenSSH key is %T, not EC", key)
	}
	return ecKey, nil
}

// parseECPublic reads an EC public key. SEC1 defines no public-key
// container, so both containers carry PKIX SubjectPublicKeyInfo.
func parseECPublic(text string, spec FormatSpec) (*ecdsa.PublicKey, error) {
	der, blockType, err := containerDER(text, spec, pemTypePKIXPublic)
	if err != nil {
		return nil, fmt.Errorf("reading ec public key: %w", err)
	}
	if blockType == pemTypeOpenSSH {
		return nil, errors.New("OpenSSH private key block given as public key input")
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing ec public key: %w", err)
	}
	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, not EC", key)
	}
	return ecKey, nil
}

func encodeECPublic(key *ecdsa.PublicKey, spec FormatSpec) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return "", fmt.Errorf("marshaling ec public key: %w", err)
	}
	if spec.Serialization == DER {
		return string(der), nil
	}
	return pemEncode(pemTypePKIXPublic, der), nil
}
