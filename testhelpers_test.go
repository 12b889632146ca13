package keyshift

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"
)

// testRSAKey generates a small RSA key for tests. 1024 bits keeps test
// runtime low; key strength is irrelevant to format conversion.
func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func testECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// testRSAPair renders a fresh RSA key pair in the given format.
func testRSAPair(t *testing.T, spec FormatSpec) (KeyPair, *rsa.PrivateKey) {
	t.Helper()
	key := testRSAKey(t)
	pair, err := encodeRSAPair(key, spec)
	if err != nil {
		t.Fatal(err)
	}
	return pair, key
}

// testECPair renders a fresh P-256 key pair in the given format.
func testECPair(t *testing.T, spec FormatSpec) (KeyPair, *ecdsa.PrivateKey) {
	t.Helper()
	key := testECKey(t)
	pair, err := encodeECPair(key, spec)
	if err != nil {
		t.Fatal(err)
	}
	return pair, key
}

// testSelfSignedCert issues a self-signed certificate for the given key,
// for building PKCS#12 and JKS test fixtures.
func testSelfSignedCert(t *testing.T, key crypto.Signer) *x509.Certificate {
	t.Helper()
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test.example.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return cert
}
