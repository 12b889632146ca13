package keyshift

import (
	"bytes"
	"crypto"
	"crypto/x509"
	"strings"
	"testing"
	"time"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
)

func buildJKS(t *testing.T, key crypto.Signer, password string) []byte {
	t.Helper()

	cert := testSelfSignedCert(t, key)
	pkcs8Key, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal PKCS8: %v", err)
	}

	ks := keystore.New()
	if err := ks.SetPrivateKeyEntry("server", keystore.PrivateKeyEntry{
		CreationTime: time.Now(),
		PrivateKey:   pkcs8Key,
		CertificateChain: []keystore.Certificate{
			{Type: "X.509", Content: cert.Raw},
		},
	}, []byte(password)); err != nil {
		t.Fatalf("set private key entry: %v", err)
	}

	var buf bytes.Buffer
	if err := ks.Store(&buf, []byte(password)); err != nil {
		t.Fatalf("store JKS: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeJKSKey_RSA(t *testing.T) {
	t.Parallel()

	key := testRSAKey(t)
	data := buildJKS(t, key, "keypassword")

	pair, family, err := DecodeJKSKey(data, "keypassword")
	if err != nil {
		t.Fatal(err)
	}
	if family != RSA {
		t.Errorf("family = %q, want rsa", family)
	}
	if !strings.Contains(pair.PrivateKey, "BEGIN PRIVATE KEY") {
		t.Errorf("private key is not PKCS#8 PEM:\n%s", pair.PrivateKey)
	}

	spec := FormatSpec{Container: PKCS8, Serialization: PEM}
	got, err := parseRSAPrivate(pair.PrivateKey, spec)
	if err != nil {
		t.Fatal(err)
	}
	if got.N.Cmp(key.N) != 0 {
		t.Error("decoded key does not match the one stored in the keystore")
	}
}

func TestDecodeJKSKey_EC(t *testing.T) {
	t.Parallel()

	key := testECKey(t)
	data := buildJKS(t, key, "keypassword")

	pair, family, err := DecodeJKSKey(data, "keypassword")
	if err != nil {
		t.Fatal(err)
	}
	if family != ECC {
		t.Errorf("family = %q, want ecc", family)
	}

	spec := FormatSpec{Container: PKCS8, Serialization: PEM}
	got, err := parseECPrivate(pair.PrivateKey, spec)
	if err != nil {
		t.Fatal(err)
	}
	if got.D.Cmp(key.D) != 0 {
		t.Error("decoded key does not match the one stored in the keystore")
	}
}

func TestDecodeJKSKey_WrongPassword(t *testing.T) {
	t.Parallel()

	data := buildJKS(t, testRSAKey(t), "keypassword")
	if _, _, err := DecodeJKSKey(data, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestDecodeJKSKey_NoPrivateEntries(t *testing.T) {
	// WHY: A store holding only trusted certificates has nothing to
	// convert; the decoder must say so rather than return an empty pair.
	t.Parallel()

	cert := testSelfSignedCert(t, testRSAKey(t))
	ks := keystore.New()
	if err := ks.SetTrustedCertificateEntry("ca", keystore.TrustedCertificateEntry{
		CreationTime: time.Now(),
		Certificate:  keystore.Certificate{Type: "X.509", Content: cert.Raw},
	}); err != nil {
		t.Fatalf("set trusted certificate entry: %v", err)
	}
	var buf bytes.Buffer
	if err := ks.Store(&buf, []byte("changeit")); err != nil {
		t.Fatalf("store JKS: %v", err)
	}

	if _, _, err := DecodeJKSKey(buf.Bytes(), "changeit"); err == nil {
		t.Fatal("store without private key entries accepted")
	}
}
