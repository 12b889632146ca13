package keyshift

import "testing"

func TestParseContainerKind(t *testing.T) {
	t.Parallel()

	for _, kind := range ContainerKinds() {
		got, err := ParseContainerKind(string(kind))
		if err != nil {
			t.Errorf("ParseContainerKind(%q): %v", kind, err)
		}
		if got != kind {
			t.Errorf("ParseContainerKind(%q) = %q", kind, got)
		}
	}

	// WHY: Names must match exactly; case variants and aliases are not
	// accepted anywhere in the public surface.
	for _, bad := range []string{"", "PKCS8", "pkcs7", "pkcs-8", "sec-1"} {
		if _, err := ParseContainerKind(bad); err == nil {
			t.Errorf("ParseContainerKind(%q) accepted", bad)
		}
	}
}

func TestParseSerialization(t *testing.T) {
	t.Parallel()

	for _, s := range []Serialization{PEM, DER} {
		got, err := ParseSerialization(string(s))
		if err != nil {
			t.Errorf("ParseSerialization(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseSerialization(%q) = %q", s, got)
		}
	}
	for _, bad := range []string{"", "PEM", "asn1", "raw"} {
		if _, err := ParseSerialization(bad); err == nil {
			t.Errorf("ParseSerialization(%q) accepted", bad)
		}
	}
}

func TestParseKeyFamily(t *testing.T) {
	t.Parallel()

	for _, f := range []KeyFamily{RSA, ECC} {
		got, err := ParseKeyFamily(string(f))
		if err != nil {
			t.Errorf("ParseKeyFamily(%q): %v", f, err)
		}
		if got != f {
			t.Errorf("ParseKeyFamily(%q) = %q", f, got)
		}
	}
	for _, bad := range []string{"", "ed25519", "ec", "RSA"} {
		if _, err := ParseKeyFamily(bad); err == nil {
			t.Errorf("ParseKeyFamily(%q) accepted", bad)
		}
	}
}

func TestParseCurve(t *testing.T) {
	t.Parallel()

	for _, c := range Curves() {
		got, err := ParseCurve(string(c))
		if err != nil {
			t.Errorf("ParseCurve(%q): %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCurve(%q) = %q", c, got)
		}
	}
	for _, bad := range []string{"", "p256", "P-256", "curve25519"} {
		if _, err := ParseCurve(bad); err == nil {
			t.Errorf("ParseCurve(%q) accepted", bad)
		}
	}
}

func TestCurveEllipticCurve(t *testing.T) {
	t.Parallel()

	for _, c := range []Curve{NistP256, NistP384, NistP521} {
		curve, err := c.EllipticCurve()
		if err != nil {
			t.Errorf("%s: %v", c, err)
		}
		if curve == nil {
			t.Errorf("%s: nil curve", c)
		}
	}
	// WHY: secp256k1 is a valid name on the wire but has no stdlib
	// parameters; key generation for it must fail cleanly, not panic.
	if _, err := Secp256k1.EllipticCurve(); err == nil {
		t.Error("secp256k1 returned stdlib parameters")
	}
}

func TestFormatSpecEqual(t *testing.T) {
	t.Parallel()

	a := FormatSpec{Container: PKCS8, Serialization: PEM}
	tests := []struct {
		name  string
		other FormatSpec
		want  bool
	}{
		{"identical", FormatSpec{Container: PKCS8, Serialization: PEM}, true},
		{"different container", FormatSpec{Container: PKCS1, Serialization: PEM}, false},
		{"different serialization", FormatSpec{Container: PKCS8, Serialization: DER}, false},
		{"different encoding", FormatSpec{Container: PKCS8, Serialization: PEM, Encoding: Base64}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSpecString(t *testing.T) {
	t.Parallel()

	spec := FormatSpec{Container: PKCS1, Serialization: DER}
	if got := spec.String(); got != "pkcs1/der" {
		t.Errorf("String() = %q", got)
	}
	spec.Encoding = Hex
	if got := spec.String(); got != "pkcs1/der/hex" {
		t.Errorf("String() with encoding = %q", got)
	}
}
