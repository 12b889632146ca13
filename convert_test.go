package keyshift

import (
	"context"
	"errors"
	"testing"
)

// recordingProvider counts calls and captures the last request, returning a
// canned key pair or error.
type recordingProvider struct {
	rsaCalls int
	eccCalls int
	lastReq  TransferRequest
	result   KeyPair
	err      error
}

func (p *recordingProvider) TransferRSAKey(_ context.Context, req TransferRequest) (KeyPair, error) {
	p.rsaCalls++
	p.lastReq = req
	return p.result, p.err
}

func (p *recordingProvider) TransferECCKey(_ context.Context, req TransferRequest) (KeyPair, error) {
	p.eccCalls++
	p.lastReq = req
	return p.result, p.err
}

func TestConvert_IdentityShortcut(t *testing.T) {
	// WHY: Identical from/to specs must return the input pair untouched with
	// zero provider calls, for every converter variant. The comparison is on
	// the full FormatSpec, so this also pins that the shortcut fires before
	// any validation or delegation.
	t.Parallel()

	spec := FormatSpec{Container: SEC1, Serialization: DER}
	provider := &recordingProvider{}
	ctx := context.Background()

	pairs := []struct {
		name string
		call func() (KeyPair, error)
	}{
		{"rsa container", func() (KeyPair, error) {
			return RSAContainerConverter{Provider: provider}.Convert(ctx, "priv", "pub", spec, spec)
		}},
		{"ecc container", func() (KeyPair, error) {
			return ECCContainerConverter{Provider: provider}.Convert(ctx, NistP256, "priv", "pub", spec, spec)
		}},
		{"rsa encoding", func() (KeyPair, error) {
			return RSAEncodingConverter{Provider: provider}.Convert(ctx, "priv", "pub", spec, spec)
		}},
		{"ecc encoding", func() (KeyPair, error) {
			return ECCEncodingConverter{Provider: provider}.Convert(ctx, NistP256, "priv", "pub", spec, spec)
		}},
	}
	for _, tt := range pairs {
		tt := tt
		got, err := tt.call()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got.PrivateKey != "priv" || got.PublicKey != "pub" {
			t.Errorf("%s: identity returned %+v, want inputs unchanged", tt.name, got)
		}
	}
	if provider.rsaCalls != 0 || provider.eccCalls != 0 {
		t.Errorf("identity shortcut reached the provider: rsa=%d ecc=%d", provider.rsaCalls, provider.eccCalls)
	}
}

func TestConvert_IdentityComparesFullSpec(t *testing.T) {
	// WHY: Same container but different serialization is not an identity:
	// it must still reach the provider (preserved behavior, not optimized
	// into a local PEM/DER rewrite).
	t.Parallel()

	provider := &recordingProvider{result: KeyPair{PrivateKey: "new"}}
	from := FormatSpec{Container: PKCS8, Serialization: PEM}
	to := FormatSpec{Container: PKCS8, Serialization: DER}

	_, err := RSAContainerConverter{Provider: provider}.Convert(context.Background(), "p", "q", from, to)
	if err != nil {
		t.Fatal(err)
	}
	if provider.rsaCalls != 1 {
		t.Errorf("provider called %d times, want 1", provider.rsaCalls)
	}
}

func TestRSAContainerConverter_LegalityTable(t *testing.T) {
	// WHY: Legal pairs must produce exactly one provider call carrying the
	// request verbatim; illegal pairs must fail locally with
	// UnsupportedTransitionError and zero provider calls.
	t.Parallel()

	tests := []struct {
		name  string
		from  ContainerKind
		to    ContainerKind
		legal bool
	}{
		{"pkcs1 to pkcs8", PKCS1, PKCS8, true},
		{"pkcs8 to pkcs1", PKCS8, PKCS1, true},
		{"sec1 source", SEC1, PKCS8, false},
		{"sec1 target", PKCS1, SEC1, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			provider := &recordingProvider{result: KeyPair{PrivateKey: "converted"}}
			conv := RSAContainerConverter{Provider: provider}
			from := FormatSpec{Container: tt.from, Serialization: PEM}
			to := FormatSpec{Container: tt.to, Serialization: PEM}

			got, err := conv.Convert(context.Background(), "priv", "pub", from, to)

			if tt.legal {
				if err != nil {
					t.Fatal(err)
				}
				if provider.rsaCalls != 1 {
					t.Errorf("provider called %d times, want 1", provider.rsaCalls)
				}
				if provider.lastReq.From != from || provider.lastReq.To != to {
					t.Errorf("request carried %v -> %v, want %v -> %v",
						provider.lastReq.From, provider.lastReq.To, from, to)
				}
				if got.PrivateKey != "converted" {
					t.Errorf("provider result not returned verbatim: %+v", got)
				}
				return
			}

			var transitionErr *UnsupportedTransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("error is %T (%v), want *UnsupportedTransitionError", err, err)
			}
			if transitionErr.Family != RSA || transitionErr.From != tt.from || transitionErr.To != tt.to {
				t.Errorf("error carries %s %s->%s, want %s %s->%s",
					transitionErr.Family, transitionErr.From, transitionErr.To, RSA, tt.from, tt.to)
			}
			if provider.rsaCalls != 0 {
				t.Errorf("illegal transition reached the provider %d times", provider.rsaCalls)
			}
		})
	}
}

func TestECCContainerConverter_LegalityTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		from  ContainerKind
		to    ContainerKind
		legal bool
	}{
		{"sec1 to pkcs8", SEC1, PKCS8, true},
		{"pkcs8 to sec1", PKCS8, SEC1, true},
		{"pkcs1 source", PKCS1, PKCS8, false},
		{"pkcs1 target", SEC1, PKCS1, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			provider := &recordingProvider{}
			conv := ECCContainerConverter{Provider: provider}
			from := FormatSpec{Container: tt.from, Serialization: DER}
			to := FormatSpec{Container: tt.to, Serialization: DER}

			_, err := conv.Convert(context.Background(), NistP384, "priv", "pub", from, to)

			if tt.legal {
				if err != nil {
					t.Fatal(err)
				}
				if provider.eccCalls != 1 {
					t.Errorf("provider called %d times, want 1", provider.eccCalls)
				}
				if provider.lastReq.Curve != NistP384 {
					t.Errorf("request curve = %q, want %q", provider.lastReq.Curve, NistP384)
				}
				return
			}

			var transitionErr *UnsupportedTransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("error is %T (%v), want *UnsupportedTransitionError", err, err)
			}
			if provider.eccCalls != 0 {
				t.Errorf("illegal transition reached the provider %d times", provider.eccCalls)
			}
		})
	}
}

func TestEncodingConverters_NoContainerValidation(t *testing.T) {
	// WHY: Serialization-only converters are a distinct operation class:
	// they must delegate any non-identical pair, even pairs the container
	// table would reject.
	t.Parallel()

	provider := &recordingProvider{}
	from := FormatSpec{Container: SEC1, Serialization: PEM}
	to := FormatSpec{Container: SEC1, Serialization: DER}

	rsaConv := RSAEncodingConverter{Provider: provider}
	if _, err := rsaConv.Convert(context.Background(), "p", "q", from, to); err != nil {
		t.Fatalf("rsa encoding converter: %v", err)
	}
	if provider.rsaCalls != 1 {
		t.Errorf("rsa provider called %d times, want 1", provider.rsaCalls)
	}

	eccConv := ECCEncodingConverter{Provider: provider}
	if _, err := eccConv.Convert(context.Background(), NistP256, "p", "q", from, to); err != nil {
		t.Fatalf("ecc encoding converter: %v", err)
	}
	if provider.eccCalls != 1 {
		t.Errorf("ecc provider called %d times, want 1", provider.eccCalls)
	}
}

func TestConvert_ProviderErrorPassthrough(t *testing.T) {
	// WHY: Provider failures must surface to the caller unmodified, with no
	// retry and no local recovery.
	t.Parallel()

	wantErr := &ProviderError{Op: "transfer_rsa_key", Err: errors.New("bad key material")}
	provider := &recordingProvider{err: wantErr}
	from := FormatSpec{Container: PKCS1, Serialization: PEM}
	to := FormatSpec{Container: PKCS8, Serialization: PEM}

	_, err := RSAContainerConverter{Provider: provider}.Convert(context.Background(), "p", "q", from, to)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want provider error passed through", err)
	}
	if provider.rsaCalls != 1 {
		t.Errorf("provider called %d times, want exactly 1 (no retries)", provider.rsaCalls)
	}
}
