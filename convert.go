package keyshift

import (
	"context"
)

// TransferRequest is the payload handed to a Provider: the key pair text,
// the source and target formats, and the curve for EC keys.
type TransferRequest struct {
	PrivateKey string
	PublicKey  string
	From       FormatSpec
	To         FormatSpec
	Curve      Curve // EC transfers only
}

// Provider performs the actual byte-level re-encoding of key material.
// The converters make no assumptions about how it works; they only trust
// that a successful response matches the requested target format.
type Provider interface {
	TransferRSAKey(ctx context.Context, req TransferRequest) (KeyPair, error)
	TransferECCKey(ctx context.Context, req TransferRequest) (KeyPair, error)
}

// RSAContainerConverter converts RSA keys between container formats,
// validating the transition against the RSA legality table before
// delegating to the provider.
type RSAContainerConverter struct {
	Provider Provider
}

// Convert checks the identity shortcut and the RSA transition table, then
// delegates to the provider. Illegal transitions fail with
// UnsupportedTransitionError before any provider call.
func (c RSAContainerConverter) Convert(ctx context.Context, privateKey, publicKey string, from, to FormatSpec) (KeyPair, error) {
	if from.Equal(to) {
		return KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
	}
	if !IsLegalTransition(RSA, from.Container, to.Container) {
		return KeyPair{}, &UnsupportedTransitionError{Family: RSA, From: from.Container, To: to.Container}
	}
	return c.Provider.TransferRSAKey(ctx, TransferRequest{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		From:       from,
		To:         to,
	})
}

// ECCContainerConverter converts EC keys between container formats. The
// curve is an explicit per-call parameter rather than converter state, so
// concurrent conversions on the same converter cannot clobber each other's
// curve selection.
type ECCContainerConverter struct {
	Provider Provider
}

// Convert checks the identity shortcut and the EC transition table, then
// delegates to the provider with the given curve.
func (c ECCContainerConverter) Convert(ctx context.Context, curve Curve, privateKey, publicKey string, from, to FormatSpec) (KeyPair, error) {
	if from.Equal(to) {
		return KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
	}
	if !IsLegalTransition(ECC, from.Container, to.Container) {
		return KeyPair{}, &UnsupportedTransitionError{Family: ECC, From: from.Container, To: to.Container}
	}
	return c.Provider.TransferECCKey(ctx, TransferRequest{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		From:       from,
		To:         to,
		Curve:      curve,
	})
}

// RSAEncodingConverter converts RSA keys between serializations with the
// container held fixed. PEM and DER are always interchangeable, so no
// container validation is performed; everything past the identity shortcut
// goes straight to the provider.
type RSAEncodingConverter struct {
	Provider Provider
}

// Convert applies the identity shortcut, then delegates unconditionally.
func (c RSAEncodingConverter) Convert(ctx context.Context, privateKey, publicKey string, from, to FormatSpec) (KeyPair, error) {
	if from.Equal(to) {
		return KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
	}
	return c.Provider.TransferRSAKey(ctx, TransferRequest{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		From:       from,
		To:         to,
	})
}

// ECCEncodingConverter converts EC keys between serializations with the
// container held fixed. As with the RSA variant, no container validation.
type ECCEncodingConverter struct {
	Provider Provider
}

// Convert applies the identity shortcut, then delegates unconditionally
// with the given curve.
func (c ECCEncodingConverter) Convert(ctx context.Context, curve Curve, privateKey, publicKey string, from, to FormatSpec) (KeyPair, error) {
	if from.Equal(to) {
		return KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
	}
	return c.Provider.TransferECCKey(ctx, TransferRequest{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		From:       from,
		To:         to,
		Curve:      curve,
	})
}
