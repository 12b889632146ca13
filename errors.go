package keyshift

import "fmt"

// UnsupportedTransitionError reports a container transition outside the
// legality table for a key family. It is raised synchronously, before any
// provider call is made.
type UnsupportedTransitionError struct {
	Family KeyFamily
	From   ContainerKind
	To     ContainerKind
}

func (e *UnsupportedTransitionError) Error() string {
	return fmt.Sprintf("unsupported %s container transition %s -> %s", e.Family, e.From, e.To)
}

// ProviderError reports a failure from the crypto provider. The message is
// passed through unmodified for display; the converters perform no recovery
// of their own.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// DecodeError reports that text could not be decoded under the selected
// encoding. Decoding fails whole: no partial bytes are ever returned.
type DecodeError struct {
	Encoding Encoding
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s text: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
