package keyshift

// containerPair is a directed (from, to) container transition.
type containerPair struct {
	from ContainerKind
	to   ContainerKind
}

// legalTransitions lists every container transition each key family may
// request from the provider. Transitions absent from a family's set are
// rejected before any provider call. Serialization-only conversions
// (PEM<->DER with the container held fixed) are a separate operation class
// and never consult this table.
var legalTransitions = map[KeyFamily]map[containerPair]bool{
	RSA: {
		{PKCS1, PKCS1}: true,
		{PKCS1, PKCS8}: true,
		{PKCS8, PKCS1}: true,
		{PKCS8, PKCS8}: true,
	},
	ECC: {
		{PKCS8, PKCS8}: true,
		{PKCS8, SEC1}:  true,
		{SEC1, PKCS8}:  true,
		{SEC1, SEC1}:   true,
	},
}

// IsLegalTransition reports whether a key family may convert between the
// given container kinds. Pure table lookup: no state, no provider calls.
func IsLegalTransition(family KeyFamily, from, to ContainerKind) bool {
	return legalTransitions[family][containerPair{from, to}]
}
