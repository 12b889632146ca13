package keyshift

import "testing"

func TestIsLegalTransition(t *testing.T) {
	// WHY: The legality table is the only guard between a conversion request
	// and the provider. Every (family, from, to) triple must be pinned so a
	// table edit cannot silently open an illegal transition.
	t.Parallel()

	legal := map[KeyFamily][]containerPair{
		RSA: {
			{PKCS1, PKCS1}, {PKCS1, PKCS8}, {PKCS8, PKCS1}, {PKCS8, PKCS8},
		},
		ECC: {
			{PKCS8, PKCS8}, {PKCS8, SEC1}, {SEC1, PKCS8}, {SEC1, SEC1},
		},
	}

	for _, family := range []KeyFamily{RSA, ECC} {
		for _, from := range ContainerKinds() {
			for _, to := range ContainerKinds() {
				want := false
				for _, pair := range legal[family] {
					if pair.from == from && pair.to == to {
						want = true
					}
				}
				if got := IsLegalTransition(family, from, to); got != want {
					t.Errorf("IsLegalTransition(%s, %s, %s) = %v, want %v", family, from, to, got, want)
				}
			}
		}
	}
}

func TestTransitionTableTotal(t *testing.T) {
	// WHY: Every key family must have a table entry, and every entry must
	// only reference known container kinds. Guards against a new family or
	// container being added without extending the table.
	t.Parallel()

	known := map[ContainerKind]bool{}
	for _, c := range ContainerKinds() {
		known[c] = true
	}

	for _, family := range []KeyFamily{RSA, ECC} {
		entries, ok := legalTransitions[family]
		if !ok {
			t.Fatalf("no legality table entry for family %s", family)
		}
		if len(entries) == 0 {
			t.Errorf("family %s has an empty legality table", family)
		}
		for pair := range entries {
			if !known[pair.from] || !known[pair.to] {
				t.Errorf("family %s references unknown container pair %v", family, pair)
			}
		}
	}
}

func TestIsLegalTransition_UnknownFamily(t *testing.T) {
	t.Parallel()
	if IsLegalTransition(KeyFamily("dsa"), PKCS8, PKCS8) {
		t.Error("unknown family must have no legal transitions")
	}
}
