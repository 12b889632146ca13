package keyshift

// Control is the contract between the conversion engine and any UI control
// hosting a codec: a selectable text encoding plus named raw-text inputs.
// It lets key text move between independent conversion controls without the
// engine knowing the UI's shape.
type Control interface {
	TextEncoding() Encoding
	SetTextEncoding(e Encoding)
	Inputs() map[string]string
	SetInputs(inputs map[string]string)
}

// InputSet is a minimal Control implementation backed by a map. Useful for
// headless callers and tests; real display layers implement Control over
// their own widgets.
type InputSet struct {
	encoding Encoding
	inputs   map[string]string
}

// NewInputSet returns an InputSet with the given initial encoding.
func NewInputSet(e Encoding) *InputSet {
	return &InputSet{encoding: e, inputs: make(map[string]string)}
}

func (s *InputSet) TextEncoding() Encoding {
	return s.encoding
}

func (s *InputSet) SetTextEncoding(e Encoding) {
	s.encoding = e
}

// Inputs returns a copy of the current inputs; mutating the returned map
// does not affect the set.
func (s *InputSet) Inputs() map[string]string {
	out := make(map[string]string, len(s.inputs))
	for k, v := range s.inputs {
		out[k] = v
	}
	return out
}

// SetInputs replaces entries for the given keys, leaving others untouched.
func (s *InputSet) SetInputs(inputs map[string]string) {
	for k, v := range inputs {
		s.inputs[k] = v
	}
}
