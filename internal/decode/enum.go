package decode

// Tag is the set of types usable as enum variant tags.
type Tag interface {
	~uint8
}

// Variant is a decoded enum value. Raw always holds the wire literal, so
// unrecognized values keep the string they arrived with.
type Variant[K Tag] struct {
	Kind K
	Raw  string
}

// Compare orders variants by tag, then by raw literal.
func (v Variant[K]) Compare(other Variant[K]) int {
	switch {
	case v.Kind < other.Kind:
		return -1
	case v.Kind > other.Kind:
		return 1
	case v.Raw < other.Raw:
		return -1
	case v.Raw > other.Raw:
		return 1
	}
	return 0
}

func (v Variant[K]) String() string {
	return v.Raw
}

// Enum decodes string literals of an enumeration that the remote side may
// extend. Literals are matched exactly. Anything else maps to the fallback tag.
type Enum[K Tag] struct {
	known    map[string]K
	literals map[K]string
	fallback K
}

func NewEnum[K Tag](fallback K, known map[string]K) Enum[K] {
	e := Enum[K]{
		known:    make(map[string]K, len(known)),
		literals: make(map[K]string, len(known)),
		fallback: fallback,
	}
	for lit, k := range known {
		e.known[lit] = k
		e.literals[k] = lit
	}
	return e
}

// Decode never fails.
func (e Enum[K]) Decode(raw string) Variant[K] {
	if k, ok := e.known[raw]; ok {
		return Variant[K]{Kind: k, Raw: raw}
	}
	return Variant[K]{Kind: e.fallback, Raw: raw}
}

// Of builds the variant for a known tag. It reports false for the fallback
// tag and any other tag without a literal.
func (e Enum[K]) Of(k K) (Variant[K], bool) {
	lit, ok := e.literals[k]
	if !ok {
		return Variant[K]{}, false
	}
	return Variant[K]{Kind: k, Raw: lit}, true
}

func (e Enum[K]) Encode(v Variant[K]) string {
	if lit, ok := e.literals[v.Kind]; ok {
		return lit
	}
	return v.Raw
}

func (e Enum[K]) IsKnown(v Variant[K]) bool {
	_, ok := e.literals[v.Kind]
	return ok
}

// DecodeField is the record codec for this enum: the wire value must be a string.
func (e Enum[K]) DecodeField(raw any) (Variant[K], error) {
	s, ok := raw.(string)
	if !ok {
		return Variant[K]{}, typeMismatch(ShapeString)
	}
	return e.Decode(s), nil
}
