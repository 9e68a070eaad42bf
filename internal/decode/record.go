package decode

// Field is one entry of a record schema. It binds a wire field name to a
// destination and the codec used to fill it.
type Field struct {
	name     string
	required bool
	assign   func(raw any) error
}

// Required declares a field that must be present and non-null.
func Required[T any](name string, dst *T, codec Codec[T]) Field {
	return Field{
		name:     name,
		required: true,
		assign: func(raw any) error {
			v, err := codec(raw)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		},
	}
}

// Optional declares a field that may be missing. Missing and null both leave
// dst absent.
func Optional[T any](name string, dst *Opt[T], codec Codec[T]) Field {
	return Field{
		name: name,
		assign: func(raw any) error {
			v, err := codec(raw)
			if err != nil {
				return err
			}
			*dst = Some(v)
			return nil
		},
	}
}

// Record decodes raw against the given schema. It stops at the first field that
// fails and ignores keys the schema does not name.
func Record(raw any, fields ...Field) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return typeMismatch(ShapeObject)
	}

	for _, f := range fields {
		v, present := m[f.name]
		if !present {
			if f.required {
				return missingField(f.name)
			}
			continue
		}

		if v == nil {
			if f.required {
				return &Error{Kind: TypeMismatch, Path: []string{f.name}, Expected: "non-null value"}
			}
			continue
		}

		if err := f.assign(v); err != nil {
			return prefixed(f.name, err, "valid value")
		}
	}

	return nil
}
