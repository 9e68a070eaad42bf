package decode

// Opt holds a value that may be absent from a record. The zero value is absent.
type Opt[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, ok: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Opt[T]) IsPresent() bool {
	return o.ok
}

func (o Opt[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}
