package decode

import (
	"encoding/json"
	"math"
)

// Codec turns a single raw field value into T.
type Codec[T any] func(raw any) (T, error)

const (
	ShapeBoolean = "boolean"
	ShapeInteger = "integer"
	ShapeString  = "string"
	ShapeObject  = "object"
)

func Bool(raw any) (bool, error) {
	v, ok := raw.(bool)
	if !ok {
		return false, typeMismatch(ShapeBoolean)
	}
	return v, nil
}

func String(raw any) (string, error) {
	v, ok := raw.(string)
	if !ok {
		return "", typeMismatch(ShapeString)
	}
	return v, nil
}

// Int64 accepts Go integers, json.Number and integral float64 values as produced
// by encoding/json with and without UseNumber.
func Int64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, typeMismatch(ShapeInteger)
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, typeMismatch(ShapeInteger)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, typeMismatch(ShapeInteger)
		}
		return n, nil
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 can't hold.
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, typeMismatch(ShapeInteger)
		}
		return int64(v), nil
	default:
		return 0, typeMismatch(ShapeInteger)
	}
}

// Nested adapts an entity decoder so it can be used as a field codec. Errors
// from the nested decoder keep their path and get prefixed by Record.
func Nested[T any](decodeFn func(raw any) (T, error)) Codec[T] {
	return Codec[T](decodeFn)
}
