package mapping

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// assignable converts value to target. Besides plain assignability it accepts
// lossless conversions between numeric kinds, since decoded metadata carries
// float64 (JSON) or int (YAML) regardless of the bean's field type. Structs,
// maps and text-encoded values (time.Time) arrive as map[string]any or string
// and are decoded through their JSON form.
func assignable(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch {
	case isNumeric(rv.Kind()) && isNumeric(target.Kind()):
		if isUnsigned(target.Kind()) && isNegative(rv) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrValueType, value, target)
		}
		converted := rv.Convert(target)
		if !converted.Convert(rv.Type()).Equal(rv) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrValueType, value, target)
		}
		return converted, nil
	case rv.Kind() == target.Kind() && rv.Type().ConvertibleTo(target):
		// named types over the same underlying kind, e.g. type Status string
		return rv.Convert(target), nil
	case rv.Kind() == reflect.Slice && target.Kind() == reflect.Slice:
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := assignable(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	return decodeJSON(value, target)
}

func decodeJSON(value any, target reflect.Type) (reflect.Value, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s: %v", ErrValueType, value, target, err)
	}
	out := reflect.New(target)
	if err := json.Unmarshal(data, out.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s: %v", ErrValueType, value, target, err)
	}
	return out.Elem(), nil
}

// normalize turns composite values into the plain map[string]any / []any form
// serializers produce on read, so nested fields are keyed by their json tags.
// Scalars are returned as they are.
func normalize(value any) (any, error) {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
	default:
		return value, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isNegative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

// convertValue is the typed form of assignable.
func convertValue[V any](value any) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}
	if v, ok := value.(V); ok {
		return v, nil
	}
	rv, err := assignable(value, reflect.TypeFor[V]())
	if err != nil {
		return zero, err
	}
	return rv.Interface().(V), nil
}

// castBean asserts bean to T. A nil bean yields the zero T.
func castBean[T any](bean any) (T, error) {
	var zero T
	if bean == nil {
		return zero, nil
	}
	b, ok := bean.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrBeanType, zero, bean)
	}
	return b, nil
}

