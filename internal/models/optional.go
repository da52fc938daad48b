package models

import "encoding/json"

// Optional is a request field that remembers whether the client sent it.
// An explicit JSON null counts as sent and leaves Value at its zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes null for unset values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr exposes the value to the validator: a nil *T when unset, so that
// omitempty skips it, and a pointer to the value otherwise.
func (o Optional[T]) Ptr() any {
	var p *T
	if o.Set {
		v := o.Value
		p = &v
	}
	return p
}
