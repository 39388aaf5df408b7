package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Checker is implemented by records with required fields. Coerce calls Check
// after decoding so a record missing them fails as a *ParseError.
type Checker interface {
	Check() error
}

// Shape tells Coerce whether the call site expects one record or a list.
type Shape int

const (
	Single Shape = iota
	List
)

func (s Shape) String() string {
	if s == List {
		return "list"
	}
	return "single"
}

// Coerced is the outcome of coercing a raw response. Exactly one of Null,
// Text, Item or Items describes the body.
type Coerced[T any] struct {
	Null  bool
	Text  *string
	Item  *T
	Items []T
}

// ParseError reports a response whose JSON did not match the declared target.
type ParseError struct {
	Target string
	Shape  Shape
	Body   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse %s %s: unexpected body %s", e.Shape, e.Target, truncate(e.Body, 200))
	}
	return fmt.Sprintf("parse %s %s: %v", e.Shape, e.Target, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Coerce turns a raw decoded body into the shape a call site declared:
//
//	null or empty body -> Null
//	bare JSON string   -> Text, whatever the shape
//	List + array       -> Items, one T per element, input order kept
//	Single + object    -> Item
//
// Anything else is a *ParseError; nothing is silently dropped.
func Coerce[T any](data json.RawMessage, shape Shape) (Coerced[T], error) {
	var out Coerced[T]

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		out.Null = true
		return out, nil
	}

	fail := func(err error) (Coerced[T], error) {
		return Coerced[T]{}, &ParseError{Target: typeName[T](), Shape: shape, Body: string(trimmed), Err: err}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fail(err)
		}
		out.Text = &s
		return out, nil
	case '[':
		if shape != List {
			return fail(fmt.Errorf("got a JSON array, want an object"))
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fail(err)
		}
		out.Items = make([]T, 0, len(raw))
		for i, elem := range raw {
			var item T
			if err := decode(elem, &item); err != nil {
				return fail(fmt.Errorf("element %d: %w", i, err))
			}
			out.Items = append(out.Items, item)
		}
		return out, nil
	case '{':
		if shape != Single {
			return fail(fmt.Errorf("got a JSON object, want an array"))
		}
		item := new(T)
		if err := decode(trimmed, item); err != nil {
			return fail(err)
		}
		out.Item = item
		return out, nil
	default:
		return fail(nil)
	}
}

// CoerceOne is Coerce for record-shaped call sites. A null body yields
// (nil, nil); a bare string cannot be held by *T and is reported as a
// *ParseError carrying the text.
func CoerceOne[T any](data json.RawMessage) (*T, error) {
	c, err := Coerce[T](data, Single)
	if err != nil {
		return nil, err
	}
	if c.Text != nil {
		return nil, &ParseError{Target: typeName[T](), Shape: Single, Body: *c.Text, Err: fmt.Errorf("got text %q, want an object", *c.Text)}
	}
	return c.Item, nil
}

// CoerceList is Coerce for list-shaped call sites. A null body yields
// (nil, nil).
func CoerceList[T any](data json.RawMessage) ([]T, error) {
	c, err := Coerce[T](data, List)
	if err != nil {
		return nil, err
	}
	if c.Text != nil {
		return nil, &ParseError{Target: typeName[T](), Shape: List, Body: *c.Text, Err: fmt.Errorf("got text %q, want an array", *c.Text)}
	}
	return c.Items, nil
}

func decode[T any](data []byte, into *T) error {
	if err := json.Unmarshal(data, into); err != nil {
		return err
	}
	if c, ok := any(into).(Checker); ok {
		return c.Check()
	}
	return nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
