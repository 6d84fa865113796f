// Package value defines the tree produced by parsing a Python literal.
// Every node is one of six variants; consumers switch exhaustively on the
// concrete type.
package value

// Value is a single node in the parsed tree. The concrete types are Null,
// Bool, Number, String, Array and Object.
type Value interface {
	Kind() Kind
}

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "?"
}

// Null represents Python None (JSON null).
type Null struct{}

// Bool represents True/False.
type Bool bool

// Number represents any numeric literal. All numbers, including integers
// written in hex, octal or binary, share this single float64 representation.
type Number float64

// String represents a decoded string literal or bare word.
type String string

// Array represents a list or tuple. The list/tuple distinction is not
// retained.
type Array []Value

// Member is a single key-value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a dict. Members keep the order in which their keys first
// appeared in the source; a duplicate key overwrites the earlier value in
// place.
type Object []Member

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

// Set stores val under key, overwriting an existing member in place or
// appending a new one.
func (o *Object) Set(key string, val Value) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = val
			return
		}
	}
	*o = append(*o, Member{Key: key, Value: val})
}

// Get returns the value stored under key, or nil and false if the key is
// absent.
func (o Object) Get(key string) (Value, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i := range o {
		keys[i] = o[i].Key
	}
	return keys
}
