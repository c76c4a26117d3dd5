// Package shape describes target data shapes independently of any
// reflection or annotation mechanism.
//
// A [Descriptor] captures exactly what schema derivation needs: field names
// and types with optional markers for struct-like shapes, variant structure
// for enums and unions, and element types for sequences. Descriptors come
// from two sources: the reflection facility ([For], [Of]) walks ordinary Go
// types, and any type can instead declare its own shape by implementing
// [Describer], which is the only way to express enums and unions since Go's
// type system cannot surface them through reflection.
package shape

// Kind identifies the structural category of a shape.
type Kind string

const (
	Object  Kind = "object"
	Array   Kind = "array"
	String  Kind = "string"
	Integer Kind = "integer"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	// Enum is a closed set of bare string variants.
	Enum Kind = "enum"
	// Union is a closed set of variants where at least one carries data.
	Union Kind = "union"
)

// Descriptor is a structural description of a target shape. Descriptors are
// plain values; equality of descriptors implies equality of derived schemas.
type Descriptor struct {
	Kind Kind
	// Name is the declared type name, used for schema naming and error
	// subjects. Empty for anonymous shapes.
	Name string
	// Doc is a human-readable description attached to the node.
	Doc string
	// Fields lists an Object's properties in declaration order.
	Fields []Field
	// Elem is an Array's element shape.
	Elem *Descriptor
	// Values lists an Enum's variants in declaration order.
	Values []string
	// Variants lists a Union's alternatives in declaration order.
	Variants []Variant
}

// Field is a single named property of an Object shape.
type Field struct {
	Name string
	// Shape is the field's own descriptor.
	Shape Descriptor
	// Doc is the field's description.
	Doc string
	// Optional marks a field that may be absent; optional fields are left
	// out of the schema's required set.
	Optional bool
}

// Variant is one alternative of a Union shape. A variant with no fields
// carries no data beyond its name.
type Variant struct {
	Name   string
	Fields []Field
}

// Describer lets a type declare its own shape instead of being reflected.
// DescribeShape must work on the zero value and must be deterministic.
type Describer interface {
	DescribeShape() Descriptor
}

// Constructors for hand-built descriptors, mainly useful inside
// DescribeShape implementations and tests.

// NewObject creates an Object descriptor with the given fields in order.
func NewObject(name string, fields ...Field) Descriptor {
	return Descriptor{Kind: Object, Name: name, Fields: fields}
}

// NewField creates a required field.
func NewField(name string, s Descriptor) Field {
	return Field{Name: name, Shape: s}
}

// NewOptionalField creates a field that may be absent.
func NewOptionalField(name string, s Descriptor) Field {
	return Field{Name: name, Shape: s, Optional: true}
}

// NewArray creates an Array descriptor over the given element shape.
func NewArray(elem Descriptor) Descriptor {
	return Descriptor{Kind: Array, Elem: &elem}
}

// NewString creates a String descriptor.
func NewString() Descriptor { return Descriptor{Kind: String} }

// NewInteger creates an Integer descriptor.
func NewInteger() Descriptor { return Descriptor{Kind: Integer} }

// NewNumber creates a Number descriptor.
func NewNumber() Descriptor { return Descriptor{Kind: Number} }

// NewBoolean creates a Boolean descriptor.
func NewBoolean() Descriptor { return Descriptor{Kind: Boolean} }

// NewEnum creates an Enum descriptor over bare string variants.
func NewEnum(name string, values ...string) Descriptor {
	return Descriptor{Kind: Enum, Name: name, Values: values}
}

// NewUnion creates a Union descriptor over the given variants.
func NewUnion(name string, variants ...Variant) Descriptor {
	return Descriptor{Kind: Union, Name: name, Variants: variants}
}

// NewVariant creates a Union variant carrying the given fields.
func NewVariant(name string, fields ...Field) Variant {
	return Variant{Name: name, Fields: fields}
}

// WithDoc returns a copy of the descriptor with the description set.
func (d Descriptor) WithDoc(doc string) Descriptor {
	d.Doc = doc
	return d
}
