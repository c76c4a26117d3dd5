package shape

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	ai "github.com/spetersoncode/conform"
)

var (
	describerType = reflect.TypeOf((*Describer)(nil)).Elem()
	timeType      = reflect.TypeOf(time.Time{})
)

// For produces the descriptor for T. Types implementing [Describer] (on the
// value or on the pointer) are asked directly; everything else is walked by
// reflection: exported struct fields become properties named by their json
// tags, pointer and omitempty fields become optional, and a desc tag becomes
// the property description.
func For[T any]() (Descriptor, error) {
	return Of(reflect.TypeOf((*T)(nil)).Elem())
}

// MustFor is like [For] but panics on unsupported shapes. Intended for
// package-level descriptor variables and tests.
func MustFor[T any]() Descriptor {
	d, err := For[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// Of produces the descriptor for a reflected type.
func Of(t reflect.Type) (Descriptor, error) {
	w := &walker{subject: typeName(t), visiting: make(map[reflect.Type]bool)}
	return w.walk(t, "")
}

type walker struct {
	subject  string
	visiting map[reflect.Type]bool
}

func (w *walker) walk(t reflect.Type, path string) (Descriptor, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if d, ok := describe(t); ok {
		return d, nil
	}

	switch t.Kind() {
	case reflect.String:
		return Descriptor{Kind: String, Name: typeName(t)}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Descriptor{Kind: Integer, Name: typeName(t)}, nil

	case reflect.Float32, reflect.Float64:
		return Descriptor{Kind: Number, Name: typeName(t)}, nil

	case reflect.Bool:
		return Descriptor{Kind: Boolean, Name: typeName(t)}, nil

	case reflect.Slice, reflect.Array:
		// []byte round-trips through JSON as a base64 string.
		if t.Elem().Kind() == reflect.Uint8 {
			return Descriptor{Kind: String, Name: typeName(t)}, nil
		}
		elem, err := w.walk(t.Elem(), path+"[]")
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{Kind: Array, Name: typeName(t), Elem: &elem}, nil

	case reflect.Struct:
		if t == timeType {
			return Descriptor{Kind: String, Name: "Time"}, nil
		}
		return w.walkStruct(t, path)

	default:
		return Descriptor{}, w.unsupported(t, path)
	}
}

func (w *walker) walkStruct(t reflect.Type, path string) (Descriptor, error) {
	if w.visiting[t] {
		return Descriptor{}, &ai.DefinitionError{
			Subject: w.subject,
			Reason:  fmt.Sprintf("recursive shape through %s", typeName(t)),
		}
	}
	w.visiting[t] = true
	defer delete(w.visiting, t)

	d := Descriptor{Kind: Object, Name: typeName(t)}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitempty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}

		fs, err := w.walk(field.Type, fieldPath)
		if err != nil {
			return Descriptor{}, err
		}

		d.Fields = append(d.Fields, Field{
			Name:     name,
			Shape:    fs,
			Doc:      field.Tag.Get("desc"),
			Optional: omitempty || field.Type.Kind() == reflect.Pointer,
		})
	}

	return d, nil
}

// describe asks the type (or its pointer) for a self-declared shape.
func describe(t reflect.Type) (Descriptor, bool) {
	if t.Implements(describerType) {
		return reflect.New(t).Elem().Interface().(Describer).DescribeShape(), true
	}
	if reflect.PointerTo(t).Implements(describerType) {
		return reflect.New(t).Interface().(Describer).DescribeShape(), true
	}
	return Descriptor{}, false
}

func (w *walker) unsupported(t reflect.Type, path string) error {
	reason := fmt.Sprintf("unsupported kind %s", t.Kind())
	if path != "" {
		reason = fmt.Sprintf("field %s: %s", path, reason)
	}
	return &ai.DefinitionError{Subject: w.subject, Reason: reason}
}

func parseJSONTag(field reflect.StructField) (name string, omitempty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = field.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
