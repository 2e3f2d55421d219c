package midlist

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument is returned when an insertion is given an absent element.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned when an index is outside the valid range
	// of the operation.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedOperation is returned by members that are deliberately not
	// implemented by this list.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

func indexErr(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, size)
}

// IsAbsent reports whether v is a nil interface, or a nil pointer, map,
// slice, channel, function or unsafe pointer.
func IsAbsent[V any](v V) bool {
	a := any(v)
	if a == nil {
		return true
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
