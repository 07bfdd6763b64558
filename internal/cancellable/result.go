package cancellable

import "fmt"

// Kind tags which variant a Result holds.
type Kind uint8

const (
	// KindCancelled is the zero Kind, so a zero Result stops the loop
	// instead of spinning it.
	KindCancelled Kind = iota
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindCancelled:
		return "Cancelled"
	case KindItem:
		return "Item"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Result is the outcome of one unit of work: either an item or notice
// that the service observed cancellation. Build one with Item or
// Cancelled.
type Result[T any] struct {
	kind Kind
	item T
}

// Item wraps one produced value.
func Item[T any](v T) Result[T] {
	return Result[T]{kind: KindItem, item: v}
}

// Cancelled reports that the service saw the cancellation signal.
func Cancelled[T any]() Result[T] {
	return Result[T]{kind: KindCancelled}
}

// Kind returns the variant tag.
func (r Result[T]) Kind() Kind {
	return r.kind
}

// IsCancelled reports whether r is the Cancelled variant.
func (r Result[T]) IsCancelled() bool {
	return r.kind != KindItem
}

// Value returns the wrapped item and true, or the zero value and false
// for Cancelled.
func (r Result[T]) Value() (T, bool) {
	if r.kind != KindItem {
		var zero T
		return zero, false
	}
	return r.item, true
}

func (r Result[T]) String() string {
	if r.kind == KindItem {
		return fmt.Sprintf("Item(%v)", r.item)
	}
	return "Cancelled"
}
