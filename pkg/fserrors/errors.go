// Package fserrors defines the error taxonomy shared by every layer of the
// filesystem engine. Lower layers return these sentinels (or wrap them with
// fmt.Errorf's %w) so callers can test with errors.Is instead of matching on
// message text.
package fserrors

import "errors"

var (
	// ErrNotFound indicates path resolution failed at some segment, or the
	// basename itself has no live entry.
	ErrNotFound = errors.New("littlefs: not found")

	// ErrValueExpected indicates the key names a directory, or an empty name
	// was supplied where a value was expected.
	ErrValueExpected = errors.New("littlefs: value expected")

	// ErrDictionaryExpected indicates the key names a value where a
	// directory was expected.
	ErrDictionaryExpected = errors.New("littlefs: directory expected")

	// ErrNoSpace indicates the allocator is exhausted, a commit cannot be
	// made to fit even after compaction, or a split failed partway through.
	ErrNoSpace = errors.New("littlefs: no space left on device")

	// ErrTooManyRetries is reserved for a higher-level batch facility that
	// retries a conflicting write a bounded number of times.
	ErrTooManyRetries = errors.New("littlefs: too many retries")

	// ErrCorrupt indicates a block failed to parse: a bad tag, a CRC
	// mismatch, or padding that isn't a multiple of the program block size.
	ErrCorrupt = errors.New("littlefs: corrupt block")

	// ErrDisconnected indicates traversal could not reach a block that a
	// live entry claims to reference.
	ErrDisconnected = errors.New("littlefs: disconnected metadata chain")
)

// PathError records the operation and key a filesystem error occurred on,
// mirroring the standard library's *fs.PathError shape.
type PathError struct {
	Op  string
	Key string
	Err error
}

func (e *PathError) Error() string {
	if e.Key == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }

// NotFound wraps ErrNotFound with the operation and key for user-facing
// reporting while still satisfying errors.Is(err, ErrNotFound).
func NotFound(op, key string) error {
	return &PathError{Op: op, Key: key, Err: ErrNotFound}
}

// ValueExpected wraps ErrValueExpected with the operation and key.
func ValueExpected(op, key string) error {
	return &PathError{Op: op, Key: key, Err: ErrValueExpected}
}

// DictionaryExpected wraps ErrDictionaryExpected with the operation and key.
func DictionaryExpected(op, key string) error {
	return &PathError{Op: op, Key: key, Err: ErrDictionaryExpected}
}
