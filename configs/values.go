package configs

import (
	"errors"
	"fmt"
	"iter"

	"github.com/reusee/e5"
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

var ErrValueNotFound = errors.New("config value not found")

// First decodes the value at path from the first file that sets it, or returns the zero value.
// Broken config files panic.
func First[T any](loader Loader, path string) (ret T) {
	err := loader.AssignFirst(path, &ret)
	if errors.Is(err, ErrValueNotFound) {
		return
	}
	if err != nil {
		panic(wrap(fmt.Errorf("config %s: %w", path, err)))
	}
	return
}

// All yields the values at path from every file, in precedence order.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(wrap(fmt.Errorf("config %s: %w", path, err)))
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(wrap(fmt.Errorf("decode %s: %w", path, err)))
			}
			if !yield(v) {
				return
			}
		}
	}
}
