package symbol

import (
	"fmt"
	"io"
	"os"
)

// StreamRegistry is the symbol-table root's file-name-to-output-stream
// mapping (spec.md §3.4 "stream registry"). Streams are opened lazily on
// first Open and closed only by an explicit CloseAll; pkg/emplode's
// Interpreter has no teardown method and never calls CloseAll itself.
// This core package only holds the registry; the
// CSV/data-file *consumers* of it are external collaborators out of scope
// here (spec.md §1), matching the "stream registry but no data-file logic"
// decision recorded in SPEC_FULL.md.
type StreamRegistry struct {
	open  map[string]io.WriteCloser
	order []string
}

// NewStreamRegistry creates an empty registry.
func NewStreamRegistry() *StreamRegistry {
	return &StreamRegistry{open: make(map[string]io.WriteCloser)}
}

// Open returns the writer for fileName, opening (and truncating/creating)
// it on first use.
func (r *StreamRegistry) Open(fileName string) (io.Writer, error) {
	if w, ok := r.open[fileName]; ok {
		return w, nil
	}
	f, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening stream %q: %w", fileName, err)
	}
	r.open[fileName] = f
	r.order = append(r.order, fileName)
	return f, nil
}

// CloseAll closes every stream opened through this registry, in the order
// they were first opened. Errors from individual closes are collected and
// the first one is returned after every stream has been attempted.
func (r *StreamRegistry) CloseAll() error {
	var firstErr error
	for _, name := range r.order {
		if err := r.open[name].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing stream %q: %w", name, err)
		}
	}
	return firstErr
}
