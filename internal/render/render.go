// Package render turns parsed env entries into Rust source.
//
// Two shapes are supported:
//
//   - const: one `pub const KEY: TYPE = LITERAL;` per entry
//   - lazy: a lazy_static! block whose bindings read the process environment
//     on first access, preceded by the helper accessor functions they call
//
// Both renderers are envfile.Transform implementations. Callers can rename a
// key or retag its value before rendering through a KeyValuer.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/AD7six/envgen/internal/envfile"
)

// Mode selects the output shape.
type Mode string

const (
	ModeLazy  Mode = "lazy"
	ModeConst Mode = "const"
)

var _ pflag.Value = (*Mode)(nil)

func (m *Mode) String() string { return string(*m) }

func (m *Mode) Set(s string) error {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLazy:
		*m = ModeLazy
	case ModeConst:
		*m = ModeConst
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeLazy, ModeConst)
	}
	return nil
}

func (m *Mode) Type() string { return "mode" }

// KeyValuer lets callers rename a key or retag its value before it is rendered.
type KeyValuer interface {
	KeyValue(comments []string, key string, value envfile.Value) (string, envfile.Value, error)
}

// Options are shared by both renderers.
type Options struct {
	KeepCommentsOnBlankLine bool      // keep comments separated from their key by a blank line
	OmitComments            bool      // don't copy comments into the output
	KeyValue                KeyValuer // nil passes keys and values through
	CustomAccessors         string    // lazy mode only: written verbatim before the preamble
}

func (o Options) keyValue(comments []string, key string, value envfile.Value) (string, envfile.Value, error) {
	if o.KeyValue == nil {
		return key, value, nil
	}
	return o.KeyValue.KeyValue(comments, key, value)
}

// Render parses data and writes it to w in the given mode.
func Render(data []byte, w io.Writer, mode Mode, opts Options) error {
	switch mode {
	case ModeConst:
		return envfile.Read(data, NewConst(w, opts))
	case ModeLazy, "":
		return NewLazy(w, opts).Render(data)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func writeComments(w io.Writer, indent string, comments []string) error {
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, c); err != nil {
			return err
		}
	}
	return nil
}
