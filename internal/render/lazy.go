package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/AD7six/envgen/internal/envfile"
	"github.com/AD7six/envgen/internal/logging"
)

const lazyIndent = "    "

// Lazy writes entries as bindings inside a lazy_static! block. Use Render to
// get the preamble and the closing brace around the bindings.
type Lazy struct {
	w    io.Writer
	opts Options
}

// NewLazy returns a Lazy writing to w.
func NewLazy(w io.Writer, opts Options) *Lazy {
	return &Lazy{w: w, opts: opts}
}

func (l *Lazy) ClearCommentsOnBlankLine() bool { return !l.opts.KeepCommentsOnBlankLine }

// Render writes the custom accessors, the preamble, one binding per entry of
// data and the closing brace. Output already written stays written on error.
func (l *Lazy) Render(data []byte) error {
	if l.opts.CustomAccessors != "" {
		custom := l.opts.CustomAccessors
		if !strings.HasSuffix(custom, "\n") {
			custom += "\n"
		}
		if _, err := io.WriteString(l.w, custom); err != nil {
			return err
		}
	}
	if err := writePreamble(l.w); err != nil {
		return err
	}
	if err := envfile.Read(data, l); err != nil {
		return err
	}
	_, err := io.WriteString(l.w, "}\n")
	return err
}

// Write renders one entry as a static ref binding inside the block.
func (l *Lazy) Write(comments []string, key string, value envfile.Value) error {
	key, value, err := l.opts.keyValue(comments, key, value)
	if err != nil {
		return err
	}
	if !l.opts.OmitComments {
		if err := writeComments(l.w, lazyIndent, comments); err != nil {
			return err
		}
	}

	typ, accessor := LazyBinding(value)
	logging.Logger.Debug("lazy binding", "key", key, "type", typ, "accessor", accessor)

	_, err = fmt.Fprintf(l.w, "%spub static ref %s: %s = %s(\"%s\");\n", lazyIndent, key, typ, accessor, key)
	return err
}

// LazyBinding returns the declared type and the accessor used for value in a
// lazy block. Strings are owned, so they are declared as String. Custom
// values name their own accessor; every other accessor is <type>_var.
func LazyBinding(value envfile.Value) (typ, accessor string) {
	typ = value.RustType()
	if value.Kind() == envfile.KindString {
		typ = "String"
	}
	if value.Kind() == envfile.KindCustom {
		return typ, value.Custom().Accessor()
	}
	return typ, strings.ToLower(typ) + "_var"
}
