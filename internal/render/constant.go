package render

import (
	"fmt"
	"io"
	"math"

	"github.com/AD7six/envgen/internal/envfile"
)

// Const writes each entry as a Rust constant.
type Const struct {
	w    io.Writer
	opts Options
}

// NewConst returns a Const writing to w.
func NewConst(w io.Writer, opts Options) *Const {
	return &Const{w: w, opts: opts}
}

func (c *Const) ClearCommentsOnBlankLine() bool { return !c.opts.KeepCommentsOnBlankLine }

// Write renders one entry as comments followed by a pub const line.
func (c *Const) Write(comments []string, key string, value envfile.Value) error {
	key, value, err := c.opts.keyValue(comments, key, value)
	if err != nil {
		return err
	}
	if !c.opts.OmitComments {
		if err := writeComments(c.w, "", comments); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(c.w, "pub const %s: %s = %s;\n", key, value.RustType(), constLiteral(value))
	return err
}

// constLiteral is value.Literal, except that non-finite floats use the
// associated constants since Rust has no inf or NaN literal.
func constLiteral(value envfile.Value) string {
	if !value.IsNonFinite() {
		return value.Literal()
	}
	name := "INFINITY"
	switch {
	case math.IsNaN(value.Float()):
		name = "NAN"
	case value.Float() < 0:
		name = "NEG_INFINITY"
	}
	return value.RustType() + "::" + name
}
