package envfile

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned when the input is not valid UTF-8.
var ErrInvalidEncoding = errors.New("env file is not valid UTF-8")

// MalformedLineError reports a line that is neither blank, a comment nor a
// KEY=value pair.
type MalformedLineError struct {
	Line int // 1-based
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: missing '=' in %q", e.Line, e.Text)
}
